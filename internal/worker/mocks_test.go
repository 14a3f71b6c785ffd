package worker_test

import (
	"context"

	"streetnetwork.app/kinship/common/arangodb"
	"streetnetwork.app/kinship/common/mailer"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/queue"
)

type mockConsumer struct {
	acked        []string
	requeued     []string
	deadLettered []string
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	return nil, nil
}

func (m *mockConsumer) Ack(ctx context.Context, msg queue.Message) error {
	m.acked = append(m.acked, msg.ID)
	return nil
}

func (m *mockConsumer) Requeue(ctx context.Context, msg queue.Message, errMsg string) error {
	m.requeued = append(m.requeued, msg.ID)
	return nil
}

func (m *mockConsumer) SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error {
	m.deadLettered = append(m.deadLettered, msg.ID)
	return nil
}

type mockProcessor struct {
	processFn func(ctx context.Context, msg queue.Message) error
}

func (m *mockProcessor) Process(ctx context.Context, msg queue.Message) error {
	return m.processFn(ctx, msg)
}

type mockUsers struct {
	getByIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return m.getByIDFn(ctx, id)
}

type mockConnections struct {
	getFn func(ctx context.Context, userID, relatedUserID int64) (*model.FamilyConnection, error)
}

func (m *mockConnections) Get(ctx context.Context, userID, relatedUserID int64) (*model.FamilyConnection, error) {
	return m.getFn(ctx, userID, relatedUserID)
}

type mockMilestones struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Milestone, error)
	setCIDFn  func(ctx context.Context, id int64, cid string) error
}

func (m *mockMilestones) GetByID(ctx context.Context, id int64) (*model.Milestone, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockMilestones) SetCID(ctx context.Context, id int64, cid string) error {
	return m.setCIDFn(ctx, id, cid)
}

type mockGraph struct {
	people  []arangodb.Person
	kin     []arangodb.Kin
	removed [][2]int64
}

func (m *mockGraph) UpsertPerson(ctx context.Context, p arangodb.Person) error {
	m.people = append(m.people, p)
	return nil
}

func (m *mockGraph) UpsertKin(ctx context.Context, k arangodb.Kin) error {
	m.kin = append(m.kin, k)
	return nil
}

func (m *mockGraph) RemoveKin(ctx context.Context, from, to int64) error {
	m.removed = append(m.removed, [2]int64{from, to})
	return nil
}

type mockPinner struct {
	pinJSONFn func(ctx context.Context, name string, content any, keyvalues map[string]string) (string, error)
}

func (m *mockPinner) PinJSON(ctx context.Context, name string, content any, keyvalues map[string]string) (string, error) {
	return m.pinJSONFn(ctx, name, content, keyvalues)
}

type mockMailer struct {
	sent    []mailer.Email
	sendErr error
}

func (m *mockMailer) Send(ctx context.Context, email mailer.Email) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, email)
	return nil
}

type mockExpirer struct {
	calls int
	n     int64
	err   error
}

func (m *mockExpirer) ExpireOld(ctx context.Context) (int64, error) {
	m.calls++
	return m.n, m.err
}

type mockPurger struct {
	calls int
}

func (m *mockPurger) DeleteExpired(ctx context.Context) (int64, error) {
	m.calls++
	return 3, nil
}
