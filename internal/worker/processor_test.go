package worker_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"streetnetwork.app/kinship/common/arangodb"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/queue"
	"streetnetwork.app/kinship/internal/store"
	"streetnetwork.app/kinship/internal/worker"
)

func int64Ptr(v int64) *int64 { return &v }

var _ = Describe("Processor", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("send_email", func() {
		It("renders and sends the template", func() {
			m := &mockMailer{}
			p := worker.NewProcessor(worker.ProcessorDeps{Mailer: m})

			err := p.Process(ctx, queue.Message{
				TaskType:  queue.TaskTypeSendEmail,
				Template:  "welcome",
				Recipient: "ann@example.com",
				Params:    map[string]string{"name": "Ann", "app_url": "https://app.example.com"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.sent).To(HaveLen(1))
			Expect(m.sent[0].To).To(Equal("ann@example.com"))
			Expect(m.sent[0].Subject).To(Equal("Welcome to Kinnected"))
		})

		It("treats an unknown template as permanent", func() {
			p := worker.NewProcessor(worker.ProcessorDeps{Mailer: &mockMailer{}})
			err := p.Process(ctx, queue.Message{TaskType: queue.TaskTypeSendEmail, Template: "promo", Recipient: "a@example.com"})
			Expect(err).To(MatchError(worker.ErrPermanent))
		})

		It("returns transport errors for retry", func() {
			p := worker.NewProcessor(worker.ProcessorDeps{Mailer: &mockMailer{sendErr: errors.New("dial tcp")}})
			err := p.Process(ctx, queue.Message{TaskType: queue.TaskTypeSendEmail, Template: "welcome", Recipient: "a@example.com"})
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, worker.ErrPermanent)).To(BeFalse())
		})

		It("drops emails when smtp is not configured", func() {
			p := worker.NewProcessor(worker.ProcessorDeps{})
			Expect(p.Process(ctx, queue.Message{TaskType: queue.TaskTypeSendEmail, Template: "welcome", Recipient: "a@example.com"})).To(Succeed())
		})
	})

	Describe("graph_sync", func() {
		var (
			graph *mockGraph
			users *mockUsers
			conns *mockConnections
		)

		BeforeEach(func() {
			graph = &mockGraph{}
			users = &mockUsers{getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, Name: map[int64]string{1: "Ann", 2: "Ben"}[id]}, nil
			}}
			conns = &mockConnections{getFn: func(ctx context.Context, userID, relatedUserID int64) (*model.FamilyConnection, error) {
				if userID == 1 {
					return &model.FamilyConnection{UserID: 1, RelatedUserID: 2, Relationship: model.RelationshipChild}, nil
				}
				return &model.FamilyConnection{UserID: 2, RelatedUserID: 1, Relationship: model.RelationshipParent}, nil
			}}
		})

		It("upserts both people and both directed edges", func() {
			p := worker.NewProcessor(worker.ProcessorDeps{Users: users, Connections: conns, Graph: graph})

			err := p.Process(ctx, queue.Message{
				TaskType: queue.TaskTypeGraphSync, UserID: int64Ptr(1), RelatedUserID: int64Ptr(2), GraphOp: queue.GraphOpUpsert,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(graph.people).To(ConsistOf(
				arangodb.Person{UserID: 1, Name: "Ann"},
				arangodb.Person{UserID: 2, Name: "Ben"},
			))
			Expect(graph.kin).To(ConsistOf(
				arangodb.Kin{FromUserID: 1, ToUserID: 2, Relationship: "child"},
				arangodb.Kin{FromUserID: 2, ToUserID: 1, Relationship: "parent"},
			))
		})

		It("removes edges whose rows are gone", func() {
			conns.getFn = func(ctx context.Context, userID, relatedUserID int64) (*model.FamilyConnection, error) {
				return nil, store.ErrNotFound
			}
			p := worker.NewProcessor(worker.ProcessorDeps{Users: users, Connections: conns, Graph: graph})

			err := p.Process(ctx, queue.Message{
				TaskType: queue.TaskTypeGraphSync, UserID: int64Ptr(1), RelatedUserID: int64Ptr(2), GraphOp: queue.GraphOpUpsert,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(graph.kin).To(BeEmpty())
			Expect(graph.removed).To(ConsistOf([2]int64{1, 2}, [2]int64{2, 1}))
		})

		It("removes both directions on delete", func() {
			p := worker.NewProcessor(worker.ProcessorDeps{Users: users, Connections: conns, Graph: graph})

			err := p.Process(ctx, queue.Message{
				TaskType: queue.TaskTypeGraphSync, UserID: int64Ptr(1), RelatedUserID: int64Ptr(2), GraphOp: queue.GraphOpDelete,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(graph.removed).To(ConsistOf([2]int64{1, 2}, [2]int64{2, 1}))
		})

		It("skips when the graph is disabled", func() {
			p := worker.NewProcessor(worker.ProcessorDeps{Users: users, Connections: conns})
			Expect(p.Process(ctx, queue.Message{
				TaskType: queue.TaskTypeGraphSync, UserID: int64Ptr(1), RelatedUserID: int64Ptr(2), GraphOp: queue.GraphOpUpsert,
			})).To(Succeed())
		})

		It("fails permanently for unknown users", func() {
			users.getByIDFn = func(ctx context.Context, id int64) (*model.User, error) { return nil, store.ErrNotFound }
			p := worker.NewProcessor(worker.ProcessorDeps{Users: users, Connections: conns, Graph: graph})

			err := p.Process(ctx, queue.Message{
				TaskType: queue.TaskTypeGraphSync, UserID: int64Ptr(1), RelatedUserID: int64Ptr(2), GraphOp: queue.GraphOpUpsert,
			})
			Expect(err).To(MatchError(worker.ErrPermanent))
		})
	})

	Describe("pin_milestone", func() {
		var (
			milestones *mockMilestones
			pinner     *mockPinner
			savedCID   string
		)

		BeforeEach(func() {
			savedCID = ""
			milestones = &mockMilestones{
				getByIDFn: func(ctx context.Context, id int64) (*model.Milestone, error) {
					return &model.Milestone{ID: id, UserID: 5, Title: "Graduation", Date: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)}, nil
				},
				setCIDFn: func(ctx context.Context, id int64, cid string) error {
					savedCID = cid
					return nil
				},
			}
			pinner = &mockPinner{pinJSONFn: func(ctx context.Context, name string, content any, kv map[string]string) (string, error) {
				Expect(name).To(Equal("milestone-9"))
				Expect(kv).To(HaveKeyWithValue("userId", "5"))
				return "bafy-9", nil
			}}
		})

		It("pins and records the cid", func() {
			p := worker.NewProcessor(worker.ProcessorDeps{Milestones: milestones, Pinner: pinner})
			Expect(p.Process(ctx, queue.Message{TaskType: queue.TaskTypePinMilestone, MilestoneID: int64Ptr(9)})).To(Succeed())
			Expect(savedCID).To(Equal("bafy-9"))
		})

		It("does not pin twice", func() {
			milestones.getByIDFn = func(ctx context.Context, id int64) (*model.Milestone, error) {
				cid := "bafy-old"
				return &model.Milestone{ID: id, IPFSCID: &cid}, nil
			}
			pinner.pinJSONFn = func(ctx context.Context, name string, content any, kv map[string]string) (string, error) {
				Fail("PinJSON should not be called")
				return "", nil
			}
			p := worker.NewProcessor(worker.ProcessorDeps{Milestones: milestones, Pinner: pinner})
			Expect(p.Process(ctx, queue.Message{TaskType: queue.TaskTypePinMilestone, MilestoneID: int64Ptr(9)})).To(Succeed())
		})

		It("acks milestones deleted before pinning", func() {
			milestones.getByIDFn = func(ctx context.Context, id int64) (*model.Milestone, error) { return nil, store.ErrNotFound }
			p := worker.NewProcessor(worker.ProcessorDeps{Milestones: milestones, Pinner: pinner})
			Expect(p.Process(ctx, queue.Message{TaskType: queue.TaskTypePinMilestone, MilestoneID: int64Ptr(9)})).To(Succeed())
		})
	})

	It("rejects unknown task types permanently", func() {
		p := worker.NewProcessor(worker.ProcessorDeps{})
		Expect(p.Process(ctx, queue.Message{TaskType: "issue_event"})).To(MatchError(worker.ErrPermanent))
	})
})
