package worker

import (
	"context"

	"streetnetwork.app/kinship/common/arangodb"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

type TaskProcessor interface {
	Process(ctx context.Context, msg queue.Message) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type ConnectionReader interface {
	Get(ctx context.Context, userID, relatedUserID int64) (*model.FamilyConnection, error)
}

type MilestonePinStore interface {
	GetByID(ctx context.Context, id int64) (*model.Milestone, error)
	SetCID(ctx context.Context, id int64, cid string) error
}

// GraphWriter is the subset of the graph client the projection needs.
type GraphWriter interface {
	UpsertPerson(ctx context.Context, p arangodb.Person) error
	UpsertKin(ctx context.Context, k arangodb.Kin) error
	RemoveKin(ctx context.Context, fromUserID, toUserID int64) error
}

type Pinner interface {
	PinJSON(ctx context.Context, name string, content any, keyvalues map[string]string) (string, error)
}

type InvitationExpirer interface {
	ExpireOld(ctx context.Context) (int64, error)
}

type SessionPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}
