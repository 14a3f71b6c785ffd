package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"streetnetwork.app/kinship/common/arangodb"
	"streetnetwork.app/kinship/common/logger"
	"streetnetwork.app/kinship/common/mailer"
	"streetnetwork.app/kinship/internal/queue"
	"streetnetwork.app/kinship/internal/store"
)

// ProcessorDeps wires the task handlers. Mailer, Graph and Pinner are
// optional; tasks that need a missing one are dropped with a warning.
type ProcessorDeps struct {
	Users       UserReader
	Connections ConnectionReader
	Milestones  MilestonePinStore
	Mailer      mailer.Sender
	Graph       GraphWriter
	Pinner      Pinner
}

type Processor struct {
	deps ProcessorDeps
}

func NewProcessor(deps ProcessorDeps) *Processor {
	return &Processor{deps: deps}
}

func (p *Processor) Process(ctx context.Context, msg queue.Message) error {
	switch msg.TaskType {
	case queue.TaskTypeSendEmail:
		return p.sendEmail(ctx, msg)
	case queue.TaskTypeGraphSync:
		return p.syncGraph(ctx, msg)
	case queue.TaskTypePinMilestone:
		return p.pinMilestone(ctx, msg)
	default:
		return fmt.Errorf("%w: unknown task type %q", ErrPermanent, msg.TaskType)
	}
}

func (p *Processor) sendEmail(ctx context.Context, msg queue.Message) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "kinship.worker.send_email"})

	if p.deps.Mailer == nil {
		slog.WarnContext(ctx, "smtp not configured, dropping email", "template", msg.Template)
		return nil
	}

	email, err := mailer.Render(mailer.Template(msg.Template), msg.Recipient, msg.Params)
	if err != nil {
		if errors.Is(err, mailer.ErrUnknownTemplate) {
			return fmt.Errorf("%w: %v", ErrPermanent, err)
		}
		return fmt.Errorf("rendering email: %w", err)
	}

	if err := p.deps.Mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("sending %s email: %w", msg.Template, err)
	}
	return nil
}

// syncGraph mirrors the Postgres connection rows between two users into
// the graph. Rows are re-read so out-of-order tasks converge.
func (p *Processor) syncGraph(ctx context.Context, msg queue.Message) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "kinship.worker.graph_sync",
		UserID:    msg.UserID,
	})

	if p.deps.Graph == nil {
		slog.DebugContext(ctx, "graph projection disabled, skipping")
		return nil
	}

	a, b := *msg.UserID, *msg.RelatedUserID

	if msg.GraphOp == queue.GraphOpDelete {
		if err := p.deps.Graph.RemoveKin(ctx, a, b); err != nil {
			return fmt.Errorf("removing kin edge: %w", err)
		}
		if err := p.deps.Graph.RemoveKin(ctx, b, a); err != nil {
			return fmt.Errorf("removing inverse kin edge: %w", err)
		}
		slog.InfoContext(ctx, "kin edges removed", "related_user_id", b)
		return nil
	}

	for _, uid := range []int64{a, b} {
		user, err := p.deps.Users.GetByID(ctx, uid)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: user %d not found", ErrPermanent, uid)
			}
			return fmt.Errorf("fetching user: %w", err)
		}
		if err := p.deps.Graph.UpsertPerson(ctx, arangodb.Person{UserID: user.ID, Name: user.Name}); err != nil {
			return fmt.Errorf("upserting person: %w", err)
		}
	}

	for _, pair := range [][2]int64{{a, b}, {b, a}} {
		conn, err := p.deps.Connections.Get(ctx, pair[0], pair[1])
		if errors.Is(err, store.ErrNotFound) {
			if err := p.deps.Graph.RemoveKin(ctx, pair[0], pair[1]); err != nil {
				return fmt.Errorf("removing stale kin edge: %w", err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("fetching connection: %w", err)
		}
		if err := p.deps.Graph.UpsertKin(ctx, arangodb.Kin{
			FromUserID:   conn.UserID,
			ToUserID:     conn.RelatedUserID,
			Relationship: string(conn.Relationship),
			Confirmed:    conn.Confirmed,
		}); err != nil {
			return fmt.Errorf("upserting kin edge: %w", err)
		}
	}

	slog.InfoContext(ctx, "kin edges synced", "related_user_id", b)
	return nil
}

type milestoneDocument struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Date        string  `json:"date"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

func (p *Processor) pinMilestone(ctx context.Context, msg queue.Message) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "kinship.worker.pin_milestone"})

	if p.deps.Pinner == nil {
		slog.WarnContext(ctx, "pinata not configured, skipping milestone pin", "milestone_id", *msg.MilestoneID)
		return nil
	}

	m, err := p.deps.Milestones.GetByID(ctx, *msg.MilestoneID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.InfoContext(ctx, "milestone deleted before pinning", "milestone_id", *msg.MilestoneID)
			return nil
		}
		return fmt.Errorf("fetching milestone: %w", err)
	}
	if m.IPFSCID != nil && *m.IPFSCID != "" {
		return nil
	}

	doc := milestoneDocument{
		ID:          strconv.FormatInt(m.ID, 10),
		UserID:      strconv.FormatInt(m.UserID, 10),
		Date:        m.Date.Format("2006-01-02"),
		Title:       m.Title,
		Description: m.Description,
	}
	cid, err := p.deps.Pinner.PinJSON(ctx, "milestone-"+doc.ID, doc, map[string]string{
		"userId": doc.UserID,
		"type":   "milestone",
	})
	if err != nil {
		return fmt.Errorf("pinning milestone: %w", err)
	}

	if err := p.deps.Milestones.SetCID(ctx, m.ID, cid); err != nil {
		return fmt.Errorf("recording milestone cid: %w", err)
	}

	slog.InfoContext(ctx, "milestone pinned", "milestone_id", m.ID, "cid", cid)
	return nil
}
