package queue

import "fmt"

type TaskType string

const (
	TaskTypeSendEmail    TaskType = "send_email"
	TaskTypeGraphSync    TaskType = "graph_sync"
	TaskTypePinMilestone TaskType = "pin_milestone"
)

type GraphOp string

const (
	GraphOpUpsert GraphOp = "upsert"
	GraphOpDelete GraphOp = "delete"
)

// Task is what producers enqueue. Only the fields of its TaskType are read.
type Task struct {
	TaskType TaskType
	TraceID  *string
	Attempt  int

	// send_email
	Template  string
	Recipient string
	Params    map[string]string

	// graph_sync
	UserID        *int64
	RelatedUserID *int64
	GraphOp       GraphOp

	// pin_milestone
	MilestoneID *int64
}

func EmailTask(template, recipient string, params map[string]string) Task {
	return Task{TaskType: TaskTypeSendEmail, Template: template, Recipient: recipient, Params: params}
}

func GraphSyncTask(userID, relatedUserID int64, op GraphOp) Task {
	return Task{TaskType: TaskTypeGraphSync, UserID: &userID, RelatedUserID: &relatedUserID, GraphOp: op}
}

func PinMilestoneTask(milestoneID int64) Task {
	return Task{TaskType: TaskTypePinMilestone, MilestoneID: &milestoneID}
}

func (t Task) Validate() error {
	switch t.TaskType {
	case TaskTypeSendEmail:
		if t.Template == "" || t.Recipient == "" {
			return fmt.Errorf("missing template or recipient")
		}
	case TaskTypeGraphSync:
		if t.UserID == nil || t.RelatedUserID == nil {
			return fmt.Errorf("missing user_id or related_user_id")
		}
		if t.GraphOp != GraphOpUpsert && t.GraphOp != GraphOpDelete {
			return fmt.Errorf("unknown graph op %q", t.GraphOp)
		}
	case TaskTypePinMilestone:
		if t.MilestoneID == nil {
			return fmt.Errorf("missing milestone_id")
		}
	default:
		return fmt.Errorf("unknown task_type %q", t.TaskType)
	}
	return nil
}
