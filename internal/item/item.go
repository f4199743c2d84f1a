// Package item defines the action item record, its status lifecycle, and
// the field-update operation that folds changes into an append-only history.
package item

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an action item.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// Valid reports whether s is one of the four tracked statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Field names accepted by ApplyUpdate. They mirror the JSON keys the model
// sees in the persisted document.
const (
	FieldTask          = "task"
	FieldOwner         = "owner"
	FieldDeadline      = "deadline"
	FieldStatus        = "status"
	FieldSourceMeeting = "source_meeting"
)

// mutableFields is the application order for ApplyUpdate. A fixed order
// keeps change descriptions stable across runs.
var mutableFields = []string{FieldTask, FieldOwner, FieldDeadline, FieldStatus, FieldSourceMeeting}

// HistoryEntry records one batch of field changes applied to an item.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Changes   string    `json:"changes"`
}

// ActionItem is one tracked task inside a project.
type ActionItem struct {
	ID            string         `json:"id"`
	ProjectID     string         `json:"project_id"`
	Task          string         `json:"task"`
	Owner         string         `json:"owner,omitempty"`
	Deadline      string         `json:"deadline,omitempty"`
	Status        Status         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	SourceMeeting string         `json:"source_meeting,omitempty"`
	UpdateHistory []HistoryEntry `json:"update_history"`
}

// NewOptions carries the optional fields for New.
type NewOptions struct {
	Owner         string
	Deadline      string
	Status        Status
	SourceMeeting string
}

// New constructs an action item with a fresh ID, empty history, and status
// defaulting to Open. Task emptiness is the reconciler's check, not the
// model's.
func New(projectID, task string, opts NewOptions) ActionItem {
	status := opts.Status
	if status == "" {
		status = StatusOpen
	}
	now := time.Now().UTC()
	return ActionItem{
		ID:            uuid.NewString(),
		ProjectID:     projectID,
		Task:          task,
		Owner:         opts.Owner,
		Deadline:      opts.Deadline,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
		SourceMeeting: opts.SourceMeeting,
		UpdateHistory: []HistoryEntry{},
	}
}

// UpdateResult reports what ApplyUpdate did to an item.
type UpdateResult struct {
	// Changed is true when at least one field actually changed.
	Changed bool
	// Changes holds the human-readable description of each applied change.
	Changes []string
	// RejectedStatus carries an invalid status value that was refused, if any.
	RejectedStatus string
	// UnknownFields lists update keys that do not name a mutable field.
	UnknownFields []string
}

// ApplyUpdate assigns each differing mutable field from updates and folds
// the batch into a single history entry. An invalid status value is refused
// before assignment: the value the item held when this call started is kept
// and no change is recorded for it, while other fields in the same call
// still apply. UpdatedAt moves only when something actually changed; a
// no-op call leaves both UpdatedAt and the history untouched.
func (it *ActionItem) ApplyUpdate(updates map[string]string) UpdateResult {
	var res UpdateResult

	for _, field := range mutableFields {
		value, ok := updates[field]
		if !ok {
			continue
		}

		if field == FieldStatus {
			if !Status(value).Valid() {
				res.RejectedStatus = value
				continue
			}
			if string(it.Status) != value {
				res.Changes = append(res.Changes, describeChange(field, string(it.Status), value))
				it.Status = Status(value)
			}
			continue
		}

		var target *string
		switch field {
		case FieldTask:
			target = &it.Task
		case FieldOwner:
			target = &it.Owner
		case FieldDeadline:
			target = &it.Deadline
		case FieldSourceMeeting:
			target = &it.SourceMeeting
		}
		if *target != value {
			res.Changes = append(res.Changes, describeChange(field, *target, value))
			*target = value
		}
	}

	for field := range updates {
		switch field {
		case FieldTask, FieldOwner, FieldDeadline, FieldStatus, FieldSourceMeeting:
		default:
			res.UnknownFields = append(res.UnknownFields, field)
		}
	}
	sort.Strings(res.UnknownFields)

	if len(res.Changes) > 0 {
		now := time.Now().UTC()
		it.UpdatedAt = now
		it.UpdateHistory = append(it.UpdateHistory, HistoryEntry{
			Timestamp: now,
			Changes:   strings.Join(res.Changes, "; "),
		})
		res.Changed = true
	}
	return res
}

func describeChange(field, oldValue, newValue string) string {
	if oldValue == "" {
		return fmt.Sprintf("%s added with value %q", field, newValue)
	}
	return fmt.Sprintf("%s changed from %q to %q", field, oldValue, newValue)
}
