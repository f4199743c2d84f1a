// Package reconcile merges LLM-extracted candidate records into a project's
// existing action item list, deciding per candidate whether it updates an
// item in place, creates a new one, or is skipped.
package reconcile

import (
	"go.uber.org/zap"

	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/extract"
	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/item"
)

// SourceLLMExtraction marks items that were created from model output.
const SourceLLMExtraction = "LLM Extraction"

// excludedKeys are never taken from candidates: id, project_id, created_at
// and update_history are immutable, updated_at is derived.
var excludedKeys = map[string]struct{}{
	"id":             {},
	"project_id":     {},
	"created_at":     {},
	"update_history": {},
	"updated_at":     {},
}

// Reconciler folds candidate records into the stored item list.
type Reconciler struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Reconciler {
	return &Reconciler{log: log}
}

// Merge processes candidates in input order. A candidate whose id matches
// an existing item updates that item in place; a candidate with a non-empty
// task becomes a new item; anything else is skipped with a diagnostic.
// Existing items keep their positions, new items are appended at the end.
func (r *Reconciler) Merge(projectID string, candidates []extract.Candidate, existing []item.ActionItem) []item.ActionItem {
	byID := make(map[string]*item.ActionItem, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	var created []item.ActionItem
	for _, cand := range candidates {
		if id, ok := cand.ID(); ok && byID[id] != nil {
			r.update(byID[id], cand)
			continue
		}
		if task, ok := cand.Task(); ok && task != "" {
			created = append(created, r.create(projectID, task, cand))
			continue
		}
		r.log.Warn("candidate skipped: no matching id and no usable task",
			zap.Any("candidate", cand))
	}

	return append(existing, created...)
}

func (r *Reconciler) update(it *item.ActionItem, cand extract.Candidate) {
	updates := make(map[string]string, len(cand))
	for key, value := range cand {
		if _, skip := excludedKeys[key]; skip {
			continue
		}
		s, ok := value.(string)
		if !ok {
			r.log.Debug("non-string candidate field dropped",
				zap.String("id", it.ID), zap.String("field", key))
			continue
		}
		updates[key] = s
	}

	res := it.ApplyUpdate(updates)
	if res.RejectedStatus != "" {
		r.log.Warn("invalid status from model, keeping previous value",
			zap.String("id", it.ID),
			zap.String("rejected", res.RejectedStatus),
			zap.String("kept", string(it.Status)))
	}
	for _, field := range res.UnknownFields {
		r.log.Debug("unknown candidate field dropped",
			zap.String("id", it.ID), zap.String("field", field))
	}
	if res.Changed {
		r.log.Info("updated existing item",
			zap.String("id", it.ID), zap.Strings("changes", res.Changes))
	}
}

func (r *Reconciler) create(projectID, task string, cand extract.Candidate) item.ActionItem {
	owner, _ := cand.Owner()
	deadline, _ := cand.Deadline()

	// A new item has no prior status to fall back to: invalid values
	// default to Open.
	status := item.StatusOpen
	if raw, ok := cand.Status(); ok {
		if item.Status(raw).Valid() {
			status = item.Status(raw)
		} else {
			r.log.Warn("invalid status for new item, defaulting to Open",
				zap.String("rejected", raw), zap.String("task", task))
		}
	}

	it := item.New(projectID, task, item.NewOptions{
		Owner:         owner,
		Deadline:      deadline,
		Status:        status,
		SourceMeeting: SourceLLMExtraction,
	})
	r.log.Info("created new item", zap.String("id", it.ID), zap.String("task", task))
	return it
}
