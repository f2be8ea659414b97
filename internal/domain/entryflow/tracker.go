package entryflow

import (
	"time"

	"github.com/allowx-lab/backend/internal/entity"
)

// TaskTracker accumulates task completions of a single intake flow before
// the entry is submitted. It is not safe for concurrent use, the owning
// controller serializes access.
type TaskTracker struct {
	order       []string
	completions map[string]entity.TaskCompletion

	nowFunc func() time.Time
}

func NewTaskTracker() *TaskTracker {
	return &TaskTracker{
		completions: make(map[string]entity.TaskCompletion),
		nowFunc:     time.Now,
	}
}

// RecordCompletion stores the completion of a task. Recording the same task
// again overwrites the previous completion, it never duplicates.
func (t *TaskTracker) RecordCompletion(
	taskID string, completed bool, verificationData entity.Map, points uint64,
) entity.TaskCompletion {
	completion := entity.TaskCompletion{
		TaskID:           taskID,
		Completed:        completed,
		CompletedAt:      t.nowFunc(),
		VerificationData: verificationData,
		Points:           points,
	}

	if _, ok := t.completions[taskID]; !ok {
		t.order = append(t.order, taskID)
	}
	t.completions[taskID] = completion

	return completion
}

func (t *TaskTracker) IsComplete(taskID string) bool {
	completion, ok := t.completions[taskID]
	return ok && completion.Completed
}

// AllRequiredComplete reports whether every required task has a completed
// record. Optional tasks never block.
func (t *TaskTracker) AllRequiredComplete(tasks []entity.SocialTask) bool {
	for _, task := range tasks {
		if task.Required && !t.IsComplete(task.ID) {
			return false
		}
	}

	return true
}

// Completions returns the recorded completions in first-recorded order.
func (t *TaskTracker) Completions() []entity.TaskCompletion {
	result := make([]entity.TaskCompletion, 0, len(t.order))
	for _, taskID := range t.order {
		result = append(result, t.completions[taskID])
	}

	return result
}
