package task

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a row in the tasks table.
type Task struct {
	ID           uuid.UUID
	Title        string
	Description  *string
	Completed    bool
	DueDate      *time.Time
	TeamID       uuid.UUID
	AssignedTo   *uuid.UUID
	AssigneeName *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAssignee reports whether the given user is the task's current assignee.
// Gates completion updates; the team creator gets no shortcut here.
func (t *Task) IsAssignee(userID uuid.UUID) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}
