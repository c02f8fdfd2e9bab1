package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task record is not found.
var ErrTaskNotFound = errors.New("task not found")

// Repository provides operations on the tasks table.
type Repository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	// ListForUser returns all tasks assigned to the user, across teams.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Task, error)
	// ListForTeam returns all tasks belonging to the team.
	ListForTeam(ctx context.Context, teamID uuid.UUID) ([]Task, error)
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*Task, error)
	SetAssignee(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) (*Task, error)
}
