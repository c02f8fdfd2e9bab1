package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// Repository provides operations on the teams and team_members tables.
type Repository interface {
	Create(ctx context.Context, team *Team) error
	// GetByID loads a team including its creator's username and full
	// membership set.
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	// ListForUser returns teams the user created or is a member of.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Team, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	// RemoveMember deletes the membership row and clears assigned_to on the
	// user's tasks in that team, as a single transaction.
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
	// Delete removes the team, its membership rows, and its tasks, as a
	// single transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
