package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/team"
	"github.com/taskforge/taskforge/internal/user"
)

// ErrInvalidAssignee is returned when the proposed assignee is neither the
// team creator nor a current member.
var ErrInvalidAssignee = errors.New("assigned user must be a team member or the team creator")

// ErrNotAssignee is returned when someone other than the current assignee
// tries to update a task's completion status.
var ErrNotAssignee = errors.New("only the assigned user may update this task")

// CreateInput holds the caller-supplied fields for a new task.
type CreateInput struct {
	TeamID      uuid.UUID
	Title       string
	Description *string
	DueDate     *time.Time
	// AssignedTo is the assignee's username; nil leaves the task unassigned.
	AssignedTo *string
}

// Service enforces the assignment rules on top of the repositories.
type Service struct {
	tasks Repository
	teams team.Repository
	users user.Repository
}

// NewService creates a new task Service.
func NewService(tasks Repository, teams team.Repository, users user.Repository) *Service {
	return &Service{tasks: tasks, teams: teams, users: users}
}

// Create validates and persists a new task under a team. Check order: team
// existence, creator authorization, assignee resolution, assignee membership.
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, in CreateInput) (*Task, error) {
	t, err := s.teams.GetByID(ctx, in.TeamID)
	if err != nil {
		return nil, err
	}

	if !t.IsCreator(actorID) {
		return nil, team.ErrNotCreator
	}

	assigneeID, assigneeName, err := s.resolveAssignee(ctx, t, in.AssignedTo)
	if err != nil {
		return nil, err
	}

	tk := &Task{
		Title:        in.Title,
		Description:  in.Description,
		DueDate:      in.DueDate,
		TeamID:       in.TeamID,
		AssignedTo:   assigneeID,
		AssigneeName: assigneeName,
	}

	if err := s.tasks.Create(ctx, tk); err != nil {
		return nil, err
	}

	return tk, nil
}

// Reassign changes a task's assignee (nil clears it). Creator only; the new
// assignee is validated against the task's team.
func (s *Service) Reassign(ctx context.Context, actorID, taskID uuid.UUID, assignee *string) (*Task, error) {
	tk, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	t, err := s.teams.GetByID(ctx, tk.TeamID)
	if err != nil {
		return nil, err
	}

	if !t.IsCreator(actorID) {
		return nil, team.ErrNotCreator
	}

	assigneeID, _, err := s.resolveAssignee(ctx, t, assignee)
	if err != nil {
		return nil, err
	}

	return s.tasks.SetAssignee(ctx, taskID, assigneeID)
}

// UpdateStatus sets a task's completion flag. Only the current assignee may
// do this; being the team creator grants no shortcut. Membership is not
// re-validated since it has not changed.
func (s *Service) UpdateStatus(ctx context.Context, actorID, taskID uuid.UUID, completed bool) (*Task, error) {
	tk, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !tk.IsAssignee(actorID) {
		return nil, ErrNotAssignee
	}

	return s.tasks.SetCompleted(ctx, taskID, completed)
}

// ForUser returns the caller's assigned tasks split by completion status.
func (s *Service) ForUser(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	tasks, err := s.tasks.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := Summarize(tasks)
	return &summary, nil
}

// ForTeam returns a team's tasks split by completion status, for the team
// creator.
func (s *Service) ForTeam(ctx context.Context, actorID, teamID uuid.UUID) (*Summary, error) {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if !t.IsCreator(actorID) {
		return nil, team.ErrNotCreator
	}

	tasks, err := s.tasks.ListForTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	summary := Summarize(tasks)
	return &summary, nil
}

// resolveAssignee turns an optional username into a user ID, enforcing that
// the user is the team creator or a current member.
func (s *Service) resolveAssignee(ctx context.Context, t *team.Team, username *string) (*uuid.UUID, *string, error) {
	if username == nil {
		return nil, nil, nil
	}

	u, err := s.users.GetByUsername(ctx, *username)
	if err != nil {
		return nil, nil, err
	}

	if !t.CanAssign(u.ID) {
		return nil, nil, ErrInvalidAssignee
	}

	return &u.ID, &u.Username, nil
}
