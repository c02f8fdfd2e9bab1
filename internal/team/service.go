package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/taskforge/taskforge/internal/user"
)

// ErrNotCreator is returned when an action reserved for the team creator is
// attempted by someone else.
var ErrNotCreator = errors.New("only the team creator may perform this action")

// ErrNotViewer is returned when a user who is neither the creator nor a
// member requests the team detail.
var ErrNotViewer = errors.New("only team members or the creator may view this team")

// ErrAlreadyMember is returned when adding a user who is already in the team
// (or is the creator).
var ErrAlreadyMember = errors.New("user is already a member of this team")

// ErrNotMember is returned when removing a user who is not in the team.
var ErrNotMember = errors.New("user is not a member of this team")

// ErrCannotRemoveCreator is returned when attempting to remove the creator
// from their own team.
var ErrCannotRemoveCreator = errors.New("cannot remove the team creator")

// Service enforces the membership rules on top of the repositories.
type Service struct {
	teams Repository
	users user.Repository
}

// NewService creates a new team Service.
func NewService(teams Repository, users user.Repository) *Service {
	return &Service{teams: teams, users: users}
}

// Create persists a new team with the given creator. The slug is derived from
// the name once at creation and never regenerated afterwards.
func (s *Service) Create(ctx context.Context, creator Member, name string, description *string) (*Team, error) {
	teamSlug := slug.Make(name)
	t := &Team{
		Name:        name,
		Description: description,
		Slug:        &teamSlug,
		CreatorID:   creator.ID,
		CreatorName: creator.Username,
	}

	if err := s.teams.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// Get returns the team detail for a creator or member; everyone else gets
// ErrNotViewer.
func (s *Service) Get(ctx context.Context, actorID, teamID uuid.UUID) (*Team, error) {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if !t.CanView(actorID) {
		return nil, ErrNotViewer
	}

	return t, nil
}

// ListMine returns all teams the actor created or belongs to.
func (s *Service) ListMine(ctx context.Context, actorID uuid.UUID) ([]Team, error) {
	return s.teams.ListForUser(ctx, actorID)
}

// AddMember resolves the username and inserts it into the membership set.
// Check order: team existence, creator authorization, user existence,
// duplicate membership.
func (s *Service) AddMember(ctx context.Context, actorID, teamID uuid.UUID, username string) (string, error) {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return "", err
	}

	if !t.IsCreator(actorID) {
		return "", ErrNotCreator
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	// The creator counts as already present even though the membership set
	// never materializes them.
	if t.IsCreator(u.ID) || t.HasMember(u.ID) {
		return "", ErrAlreadyMember
	}

	if err := s.teams.AddMember(ctx, teamID, u.ID); err != nil {
		return "", err
	}

	return u.Username, nil
}

// RemoveMember resolves the username and removes it from the membership set,
// clearing the user's task assignments in the team. Check order: team
// existence, creator authorization, user existence, creator exclusion,
// membership requirement.
func (s *Service) RemoveMember(ctx context.Context, actorID, teamID uuid.UUID, username string) (string, error) {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return "", err
	}

	if !t.IsCreator(actorID) {
		return "", ErrNotCreator
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if t.IsCreator(u.ID) {
		return "", ErrCannotRemoveCreator
	}

	if !t.HasMember(u.ID) {
		return "", ErrNotMember
	}

	if err := s.teams.RemoveMember(ctx, teamID, u.ID); err != nil {
		return "", err
	}

	return u.Username, nil
}

// Delete removes a team and all of its tasks. Creator only.
func (s *Service) Delete(ctx context.Context, actorID, teamID uuid.UUID) error {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}

	if !t.IsCreator(actorID) {
		return ErrNotCreator
	}

	return s.teams.Delete(ctx, teamID)
}
