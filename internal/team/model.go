package team

import (
	"time"

	"github.com/google/uuid"
)

// Member is a user belonging to a team. The creator is never stored as a
// member; creator privileges are derived (see the predicate methods below).
type Member struct {
	ID       uuid.UUID
	Username string
}

// Team represents a row in the teams table together with its membership set.
type Team struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Slug        *string
	CreatorID   uuid.UUID
	CreatorName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Members     []Member
}

// IsCreator reports whether the given user created the team. Gates member
// management, task creation, reassignment, team deletion, and the team task
// summary.
func (t *Team) IsCreator(userID uuid.UUID) bool {
	return t.CreatorID == userID
}

// HasMember reports whether the given user is in the membership set. The
// creator is not implicitly a member here; use CanView or CanAssign when
// creator privileges apply.
func (t *Team) HasMember(userID uuid.UUID) bool {
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// CanView reports whether the given user may read the team detail: the
// creator or any current member.
func (t *Team) CanView(userID uuid.UUID) bool {
	return t.IsCreator(userID) || t.HasMember(userID)
}

// CanAssign reports whether a task in this team may be assigned to the given
// user: the creator or any current member.
func (t *Team) CanAssign(userID uuid.UUID) bool {
	return t.IsCreator(userID) || t.HasMember(userID)
}
