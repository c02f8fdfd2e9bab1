package team_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/taskforge/taskforge/internal/team"
)

func TestTeamPredicates(t *testing.T) {
	t.Parallel()

	creatorID := uuid.New()
	memberID := uuid.New()
	strangerID := uuid.New()

	tm := &team.Team{
		ID:        uuid.New(),
		Name:      "Eng",
		CreatorID: creatorID,
		Members:   []team.Member{{ID: memberID, Username: "bob"}},
	}

	assert.True(t, tm.IsCreator(creatorID))
	assert.False(t, tm.IsCreator(memberID))

	// The creator is never materialized into the membership set.
	assert.False(t, tm.HasMember(creatorID))
	assert.True(t, tm.HasMember(memberID))
	assert.False(t, tm.HasMember(strangerID))

	assert.True(t, tm.CanView(creatorID))
	assert.True(t, tm.CanView(memberID))
	assert.False(t, tm.CanView(strangerID))

	assert.True(t, tm.CanAssign(creatorID))
	assert.True(t, tm.CanAssign(memberID))
	assert.False(t, tm.CanAssign(strangerID))
}

func TestTeamPredicates_NoMembers(t *testing.T) {
	t.Parallel()

	creatorID := uuid.New()
	tm := &team.Team{CreatorID: creatorID}

	assert.True(t, tm.CanView(creatorID))
	assert.False(t, tm.CanView(uuid.New()))
}
