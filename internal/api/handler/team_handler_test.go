package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/api/handler"
	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/team"
	"github.com/taskforge/taskforge/internal/user"
)

type teamHandlerFixture struct {
	h        *handler.TeamHandler
	teams    *mockTeamRepo
	creator  *user.User
	member   *user.User
	stranger *user.User
	teamID   uuid.UUID
	testTeam *team.Team
}

func newTeamHandlerFixture() *teamHandlerFixture {
	creator := &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	member := &user.User{ID: uuid.New(), Username: "bob", Email: "bob@example.com"}
	stranger := &user.User{ID: uuid.New(), Username: "carol", Email: "carol@example.com"}

	teamID := uuid.New()
	slugVal := "eng"
	testTeam := &team.Team{
		ID:          teamID,
		Name:        "Eng",
		Slug:        &slugVal,
		CreatorID:   creator.ID,
		CreatorName: creator.Username,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
		Members:     []team.Member{{ID: member.ID, Username: member.Username}},
	}

	teams := &mockTeamRepo{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*team.Team, error) {
			if id == teamID {
				return testTeam, nil
			}
			return nil, team.ErrTeamNotFound
		},
	}
	users := newMockUserRepo(creator, member, stranger)

	svc := team.NewService(teams, users)

	return &teamHandlerFixture{
		h:        handler.NewTeamHandler(svc),
		teams:    teams,
		creator:  creator,
		member:   member,
		stranger: stranger,
		teamID:   teamID,
		testTeam: testTeam,
	}
}

func identityOf(u *user.User) *auth.Identity {
	return &auth.Identity{UserID: u.ID, Username: u.Username}
}

// ===== POST /teams/create/ =====

func TestTeamCreate_Success(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	body, _ := json.Marshal(map[string]interface{}{
		"name":        "Platform Team",
		"description": "infra work",
	})
	req, w := makeRequest(http.MethodPost, "/teams/create/", body, nil, identityOf(f.creator))

	f.h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	resp := parseJSON(t, w)
	assert.Equal(t, "Platform Team", resp["name"])
	assert.Equal(t, "platform-team", resp["slug"])
	assert.Equal(t, "alice", resp["created_by"])
	assert.Equal(t, []interface{}{}, resp["members"])
	assert.NotEmpty(t, resp["id"])
}

func TestTeamCreate_MissingName(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	body, _ := json.Marshal(map[string]interface{}{})
	req, w := makeRequest(http.MethodPost, "/teams/create/", body, nil, identityOf(f.creator))

	f.h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	msgs := nonFieldErrors(t, w)
	assert.Contains(t, msgs, "name is required")
}

func TestTeamCreate_InvalidJSON(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	req, w := makeRequest(http.MethodPost, "/teams/create/", []byte("{"), nil, identityOf(f.creator))

	f.h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===== GET /teams/{id}/ =====

func TestTeamGet_MemberSeesDetail(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	req, w := makeRequest(http.MethodGet, "/teams/"+f.teamID.String()+"/", nil,
		map[string]string{"id": f.teamID.String()}, identityOf(f.member))

	f.h.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSON(t, w)
	assert.Equal(t, "Eng", resp["name"])
	assert.Equal(t, []interface{}{"bob"}, resp["members"])
}

func TestTeamGet_StrangerForbidden(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	req, w := makeRequest(http.MethodGet, "/teams/"+f.teamID.String()+"/", nil,
		map[string]string{"id": f.teamID.String()}, identityOf(f.stranger))

	f.h.Get(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTeamGet_UnknownTeam(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()
	unknown := uuid.New().String()

	req, w := makeRequest(http.MethodGet, "/teams/"+unknown+"/", nil,
		map[string]string{"id": unknown}, identityOf(f.creator))

	f.h.Get(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTeamGet_InvalidID(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	req, w := makeRequest(http.MethodGet, "/teams/abc/", nil,
		map[string]string{"id": "abc"}, identityOf(f.creator))

	f.h.Get(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===== POST /teams/{id}/add-member/ =====

func TestAddMember_Endpoint_Success(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	body, _ := json.Marshal(map[string]string{"username": "carol"})
	req, w := makeRequest(http.MethodPost, "/teams/"+f.teamID.String()+"/add-member/", body,
		map[string]string{"id": f.teamID.String()}, identityOf(f.creator))

	f.h.AddMember(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSON(t, w)
	assert.Equal(t, "carol", resp["username"])
}

func TestAddMember_Endpoint_NonCreatorForbidden(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	body, _ := json.Marshal(map[string]string{"username": "carol"})
	req, w := makeRequest(http.MethodPost, "/teams/"+f.teamID.String()+"/add-member/", body,
		map[string]string{"id": f.teamID.String()}, identityOf(f.member))

	f.h.AddMember(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddMember_Endpoint_DuplicateRejected(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	body, _ := json.Marshal(map[string]string{"username": "bob"})
	req, w := makeRequest(http.MethodPost, "/teams/"+f.teamID.String()+"/add-member/", body,
		map[string]string{"id": f.teamID.String()}, identityOf(f.creator))

	f.h.AddMember(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	msgs := nonFieldErrors(t, w)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "already a member")
}

func TestAddMember_Endpoint_UnknownUser(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	body, _ := json.Marshal(map[string]string{"username": "nobody"})
	req, w := makeRequest(http.MethodPost, "/teams/"+f.teamID.String()+"/add-member/", body,
		map[string]string{"id": f.teamID.String()}, identityOf(f.creator))

	f.h.AddMember(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ===== POST /teams/{id}/remove-member/ =====

func TestRemoveMember_Endpoint_Success(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	body, _ := json.Marshal(map[string]string{"username": "bob"})
	req, w := makeRequest(http.MethodPost, "/teams/"+f.teamID.String()+"/remove-member/", body,
		map[string]string{"id": f.teamID.String()}, identityOf(f.creator))

	f.h.RemoveMember(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSON(t, w)
	assert.Equal(t, "bob", resp["username"])
}

func TestRemoveMember_Endpoint_CreatorRejected(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	body, _ := json.Marshal(map[string]string{"username": "alice"})
	req, w := makeRequest(http.MethodPost, "/teams/"+f.teamID.String()+"/remove-member/", body,
		map[string]string{"id": f.teamID.String()}, identityOf(f.creator))

	f.h.RemoveMember(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	msgs := nonFieldErrors(t, w)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "cannot remove the team creator")
}

// ===== GET /teams/my-teams/ =====

func TestMyTeams_ReturnsList(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()
	f.teams.listForUserFn = func(_ context.Context, _ uuid.UUID) ([]team.Team, error) {
		return []team.Team{*f.testTeam}, nil
	}

	req, w := makeRequest(http.MethodGet, "/teams/my-teams/", nil, nil, identityOf(f.member))

	f.h.ListMine(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Eng", items[0]["name"])
}

// ===== DELETE /teams/{id}/ =====

func TestTeamDelete_CreatorOnly(t *testing.T) {
	t.Parallel()

	f := newTeamHandlerFixture()

	req, w := makeRequest(http.MethodDelete, "/teams/"+f.teamID.String()+"/", nil,
		map[string]string{"id": f.teamID.String()}, identityOf(f.member))
	f.h.Delete(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req, w = makeRequest(http.MethodDelete, "/teams/"+f.teamID.String()+"/", nil,
		map[string]string{"id": f.teamID.String()}, identityOf(f.creator))
	f.h.Delete(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
