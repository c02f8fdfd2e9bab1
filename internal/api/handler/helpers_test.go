package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/api/middleware"
	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/task"
	"github.com/taskforge/taskforge/internal/team"
	"github.com/taskforge/taskforge/internal/user"
)

func makeRequest(method, path string, body []byte, params map[string]string, identity *auth.Identity) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}

	return req, w
}

func parseJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err, "failed to parse response body")
	return body
}

func nonFieldErrors(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	body := parseJSON(t, w)
	msgs, ok := body["non_field_errors"].([]interface{})
	require.True(t, ok, "response should carry non_field_errors")
	return msgs
}

// --- Shared mock repositories ---

type mockTeamRepo struct {
	createFn       func(ctx context.Context, t *team.Team) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*team.Team, error)
	listForUserFn  func(ctx context.Context, userID uuid.UUID) ([]team.Team, error)
	addMemberFn    func(ctx context.Context, teamID, userID uuid.UUID) error
	removeMemberFn func(ctx context.Context, teamID, userID uuid.UUID) error
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTeamRepo) Create(ctx context.Context, t *team.Team) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]team.Team, error) {
	if m.listForUserFn != nil {
		return m.listForUserFn(ctx, userID)
	}
	return []team.Team{}, nil
}

func (m *mockTeamRepo) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	if m.addMemberFn != nil {
		return m.addMemberFn(ctx, teamID, userID)
	}
	return nil
}

func (m *mockTeamRepo) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	if m.removeMemberFn != nil {
		return m.removeMemberFn(ctx, teamID, userID)
	}
	return nil
}

func (m *mockTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockUserRepo struct {
	users    map[string]*user.User
	createFn func(ctx context.Context, u *user.User) error
}

func newMockUserRepo(users ...*user.User) *mockUserRepo {
	m := &mockUserRepo{users: map[string]*user.User{}}
	for _, u := range users {
		m.users[u.Username] = u
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	if _, ok := m.users[u.Username]; ok {
		return user.ErrDuplicateUsername
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	m.users[u.Username] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

type mockTaskRepo struct {
	createFn       func(ctx context.Context, t *task.Task) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*task.Task, error)
	listForUserFn  func(ctx context.Context, userID uuid.UUID) ([]task.Task, error)
	listForTeamFn  func(ctx context.Context, teamID uuid.UUID) ([]task.Task, error)
	setCompletedFn func(ctx context.Context, id uuid.UUID, completed bool) (*task.Task, error)
	setAssigneeFn  func(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) (*task.Task, error)
}

func (m *mockTaskRepo) Create(ctx context.Context, t *task.Task) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, task.ErrTaskNotFound
}

func (m *mockTaskRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]task.Task, error) {
	if m.listForUserFn != nil {
		return m.listForUserFn(ctx, userID)
	}
	return []task.Task{}, nil
}

func (m *mockTaskRepo) ListForTeam(ctx context.Context, teamID uuid.UUID) ([]task.Task, error) {
	if m.listForTeamFn != nil {
		return m.listForTeamFn(ctx, teamID)
	}
	return []task.Task{}, nil
}

func (m *mockTaskRepo) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*task.Task, error) {
	if m.setCompletedFn != nil {
		return m.setCompletedFn(ctx, id, completed)
	}
	return &task.Task{ID: id, Completed: completed}, nil
}

func (m *mockTaskRepo) SetAssignee(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) (*task.Task, error) {
	if m.setAssigneeFn != nil {
		return m.setAssigneeFn(ctx, id, assignee)
	}
	return &task.Task{ID: id, AssignedTo: assignee}, nil
}

type mockTokenRepo struct {
	tokens map[uuid.UUID]*auth.RefreshToken
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: map[uuid.UUID]*auth.RefreshToken{}}
}

func (m *mockTokenRepo) Save(_ context.Context, t *auth.RefreshToken) error {
	t.CreatedAt = time.Now().UTC()
	m.tokens[t.JTI] = t
	return nil
}

func (m *mockTokenRepo) GetByJTI(_ context.Context, jti uuid.UUID) (*auth.RefreshToken, error) {
	if t, ok := m.tokens[jti]; ok {
		return t, nil
	}
	return nil, auth.ErrTokenNotFound
}

func (m *mockTokenRepo) Revoke(_ context.Context, jti uuid.UUID) error {
	if t, ok := m.tokens[jti]; ok && t.RevokedAt == nil {
		now := time.Now().UTC()
		t.RevokedAt = &now
	}
	return nil
}
