package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/api/middleware"
	"github.com/taskforge/taskforge/internal/api/response"
	"github.com/taskforge/taskforge/internal/api/validation"
	"github.com/taskforge/taskforge/internal/team"
)

type createTeamRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type memberRequest struct {
	Username string `json:"username"`
}

type teamResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug"`
	CreatedAt   string   `json:"created_at"`
	CreatedBy   string   `json:"created_by"`
	Members     []string `json:"members"`
}

func toTeamResponse(t *team.Team) teamResponse {
	members := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, m.Username)
	}

	return teamResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Slug:        t.Slug,
		CreatedAt:   t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		CreatedBy:   t.CreatorName,
		Members:     members,
	}
}

// TeamHandler handles team and membership endpoints.
type TeamHandler struct {
	svc *team.Service
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(svc *team.Service) *TeamHandler {
	return &TeamHandler{svc: svc}
}

// Create handles POST /teams/create/.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Errors(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if msgs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name: req.Name,
	}); len(msgs) > 0 {
		response.Errors(w, http.StatusBadRequest, msgs...)
		return
	}

	creator := team.Member{ID: identity.UserID, Username: identity.Username}
	t, err := h.svc.Create(r.Context(), creator, req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toTeamResponse(t))
}

// ListMine handles GET /teams/my-teams/.
func (h *TeamHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	teams, err := h.svc.ListMine(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	items := make([]teamResponse, 0, len(teams))
	for i := range teams {
		items = append(items, toTeamResponse(&teams[i]))
	}

	response.JSON(w, http.StatusOK, items)
}

// Get handles GET /teams/{id}/.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	teamID, ok := parseID(w, r)
	if !ok {
		return
	}

	t, err := h.svc.Get(r.Context(), identity.UserID, teamID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toTeamResponse(t))
}

// AddMember handles POST /teams/{id}/add-member/.
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	h.mutateMembership(w, r, h.svc.AddMember)
}

// RemoveMember handles POST /teams/{id}/remove-member/.
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	h.mutateMembership(w, r, h.svc.RemoveMember)
}

// Delete handles DELETE /teams/{id}/.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	teamID, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), identity.UserID, teamID); err != nil {
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"detail": "team deleted"})
}

func (h *TeamHandler) mutateMembership(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, actorID, teamID uuid.UUID, username string) (string, error),
) {
	identity := middleware.GetIdentity(r.Context())

	teamID, ok := parseID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Errors(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if msgs := validation.ValidateMemberRequest(validation.MemberRequest{
		Username: req.Username,
	}); len(msgs) > 0 {
		response.Errors(w, http.StatusBadRequest, msgs...)
		return
	}

	username, err := op(r.Context(), identity.UserID, teamID, req.Username)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"username": username})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Errors(w, http.StatusBadRequest, "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
