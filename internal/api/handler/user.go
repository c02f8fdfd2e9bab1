package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/taskforge/taskforge/internal/api/response"
	"github.com/taskforge/taskforge/internal/api/validation"
	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/mailer"
	"github.com/taskforge/taskforge/internal/user"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type logoutRequest struct {
	Refresh string `json:"refresh"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenResponse struct {
	User    userResponse `json:"user"`
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}

// UserHandler handles registration, login and logout.
type UserHandler struct {
	users *user.Service
	auth  *auth.Service
	mail  *mailer.Queue
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *user.Service, authService *auth.Service, mail *mailer.Queue) *UserHandler {
	return &UserHandler{users: users, auth: authService, mail: mail}
}

// Register handles POST /users/register/.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Errors(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if msgs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); len(msgs) > 0 {
		response.Errors(w, http.StatusBadRequest, msgs...)
		return
	}

	u, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	tokens, err := h.auth.IssueTokens(r.Context(), u)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Fire-and-forget; delivery failure never affects the response.
	h.mail.Enqueue(mailer.Job{
		To:      u.Email,
		Subject: "Welcome to TaskForge",
		Body:    fmt.Sprintf("Hi %s, your account has been created.", u.Username),
	})

	response.JSON(w, http.StatusCreated, tokenResponse{
		User:    toUserResponse(u),
		Access:  tokens.Access,
		Refresh: tokens.Refresh,
	})
}

// Login handles POST /users/login/.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Errors(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if msgs := validation.ValidateLoginRequest(validation.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	}); len(msgs) > 0 {
		response.Errors(w, http.StatusBadRequest, msgs...)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			response.Errors(w, http.StatusBadRequest, "Incorrect credentials")
			return
		}
		writeDomainError(w, err)
		return
	}

	tokens, err := h.auth.IssueTokens(r.Context(), u)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, tokenResponse{
		User:    toUserResponse(u),
		Access:  tokens.Access,
		Refresh: tokens.Refresh,
	})
}

// Logout handles POST /users/logout/.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Errors(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if req.Refresh == "" {
		response.Errors(w, http.StatusBadRequest, "refresh is required")
		return
	}

	if err := h.auth.RevokeRefresh(r.Context(), req.Refresh); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			response.Errors(w, http.StatusBadRequest, "Invalid or expired token")
			return
		}
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"detail": "logged out"})
}
