package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskforge/taskforge/internal/api/response"
	"github.com/taskforge/taskforge/internal/task"
	"github.com/taskforge/taskforge/internal/team"
	"github.com/taskforge/taskforge/internal/user"
)

var notFoundErrs = []error{
	team.ErrTeamNotFound,
	task.ErrTaskNotFound,
	user.ErrUserNotFound,
}

var forbiddenErrs = []error{
	team.ErrNotCreator,
	team.ErrNotViewer,
	task.ErrNotAssignee,
}

var validationErrs = []error{
	team.ErrAlreadyMember,
	team.ErrNotMember,
	team.ErrCannotRemoveCreator,
	task.ErrInvalidAssignee,
	user.ErrDuplicateUsername,
	user.ErrInvalidCredentials,
}

// writeDomainError maps domain sentinel errors onto the HTTP statuses of the
// API contract: 404 for missing resources, 403 for failed authorization
// checks, 400 for rule violations. Anything else is unexpected and becomes a
// logged 500.
func writeDomainError(w http.ResponseWriter, err error) {
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			response.Errors(w, http.StatusNotFound, err.Error())
			return
		}
	}
	for _, target := range forbiddenErrs {
		if errors.Is(err, target) {
			response.Errors(w, http.StatusForbidden, err.Error())
			return
		}
	}
	for _, target := range validationErrs {
		if errors.Is(err, target) {
			response.Errors(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	slog.Error("unexpected error", "error", err)
	response.Errors(w, http.StatusInternalServerError, "An unexpected error occurred")
}
