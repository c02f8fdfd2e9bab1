package validation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DueDateFormat is the wire format for task due dates.
const DueDateFormat = "2006-01-02"

// CreateTaskRequest mirrors the fields needed for create task validation.
type CreateTaskRequest struct {
	Title   string
	Team    string
	DueDate string
}

// ValidateCreateTaskRequest validates the fields of a create task request.
func ValidateCreateTaskRequest(req CreateTaskRequest) []string {
	var msgs []string

	title := strings.TrimSpace(req.Title)
	if title == "" {
		msgs = append(msgs, "title is required")
	} else if len(title) > 255 {
		msgs = append(msgs, "title must be at most 255 characters")
	}

	if req.Team == "" {
		msgs = append(msgs, "team is required")
	} else if _, err := uuid.Parse(req.Team); err != nil {
		msgs = append(msgs, "team must be a valid UUID")
	}

	if req.DueDate != "" {
		if _, err := time.Parse(DueDateFormat, req.DueDate); err != nil {
			msgs = append(msgs, "due_date must be formatted YYYY-MM-DD")
		}
	}

	return msgs
}
