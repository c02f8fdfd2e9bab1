package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/api/middleware"
	"github.com/taskforge/taskforge/internal/api/response"
	"github.com/taskforge/taskforge/internal/api/validation"
	"github.com/taskforge/taskforge/internal/task"
)

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Team        string  `json:"team"`
	DueDate     string  `json:"due_date"`
	AssignedTo  *string `json:"assigned_to"`
}

type assignTaskRequest struct {
	AssignedTo *string `json:"assigned_to"`
}

type updateStatusRequest struct {
	Completed *bool `json:"completed"`
}

type taskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"due_date"`
	Team        string  `json:"team"`
	AssignedTo  *string `json:"assigned_to"`
}

type taskSummaryResponse struct {
	CompletedTasks  []taskResponse `json:"completed_tasks"`
	IncompleteTasks []taskResponse `json:"incomplete_tasks"`
	CompletionRate  float64        `json:"completion_rate"`
}

func toTaskResponse(t *task.Task) taskResponse {
	resp := taskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Team:        t.TeamID.String(),
		AssignedTo:  t.AssigneeName,
	}

	if t.DueDate != nil {
		due := t.DueDate.Format(validation.DueDateFormat)
		resp.DueDate = &due
	}

	return resp
}

func toTaskSummaryResponse(s *task.Summary) taskSummaryResponse {
	resp := taskSummaryResponse{
		CompletedTasks:  make([]taskResponse, 0, len(s.Completed)),
		IncompleteTasks: make([]taskResponse, 0, len(s.Incomplete)),
		CompletionRate:  s.CompletionRate,
	}
	for i := range s.Completed {
		resp.CompletedTasks = append(resp.CompletedTasks, toTaskResponse(&s.Completed[i]))
	}
	for i := range s.Incomplete {
		resp.IncompleteTasks = append(resp.IncompleteTasks, toTaskResponse(&s.Incomplete[i]))
	}
	return resp
}

// TaskHandler handles task endpoints.
type TaskHandler struct {
	svc *task.Service
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *task.Service) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create handles POST /teams/tasks/create/.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Errors(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if msgs := validation.ValidateCreateTaskRequest(validation.CreateTaskRequest{
		Title:   req.Title,
		Team:    req.Team,
		DueDate: req.DueDate,
	}); len(msgs) > 0 {
		response.Errors(w, http.StatusBadRequest, msgs...)
		return
	}

	teamID, _ := uuid.Parse(req.Team) // already validated

	var dueDate *time.Time
	if req.DueDate != "" {
		d, _ := time.Parse(validation.DueDateFormat, req.DueDate) // already validated
		dueDate = &d
	}

	t, err := h.svc.Create(r.Context(), identity.UserID, task.CreateInput{
		TeamID:      teamID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toTaskResponse(t))
}

// MyTasks handles GET /teams/tasks/my-tasks/.
func (h *TaskHandler) MyTasks(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	summary, err := h.svc.ForUser(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toTaskSummaryResponse(summary))
}

// UpdateStatus handles PATCH /teams/tasks/{id}/update-status/.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	taskID, ok := parseID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Errors(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if req.Completed == nil {
		response.Errors(w, http.StatusBadRequest, "completed is required")
		return
	}

	t, err := h.svc.UpdateStatus(r.Context(), identity.UserID, taskID, *req.Completed)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toTaskResponse(t))
}

// Assign handles PATCH /teams/tasks/{id}/assign/.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	taskID, ok := parseID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req assignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Errors(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	t, err := h.svc.Reassign(r.Context(), identity.UserID, taskID, req.AssignedTo)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toTaskResponse(t))
}

// TeamDetails handles GET /teams/tasks/{id}/details/, where {id} is the team
// whose task summary the creator is requesting.
func (h *TaskHandler) TeamDetails(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	teamID, ok := parseID(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.ForTeam(r.Context(), identity.UserID, teamID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toTaskSummaryResponse(summary))
}
