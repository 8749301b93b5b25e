package httpapi

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"taskAssignment/internal/apperr"
	"taskAssignment/internal/auth"
	"taskAssignment/internal/service"
	"taskAssignment/models"
)

// AuthAPI is implemented by service.AuthService.
type AuthAPI interface {
	Register(ctx context.Context, c service.Credentials) (*service.AuthResult, error)
	Login(ctx context.Context, c service.Credentials) (*service.AuthResult, error)
}

// TaskAPI is implemented by service.TaskService.
type TaskAPI interface {
	ListTasks(ctx context.Context, id *auth.Identity) ([]models.Task, error)
	CreateTask(ctx context.Context, id *auth.Identity, in service.NewTask) (int64, error)
	ListTeachers(ctx context.Context, id *auth.Identity) ([]models.Teacher, error)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type registerResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	Role    models.Role `json:"role"`
}

type createTaskRequest struct {
	Description string     `json:"description"`
	Date        string     `json:"date"`
	TeacherID   flexibleID `json:"teacherId"`
}

type createTaskResponse struct {
	Message string `json:"message"`
	TaskID  int64  `json:"taskId"`
}

type handlers struct {
	auth  AuthAPI
	tasks TaskAPI
	log   logrus.FieldLogger
}

// fail writes err as a JSON error. Internal causes are logged, never returned.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	entry := h.log.WithFields(logrus.Fields{
		"path":       r.URL.Path,
		"status":     status,
		"kind":       apperr.KindOf(err).String(),
		"request_id": RequestIDFromContext(r.Context()),
	})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.WithError(err).Debug("request rejected")
	}
	WriteErrorMessage(w, status, apperr.PublicMessage(err))
}

// identity is only absent if a protected route was mounted without the gate.
func (h *handlers) identity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		h.fail(w, r, apperr.Unauthenticated(nil))
		return nil, false
	}
	return id, true
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := ParseJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.auth.Register(r.Context(), service.Credentials(req))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, registerResponse{Message: "User registered successfully", Token: res.Token})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := ParseJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.auth.Login(r.Context(), service.Credentials(req))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, loginResponse{Message: "User logged in successfully", Token: res.Token, Role: res.Role})
}

func (h *handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	list, err := h.tasks.ListTasks(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, list)
}

func (h *handlers) createTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req createTaskRequest
	if err := ParseJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	taskID, err := h.tasks.CreateTask(r.Context(), id, service.NewTask{
		Description: req.Description,
		Date:        req.Date,
		TeacherID:   int64(req.TeacherID),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, createTaskResponse{Message: "Task added successfully", TaskID: taskID})
}

func (h *handlers) listTeachers(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	list, err := h.tasks.ListTeachers(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, list)
}
