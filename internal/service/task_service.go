package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"taskAssignment/internal/apperr"
	"taskAssignment/internal/auth"
	"taskAssignment/internal/observability"
	"taskAssignment/models"
	"taskAssignment/repository"
)

// NewTask is the create-task input. TeacherID comes from the request body and
// is not checked against the caller.
type NewTask struct {
	Description string
	Date        string
	TeacherID   int64
}

type TaskService struct {
	users   repository.UserRepositoryI
	tasks   repository.TaskRepositoryI
	metrics *observability.Metrics
	log     logrus.FieldLogger
}

func NewTaskService(users repository.UserRepositoryI, tasks repository.TaskRepositoryI, metrics *observability.Metrics, log logrus.FieldLogger) *TaskService {
	return &TaskService{users: users, tasks: tasks, metrics: metrics, log: log}
}

// ListTasks returns every task for an admin and only the caller's own tasks for
// anyone else. The filter is applied in the query, never by the caller.
func (s *TaskService) ListTasks(ctx context.Context, id *auth.Identity) ([]models.Task, error) {
	if id == nil {
		return nil, apperr.Unauthenticated(nil)
	}
	var (
		list []models.Task
		err  error
	)
	if id.IsAdmin() {
		list, err = s.tasks.ListAll(ctx)
	} else {
		list, err = s.tasks.ListByTeacherID(ctx, id.SubjectID)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return list, nil
}

// CreateTask stores a task for in.TeacherID. Any authenticated identity may
// assign to any existing user.
func (s *TaskService) CreateTask(ctx context.Context, id *auth.Identity, in NewTask) (int64, error) {
	if id == nil {
		return 0, apperr.Unauthenticated(nil)
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return 0, apperr.Validation("description is required")
	}
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return 0, apperr.Validation("date is required")
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return 0, apperr.Validation("date must be formatted YYYY-MM-DD")
	}
	if in.TeacherID <= 0 {
		return 0, apperr.Validation("teacherId is required")
	}
	teacher, err := s.users.GetByID(ctx, in.TeacherID)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if teacher == nil {
		return 0, apperr.Validation("teacherId does not reference an existing user")
	}

	task, err := s.tasks.Create(ctx, &models.Task{Description: desc, Date: date, TeacherID: in.TeacherID})
	if err != nil {
		// The user may have vanished between the lookup and the insert.
		if errors.Is(err, repository.ErrUnknownTeacher) {
			return 0, apperr.Validation("teacherId does not reference an existing user")
		}
		return 0, apperr.Internal(err)
	}
	s.metrics.RecordTaskCreated()
	s.log.WithFields(logrus.Fields{"task_id": task.ID, "teacher_id": task.TeacherID, "created_by": id.SubjectID}).Info("task created")
	return task.ID, nil
}

// ListTeachers returns id and username of every teacher.
func (s *TaskService) ListTeachers(ctx context.Context, id *auth.Identity) ([]models.Teacher, error) {
	if id == nil {
		return nil, apperr.Unauthenticated(nil)
	}
	list, err := s.users.ListByRole(ctx, models.RoleTeacher)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return list, nil
}
