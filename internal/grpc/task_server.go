package grpcserver

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"

	"taskAssignment/internal/auth"
	"taskAssignment/internal/service"
	"taskAssignment/models"
)

// TaskAPI is the slice of service.TaskService the gRPC transport needs.
type TaskAPI interface {
	ListTasks(ctx context.Context, id *auth.Identity) ([]models.Task, error)
	CreateTask(ctx context.Context, id *auth.Identity, in service.NewTask) (int64, error)
	ListTeachers(ctx context.Context, id *auth.Identity) ([]models.Teacher, error)
}

// Server implements TaskServiceServer. The caller's identity always comes from
// the context populated by the auth interceptor.
type Server struct {
	Tasks TaskAPI
}

var _ TaskServiceServer = (*Server)(nil)

// ListTasks returns all tasks for an admin and the caller's own tasks otherwise.
func (s *Server) ListTasks(ctx context.Context, _ *emptypb.Empty) (*ListTasksResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.Tasks.ListTasks(ctx, id)
	if err != nil {
		return nil, auth.StatusFromError(err)
	}
	return &ListTasksResponse{Tasks: list}, nil
}

func (s *Server) CreateTask(ctx context.Context, req *CreateTaskRequest) (*CreateTaskResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	taskID, err := s.Tasks.CreateTask(ctx, id, service.NewTask{
		Description: req.Description,
		Date:        req.Date,
		TeacherID:   req.TeacherID,
	})
	if err != nil {
		return nil, auth.StatusFromError(err)
	}
	return &CreateTaskResponse{TaskID: taskID}, nil
}

func (s *Server) ListTeachers(ctx context.Context, _ *emptypb.Empty) (*ListTeachersResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.Tasks.ListTeachers(ctx, id)
	if err != nil {
		return nil, auth.StatusFromError(err)
	}
	return &ListTeachersResponse{Teachers: list}, nil
}
