package repository

import (
	"context"
	"errors"

	"taskAssignment/models"
)

var (
	// ErrDuplicateUsername is returned by UserRepository.Create when the username is taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrUnknownTeacher is returned by TaskRepository.Create when teacher_id references no user.
	ErrUnknownTeacher = errors.New("teacher does not exist")
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, passwordHash string, role models.Role) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsernameAndRole(ctx context.Context, username string, role models.Role) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.Teacher, error)
}

// TaskRepositoryI defines operations on Task entities.
type TaskRepositoryI interface {
	Create(ctx context.Context, t *models.Task) (*models.Task, error)
	ListAll(ctx context.Context) ([]models.Task, error)
	ListByTeacherID(ctx context.Context, teacherID int64) ([]models.Task, error)
	Count(ctx context.Context) (int, error)
}

var (
	_ UserRepositoryI = (*UserRepository)(nil)
	_ TaskRepositoryI = (*TaskRepository)(nil)
)
