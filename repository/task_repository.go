package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"taskAssignment/models"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task and returns it with its generated ID. A teacher_id that
// references no user yields ErrUnknownTeacher.
func (r *TaskRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO tasks (description, date, teacher_id) VALUES (?, ?, ?)`, t.Description, t.Date, t.TeacherID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrUnknownTeacher
		}
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *t
	out.ID = id
	return &out, nil
}

// ListAll returns every task ordered by date, then id.
func (r *TaskRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT id, description, date, teacher_id FROM tasks ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTaskRows(rows)
}

// ListByTeacherID returns the tasks assigned to one teacher ordered by date, then id.
func (r *TaskRepository) ListByTeacherID(ctx context.Context, teacherID int64) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT id, description, date, teacher_id FROM tasks WHERE teacher_id = ? ORDER BY date ASC, id ASC`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTaskRows(rows)
}

func (r *TaskRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// scanTaskRows always returns a non-nil slice so empty lists encode as [].
func scanTaskRows(rows *sql.Rows) ([]models.Task, error) {
	out := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Description, &t.Date, &t.TeacherID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
