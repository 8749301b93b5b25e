package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskAssignment/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Uniqueness of username is left to the UNIQUE
// constraint, so of two concurrent registrations for the same name exactly one
// succeeds and the other gets ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string, role models.Role) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO users (username, password, role) VALUES (?, ?, ?)`, username, passwordHash, string(role))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Username: username, PasswordHash: passwordHash, Role: role}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT id, username, password, role FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetByUsernameAndRole returns the user matching both fields exactly, or nil.
// A teacher cannot be found by claiming the admin role.
func (r *UserRepository) GetByUsernameAndRole(ctx context.Context, username string, role models.Role) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT id, username, password, role FROM users WHERE username = ? AND role = ?`, username, string(role))
	return scanUser(row)
}

// ListByRole returns id and username of every user with the given role, ordered by id.
func (r *UserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.Teacher, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, username FROM users WHERE role = ? ORDER BY id`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Teacher{}
	for rows.Next() {
		var t models.Teacher
		if err := rows.Scan(&t.ID, &t.Username); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}
