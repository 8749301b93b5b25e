package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"taskAssignment/internal/apperr"
	"taskAssignment/internal/observability"
	"taskAssignment/models"
	"taskAssignment/repository"
)

const (
	maxUsernameLen = 64
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLen = 72
)

// PasswordHasher is the subset of auth.PasswordHasher the service needs.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
	VerifyDummy(ctx context.Context, plaintext string) error
}

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	Issue(subjectID int64, role models.Role) (string, error)
}

// Credentials is the register/login input as supplied by the client.
type Credentials struct {
	Username string
	Password string
	Role     string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	UserID int64
	Role   models.Role
	Token  string
}

type AuthService struct {
	users   repository.UserRepositoryI
	hasher  PasswordHasher
	tokens  TokenIssuer
	metrics *observability.Metrics
	log     logrus.FieldLogger
}

func NewAuthService(users repository.UserRepositoryI, hasher PasswordHasher, tokens TokenIssuer, metrics *observability.Metrics, log logrus.FieldLogger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, metrics: metrics, log: log}
}

// Register creates a user and returns a token for it.
func (s *AuthService) Register(ctx context.Context, c Credentials) (res *AuthResult, err error) {
	defer func() { s.metrics.RecordAuth("register", outcome(err)) }()

	username, err := validateUsername(c.Username)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(c.Password); err != nil {
		return nil, err
	}
	role, ok := models.ParseRole(c.Role)
	if !ok {
		return nil, apperr.Validation("role must be admin or teacher")
	}

	digest, err := s.hasher.Hash(ctx, c.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u, err := s.users.Create(ctx, username, digest, role)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, apperr.DuplicateUsername()
		}
		return nil, apperr.Internal(err)
	}
	tok, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	s.log.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	return &AuthResult{UserID: u.ID, Role: u.Role, Token: tok}, nil
}

// Login checks the username/password/role triple. An unknown user, a role the
// user does not hold and a wrong password all yield the same InvalidCredentials.
func (s *AuthService) Login(ctx context.Context, c Credentials) (res *AuthResult, err error) {
	defer func() { s.metrics.RecordAuth("login", outcome(err)) }()

	username := strings.TrimSpace(c.Username)
	if username == "" || c.Password == "" {
		return nil, apperr.Validation("username and password are required")
	}
	if len(c.Password) > maxPasswordLen {
		return nil, apperr.InvalidCredentials()
	}

	var u *models.User
	if role, ok := models.ParseRole(c.Role); ok {
		u, err = s.users.GetByUsernameAndRole(ctx, username, role)
		if err != nil {
			return nil, apperr.Internal(err)
		}
	}
	if u == nil {
		if err := s.hasher.VerifyDummy(ctx, c.Password); err != nil {
			return nil, apperr.Internal(err)
		}
		return nil, apperr.InvalidCredentials()
	}

	match, err := s.hasher.Verify(ctx, c.Password, u.PasswordHash)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !match {
		return nil, apperr.InvalidCredentials()
	}
	tok, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &AuthResult{UserID: u.ID, Role: u.Role, Token: tok}, nil
}

func validateUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if username == "" {
		return "", apperr.Validation("username is required")
	}
	if len(username) > maxUsernameLen {
		return "", apperr.Validation("username is too long")
	}
	return username, nil
}

func validatePassword(pw string) error {
	if pw == "" {
		return apperr.Validation("password is required")
	}
	if len(pw) > maxPasswordLen {
		return apperr.Validation("password must be at most 72 bytes")
	}
	return nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return apperr.KindOf(err).String()
}
