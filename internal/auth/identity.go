package auth

import (
	"context"
	"errors"
	"strings"

	"taskAssignment/models"
)

// Identity is the authenticated caller, derived from a verified token. It only
// ever lives in a request context.
type Identity struct {
	SubjectID int64
	Role      models.Role
}

// IsAdmin reports whether the caller may see every task.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

type identityKey struct{}

// WithIdentity stores the identity in context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext retrieves the identity from context (if any).
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

var (
	ErrMissingAuthorization = errors.New("missing authorization")
	ErrInvalidAuthorization = errors.New("invalid authorization header")
)

// ParseBearer extracts the token from an "Authorization: Bearer <token>" value.
func ParseBearer(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", ErrMissingAuthorization
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidAuthorization
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", ErrInvalidAuthorization
	}
	return tok, nil
}
