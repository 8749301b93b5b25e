package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"taskAssignment/models"
)

var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	// ErrUnknownRole marks a correctly signed token whose role is neither admin nor teacher.
	ErrUnknownRole = errors.New("token role not recognized")
)

// Verifier checks a raw token and returns the identity it carries.
type Verifier interface {
	Verify(token string) (*Identity, error)
}

type claims struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 tokens carrying {id, role}. The secret is
// fixed at construction. With a zero ttl no exp claim is written and tokens stay
// valid until the secret changes.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for the given subject and role.
func (s *TokenService) Issue(subjectID int64, role models.Role) (string, error) {
	if subjectID <= 0 {
		return "", fmt.Errorf("invalid subject id %d", subjectID)
	}
	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q", role)
	}
	c := claims{ID: subjectID, Role: string(role)}
	if s.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(s.now().Add(s.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify checks signature and algorithm and returns the embedded identity.
func (s *TokenService) Verify(tokenStr string) (*Identity, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, classifyJWTError(err)
	}
	if !tok.Valid {
		return nil, ErrInvalidSignature
	}
	if c.ID <= 0 || c.Role == "" {
		return nil, ErrMalformedToken
	}
	role, ok := models.ParseRole(c.Role)
	if !ok {
		return nil, ErrUnknownRole
	}
	return &Identity{SubjectID: c.ID, Role: role}, nil
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}
