package auth

import (
	"errors"
	"net/http"

	"taskAssignment/internal/apperr"
)

// GateError converts a bearer parsing or token verification failure into the
// outcome the client sees. Every failure is Unauthenticated except a correctly
// signed token with an unknown role, which is Forbidden. The cause stays wrapped
// for logging only.
func GateError(err error) error {
	if errors.Is(err, ErrUnknownRole) {
		return apperr.Forbidden("role not permitted")
	}
	return apperr.Unauthenticated(err)
}

// Authenticate runs the gate for one Authorization header value:
// NoToken -> Verifying -> Authenticated | Rejected.
func Authenticate(v Verifier, header string) (*Identity, error) {
	raw, err := ParseBearer(header)
	if err != nil {
		return nil, GateError(err)
	}
	id, err := v.Verify(raw)
	if err != nil {
		return nil, GateError(err)
	}
	return id, nil
}

// RejectFunc writes the response for a request the gate refused.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// Middleware returns an HTTP gate that verifies the bearer token and injects the
// Identity into the request context. Rejected requests never reach next.
func Middleware(v Verifier, reject RejectFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := Authenticate(v, r.Header.Get("Authorization"))
			if err != nil {
				reject(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
