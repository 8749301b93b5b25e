package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("description is required"), http.StatusBadRequest},
		{DuplicateUsername(), http.StatusBadRequest},
		{InvalidCredentials(), http.StatusBadRequest},
		{Unauthenticated(errors.New("bad sig")), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{Internal(errors.New("disk full")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", Validation("x")), http.StatusBadRequest},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestPublicMessage_HidesInternalCause(t *testing.T) {
	err := Internal(errors.New("SELECT * FROM users failed"))
	if got := PublicMessage(err); got != "internal server error" {
		t.Fatalf("leaked internal detail: %q", got)
	}
	if got := PublicMessage(Unauthenticated(errors.New("signature is invalid"))); got != "unauthenticated" {
		t.Fatalf("leaked token detail: %q", got)
	}
	if !errors.Is(Internal(errSentinel), errSentinel) {
		t.Fatalf("expected cause to be reachable via errors.Is")
	}
}

var errSentinel = errors.New("sentinel")
