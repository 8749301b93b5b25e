package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"taskAssignment/internal/apperr"
)

const maxBodyBytes = 1 << 20

// ParseJSON decodes the request body into dest. Any decoding problem is a
// validation error.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var idErr *idError
		if errors.As(err, &idErr) {
			return apperr.Validation(idErr.Error())
		}
		return apperr.Validation("invalid JSON body")
	}
	return nil
}

// flexibleID accepts a JSON number or a numeric string; browser forms send
// select values as strings.
type flexibleID int64

type idError struct{ raw string }

func (e *idError) Error() string { return fmt.Sprintf("teacherId must be an integer, got %s", e.raw) }

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if strings.TrimSpace(s) == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return &idError{raw: string(b)}
	}
	*f = flexibleID(n)
	return nil
}
