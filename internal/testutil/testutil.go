package testutil

import (
	"context"
	"database/sql"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"

	"taskAssignment/internal/db"
)

// OpenInMemoryDB opens a named shared-cache in-memory SQLite database and applies
// migrations. The database is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SignClaims returns an HS256 token carrying exactly the given claims. Tests use
// it to forge tokens the service itself would never issue.
func SignClaims(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// GenerateJWTHS256 returns a signed token with the {id, role} claims used by the app.
func GenerateJWTHS256(t *testing.T, secret string, id int64, role string) string {
	t.Helper()
	return SignClaims(t, secret, jwt.MapClaims{"id": id, "role": role})
}

// CtxWithBearer returns an outgoing-style incoming context carrying the Authorization metadata.
func CtxWithBearer(ctx context.Context, token string) context.Context {
	md := metadata.Pairs("authorization", "Bearer "+token)
	return metadata.NewIncomingContext(ctx, md)
}
