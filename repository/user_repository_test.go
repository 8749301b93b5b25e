package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"taskAssignment/internal/db"
	"taskAssignment/models"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	d, err := db.Open("file:userrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	u, err := repo.Create(ctx, "bob", "hash-bob", models.RoleTeacher)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Username != "bob" || u.Role != models.RoleTeacher {
		t.Fatalf("unexpected created user: %+v", u)
	}

	g, err := repo.GetByID(ctx, u.ID)
	if err != nil || g == nil || g.Username != "bob" || g.PasswordHash != "hash-bob" {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	g2, err := repo.GetByUsernameAndRole(ctx, "bob", models.RoleTeacher)
	if err != nil || g2 == nil || g2.ID != u.ID {
		t.Fatalf("get by username and role: %v %+v", err, g2)
	}

	// Same username, wrong role: not found.
	g3, err := repo.GetByUsernameAndRole(ctx, "bob", models.RoleAdmin)
	if err != nil || g3 != nil {
		t.Fatalf("expected no match for wrong role, got %+v err=%v", g3, err)
	}

	missing, err := repo.GetByID(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown id, got %+v err=%v", missing, err)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	d, err := db.Open("file:userrepodup?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()
	if _, err := repo.Create(ctx, "alice", "h1", models.RoleAdmin); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Different role and hash still collide on username.
	if _, err := repo.Create(ctx, "alice", "h2", models.RoleTeacher); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUserRepository_ConcurrentDuplicateRegistration(t *testing.T) {
	d, err := db.Open(filepath.Join(t.TempDir(), "race.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	// SQLite has a single writer; without this, WAL snapshot upgrades can
	// surface SQLITE_BUSY instead of a constraint error.
	d.SetMaxOpenConns(1)

	repo := NewUserRepository(d)
	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), "carol", "h", models.RoleTeacher)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrDuplicateUsername):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != n-1 {
		t.Fatalf("expected 1 success and %d duplicates, got %d/%d", n-1, ok, dup)
	}
}

func TestUserRepository_ListByRole(t *testing.T) {
	d, err := db.Open("file:userrepolist?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()
	for _, u := range []struct {
		name string
		role models.Role
	}{{"alice", models.RoleAdmin}, {"bob", models.RoleTeacher}, {"dan", models.RoleTeacher}} {
		if _, err := repo.Create(ctx, u.name, "h", u.role); err != nil {
			t.Fatalf("create %s: %v", u.name, err)
		}
	}

	teachers, err := repo.ListByRole(ctx, models.RoleTeacher)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(teachers) != 2 || teachers[0].Username != "bob" || teachers[1].Username != "dan" {
		t.Fatalf("unexpected teachers: %+v", teachers)
	}
}
