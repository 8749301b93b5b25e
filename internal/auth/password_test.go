package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newHasher(t *testing.T, concurrency int) *PasswordHasher {
	t.Helper()
	h, err := NewPasswordHasher(bcrypt.MinCost, concurrency)
	if err != nil {
		t.Fatalf("NewPasswordHasher: %v", err)
	}
	return h
}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := newHasher(t, 2)
	ctx := context.Background()

	d1, err := h.Hash(ctx, "pw1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	d2, _ := h.Hash(ctx, "pw1")
	if d1 == d2 {
		t.Fatalf("expected distinct salts per call")
	}

	ok, err := h.Verify(ctx, "pw1", d1)
	if err != nil || !ok {
		t.Fatalf("Verify correct password: ok=%v err=%v", ok, err)
	}
	ok, err = h.Verify(ctx, "wrong", d1)
	if err != nil || ok {
		t.Fatalf("Verify wrong password: ok=%v err=%v", ok, err)
	}
}

func TestPasswordHasher_CorruptDigest(t *testing.T) {
	h := newHasher(t, 1)
	_, err := h.Verify(context.Background(), "pw", "not-a-bcrypt-digest")
	if !errors.Is(err, ErrCorruptCredential) {
		t.Fatalf("expected ErrCorruptCredential, got %v", err)
	}
}

func TestPasswordHasher_CostBounds(t *testing.T) {
	if _, err := NewPasswordHasher(bcrypt.MinCost-1, 1); err == nil {
		t.Fatalf("expected error for cost below minimum")
	}
	if _, err := NewPasswordHasher(bcrypt.MaxCost+1, 1); err == nil {
		t.Fatalf("expected error for cost above maximum")
	}
}

func TestPasswordHasher_HonoursContextWhenSaturated(t *testing.T) {
	h := newHasher(t, 1)
	// Occupy the only slot.
	if err := h.sem.Acquire(context.Background(), 1); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer h.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := h.Hash(ctx, "pw"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestPasswordHasher_VerifyDummy(t *testing.T) {
	h := newHasher(t, 1)
	if err := h.VerifyDummy(context.Background(), "anything"); err != nil {
		t.Fatalf("VerifyDummy: %v", err)
	}
}
