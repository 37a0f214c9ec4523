package session

import (
	"context"
	"testing"
	"time"

	"github.com/geocoder89/coursehub/internal/domain/user"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx, Session{
		UserID: "u1",
		Email:  "student@example.com",
		Role:   user.RoleStudent,
	})

	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get(ctx, id)

	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got.Email != "student@example.com" || got.Role != user.RoleStudent {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	if _, err := store.Get(context.Background(), "nope"); err != ErrSessionNotFound {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStoreDestroy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, _ := store.Create(ctx, Session{UserID: "u1"})

	if err := store.Destroy(ctx, id); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	if _, err := store.Get(ctx, id); err != ErrSessionNotFound {
		t.Fatalf("got %v, want ErrSessionNotFound after destroy", err)
	}

	// destroying again is not an error
	if err := store.Destroy(ctx, id); err != nil {
		t.Fatalf("second Destroy: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(5 * time.Millisecond)
	ctx := context.Background()

	id, _ := store.Create(ctx, Session{UserID: "u1"})

	time.Sleep(20 * time.Millisecond)

	if _, err := store.Get(ctx, id); err != ErrSessionNotFound {
		t.Fatalf("got %v, want ErrSessionNotFound after TTL", err)
	}
}
