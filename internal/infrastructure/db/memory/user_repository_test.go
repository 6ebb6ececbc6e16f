package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Username: "alice", Email: "alice@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned ID")
	}

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	byID, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if byEmail.ID != byID.ID {
		t.Fatalf("lookups disagree: %q vs %q", byEmail.ID, byID.ID)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.User{Username: "bob", Email: "bob@example.com"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Username: "bobby", Email: "bob@example.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserRepository_ConcurrentDuplicateSignups(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.User{Username: "carol", Email: "carol@example.com"})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrUserExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one winning signup, got %d", successes)
	}
	if conflicts != attempts-1 {
		t.Fatalf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Username: "dave", Email: "dave@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "dave@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected email key to be released, got %v", err)
	}
}
