package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
	"github.com/fullstacklabs/identity-api/pkg/logger"
)

type recordingAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	done   chan struct{}
	want   int
}

func newRecordingAuditRepo(want int) *recordingAuditRepo {
	return &recordingAuditRepo{done: make(chan struct{}), want: want}
}

func (r *recordingAuditRepo) Insert(_ context.Context, event domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if len(r.events) == r.want {
		close(r.done)
	}
	return nil
}

func (r *recordingAuditRepo) snapshot() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuthEvent, len(r.events))
	copy(out, r.events)
	return out
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	logger.Init(logger.Options{Level: "error"})
	repo := newRecordingAuditRepo(3)
	d := NewDispatcher(2, repo, logger.Get())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Submit(domain.AuthEvent{Type: domain.AuditSignup, SubjectKey: "alice@example.com"})
	d.Submit(domain.AuthEvent{Type: domain.AuditLoginFailure, SubjectKey: "alice@example.com"})
	d.Submit(domain.AuthEvent{Type: domain.AuditLoginSuccess, SubjectKey: "bob@example.com"})

	select {
	case <-repo.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for events, got %d", len(repo.snapshot()))
	}

	if got := len(repo.snapshot()); got != 3 {
		t.Fatalf("expected 3 events, got %d", got)
	}
}

func TestDispatcher_PreservesPerSubjectOrder(t *testing.T) {
	logger.Init(logger.Options{Level: "error"})
	const n = 20
	repo := newRecordingAuditRepo(n)
	d := NewDispatcher(4, repo, logger.Get())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < n; i++ {
		typ := domain.AuditLoginFailure
		if i == n-1 {
			typ = domain.AuditLoginSuccess
		}
		d.Submit(domain.AuthEvent{Type: typ, SubjectKey: "carol@example.com", Timestamp: time.Unix(int64(i), 0)})
	}

	select {
	case <-repo.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for events")
	}

	events := repo.snapshot()
	for i, e := range events {
		if e.Timestamp.Unix() != int64(i) {
			t.Fatalf("event %d out of order: got timestamp %d", i, e.Timestamp.Unix())
		}
	}
	if events[n-1].Type != domain.AuditLoginSuccess {
		t.Fatalf("expected final event to be the success, got %s", events[n-1].Type)
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	logger.Init(logger.Options{Level: "error"})
	d := NewDispatcher(8, newRecordingAuditRepo(1), logger.Get())

	first := d.shardIndex("alice@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice@example.com") != first {
			t.Fatalf("shard index must be deterministic")
		}
	}
}
