package ports

import (
	"context"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuthEvent) error
}

// AuditSink accepts audit events for asynchronous recording. Submit must
// never block the calling request; implementations drop on backpressure.
type AuditSink interface {
	Submit(event domain.AuthEvent)
}
