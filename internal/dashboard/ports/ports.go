// Package ports defines the dashboard module's outbound interfaces. The
// module depends on these, never on concrete integrations; adapters in
// internal/adapters bridge to the actual implementations.
package ports

import (
	"context"

	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/internal/dashboard/normalize"
)

// RecordSource supplies the raw record snapshots mirrored from the upstream
// systems of record. The four fetches are independent and may be run
// concurrently.
type RecordSource interface {
	Engagements(ctx context.Context) ([]normalize.Record, error)
	Jobs(ctx context.Context) ([]normalize.Record, error)
	Technicians(ctx context.Context) ([]normalize.Record, error)
	Messages(ctx context.Context) ([]normalize.Record, error)
}

// PaymentsReader supplies the external payment-processor snapshot. An error
// means the processor is unreachable; callers degrade to internal ledger
// sums and must not fail the aggregation.
type PaymentsReader interface {
	Summary(ctx context.Context) (*domain.PaymentSummary, error)
}

// RefreshRequester enqueues an out-of-band snapshot rebuild on the background
// worker. A nil requester means no worker is available and refreshes run
// inline.
type RefreshRequester interface {
	RequestRefresh(ctx context.Context, reason string) error
}
