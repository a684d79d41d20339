// Package aggregate is the metrics aggregation engine. Compute is a pure
// function of its input snapshot and the reference instant: no shared state,
// no I/O, same output for the same input. Each metric group is produced by
// its own function so groups can be tested in isolation.
package aggregate

import (
	"math"

	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/internal/dashboard/period"
	"opsboard_backend/internal/dashboard/reconcile"
	"opsboard_backend/internal/dashboard/transport"
)

// Input is one immutable snapshot of the record sets. Summary is nil when
// the payment processor was unreachable.
type Input struct {
	Engagements []domain.Engagement
	Jobs        []domain.Job
	Technicians []domain.Technician
	Messages    []domain.Message
	Summary     *domain.PaymentSummary
	RecentLimit int
}

// Compute produces the full KPI view-model for the snapshot at the given
// reference instant.
func Compute(in Input, windows period.Windows) transport.Metrics {
	limit := in.RecentLimit
	if limit < 1 {
		limit = 10
	}

	pipeline, totalActual := pipelineCounts(in.Engagements)
	revenue := reconcile.Resolve(in.Engagements, in.Summary, windows)

	m := transport.Metrics{
		GeneratedAt:      windows.Now,
		TotalActualLeads: totalActual,
		ConversionRate:   conversionRate(in.Engagements),
		Pipeline:         pipeline,
		LeadSources:      leadSources(in.Engagements),
		Revenue:          revenueTotals(in.Engagements, revenue),
		SalesActivity:    salesActivity(in.Engagements, windows),
		Profitability:    profitability(in.Engagements),
		Funnel:           funnel(in.Engagements),
		Technicians:      technicians(in.Jobs, in.Technicians),
		RecentLeads:      recentLeads(in.Engagements, limit),
		RecentActivity:   recentActivity(in.Messages, limit),
		StripeAvailable:  in.Summary != nil,
		Stripe:           stripeBreakdown(in.Summary),
	}

	return m
}

// round1 rounds to one decimal place, the display precision for rates.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
