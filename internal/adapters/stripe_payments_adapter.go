// Package adapters wires modules together without direct coupling. Each
// adapter implements a consumer-side port over another module's service.
package adapters

import (
	"context"
	"time"

	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/internal/dashboard/ports"
	stripeservice "opsboard_backend/internal/stripe/service"
	stripetransport "opsboard_backend/internal/stripe/transport"
)

// StripePaymentsAdapter adapts the stripe service to the dashboard's
// PaymentsReader port.
type StripePaymentsAdapter struct {
	service *stripeservice.Service
}

// NewStripePaymentsAdapter creates the adapter. A nil service yields a nil
// reader, which the dashboard treats as processor absent.
func NewStripePaymentsAdapter(svc *stripeservice.Service) ports.PaymentsReader {
	if svc == nil {
		return nil
	}
	return &StripePaymentsAdapter{service: svc}
}

// Summary fetches the processor snapshot and maps it to the dashboard's
// domain shape.
func (a *StripePaymentsAdapter) Summary(ctx context.Context) (*domain.PaymentSummary, error) {
	fin, err := a.service.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return toDomain(fin), nil
}

func toDomain(fin *stripetransport.FinancialSummary) *domain.PaymentSummary {
	summary := &domain.PaymentSummary{
		BalanceAvailable: fin.BalanceAvailable,
		Charges:          make([]domain.Charge, 0, len(fin.Charges)),
		Payouts:          make([]domain.Payout, 0, len(fin.Payouts)),
		MonthlyRevenue:   make([]domain.MonthlyRevenue, 0, len(fin.MonthlyRevenue)),
		CapturedAt:       fin.CapturedAt,
	}

	for _, ch := range fin.Charges {
		summary.Charges = append(summary.Charges, domain.Charge{
			Amount:    ch.Amount,
			Status:    ch.Status,
			CreatedAt: ch.CreatedAt,
		})
	}
	for _, p := range fin.Payouts {
		summary.Payouts = append(summary.Payouts, domain.Payout{
			Amount:    p.Amount,
			Status:    p.Status,
			CreatedAt: p.ArrivalDate,
		})
	}
	for _, m := range fin.MonthlyRevenue {
		// Buckets with an unparseable month label are dropped rather than
		// misfiled under the zero time.
		month, err := time.Parse("2006-01", m.Month)
		if err != nil {
			continue
		}
		summary.MonthlyRevenue = append(summary.MonthlyRevenue, domain.MonthlyRevenue{
			Month:  month,
			Amount: m.Amount,
		})
	}

	return summary
}
