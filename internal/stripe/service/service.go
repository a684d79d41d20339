// Package service assembles the processor snapshot from the raw Stripe API
// responses. Cent amounts become dollars here; monthly revenue buckets are
// derived from collected charges grouped by calendar month.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"opsboard_backend/internal/stripe/client"
	"opsboard_backend/internal/stripe/transport"
	"opsboard_backend/platform/logger"
)

const (
	chargeFetchLimit = 100
	payoutFetchLimit = 10
)

// Service builds financial summaries from the Stripe API.
type Service struct {
	client *client.Client
	log    *logger.Logger
	now    func() time.Time
}

// New creates a stripe service.
func New(c *client.Client, log *logger.Logger) *Service {
	return &Service{client: c, log: log, now: time.Now}
}

// Summary fetches the balance, recent charges and payouts and assembles the
// full snapshot. Any fetch failure fails the summary; the caller decides how
// to degrade.
func (s *Service) Summary(ctx context.Context) (*transport.FinancialSummary, error) {
	balance, err := s.client.Balance(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch balance: %w", err)
	}

	charges, err := s.client.Charges(ctx, chargeFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch charges: %w", err)
	}

	payouts, err := s.client.Payouts(ctx, payoutFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch payouts: %w", err)
	}

	summary := &transport.FinancialSummary{
		BalanceAvailable: sumBalance(balance.Available),
		BalancePending:   sumBalance(balance.Pending),
		Charges:          mapCharges(charges),
		Payouts:          mapPayouts(payouts),
		CapturedAt:       s.now().UTC(),
	}
	summary.MonthlyRevenue = monthlyBuckets(summary.Charges)

	return summary, nil
}

func sumBalance(amounts []client.BalanceAmount) float64 {
	var total int64
	for _, a := range amounts {
		total += a.Amount
	}
	return float64(total) / 100
}

func mapCharges(charges []client.Charge) []transport.Charge {
	out := make([]transport.Charge, 0, len(charges))
	for _, ch := range charges {
		status := ch.Status
		if ch.Refunded {
			status = "refunded"
		}
		out = append(out, transport.Charge{
			ID:        ch.ID,
			Amount:    float64(ch.Amount) / 100,
			Status:    status,
			CreatedAt: time.Unix(ch.Created, 0).UTC(),
		})
	}
	return out
}

func mapPayouts(payouts []client.Payout) []transport.Payout {
	out := make([]transport.Payout, 0, len(payouts))
	for _, p := range payouts {
		out = append(out, transport.Payout{
			ID:          p.ID,
			Amount:      float64(p.Amount) / 100,
			Status:      p.Status,
			ArrivalDate: time.Unix(p.ArrivalDate, 0).UTC(),
		})
	}
	return out
}

// monthlyBuckets groups collected charges by calendar month, oldest first.
// Failed and refunded charges do not count as revenue.
func monthlyBuckets(charges []transport.Charge) []transport.MonthBucket {
	totals := make(map[string]float64)
	for _, ch := range charges {
		switch ch.Status {
		case "failed", "refunded", "canceled":
			continue
		}
		month := ch.CreatedAt.Format("2006-01")
		totals[month] += ch.Amount
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	buckets := make([]transport.MonthBucket, 0, len(months))
	for _, m := range months {
		buckets = append(buckets, transport.MonthBucket{Month: m, Amount: totals[m]})
	}
	return buckets
}
