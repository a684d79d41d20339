package aggregate

import (
	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/internal/dashboard/period"
	"opsboard_backend/internal/dashboard/reconcile"
	"opsboard_backend/internal/dashboard/transport"
)

// revenueTotals derives the ledger totals and attaches the reconciled
// headline figures. Only engagements with a positive deal value participate.
func revenueTotals(engagements []domain.Engagement, rev reconcile.Revenue) transport.RevenueTotals {
	var quoted, paid, pending float64

	for _, e := range engagements {
		value := e.DealValue()
		if value <= 0 {
			continue
		}
		quoted += value
		if e.Status.IsPaid() {
			paid += value
		}
		if e.Status == domain.StatusQuoteSent {
			pending += value
		}
	}

	collectionRate := 0.0
	if quoted > 0 {
		collectionRate = round1(paid / quoted * 100)
	}

	return transport.RevenueTotals{
		Headline:        rev.Headline,
		HeadlineSource:  string(rev.HeadlineSource),
		ThisMonth:       rev.ThisMonth,
		MonthSource:     string(rev.MonthSource),
		TotalQuoted:     quoted,
		TotalPaid:       paid,
		PendingPayments: pending,
		CollectionRate:  collectionRate,
	}
}

// salesActivity fills the per-period table. A single engagement increments
// every window its creation timestamp falls inside, so a deal closed an hour
// ago shows up in all four columns.
func salesActivity(engagements []domain.Engagement, w period.Windows) transport.SalesActivity {
	var activity transport.SalesActivity

	for _, e := range engagements {
		for _, p := range w.Classify(e.CreatedAt) {
			if e.ActualLead {
				bumpCell(&activity.NewLeads, p, 1)
			}
			if e.Status.IsQuotedOrBeyond() && e.QuoteAmount > 0 {
				bumpCell(&activity.QuotesOut, p, 1)
				bumpValue(&activity.QuotesValue, p, e.QuoteAmount)
			}
			if e.Status.IsClosed() {
				bumpCell(&activity.DealsClosed, p, 1)
				bumpValue(&activity.DealsValue, p, e.DealValue())
			}
		}
	}

	return activity
}

func bumpCell(cells *transport.PeriodCells, p period.Period, n int) {
	switch p {
	case period.Today:
		cells.Today += n
	case period.Week:
		cells.Week += n
	case period.Month:
		cells.Month += n
	case period.Year:
		cells.Year += n
	}
}

func bumpValue(values *transport.PeriodValues, p period.Period, v float64) {
	switch p {
	case period.Today:
		values.Today += v
	case period.Week:
		values.Week += v
	case period.Month:
		values.Month += v
	case period.Year:
		values.Year += v
	}
}

// profitability sums the profit-side aggregates. The variation figure keeps
// only positive invoiced-over-quoted deltas; negative deltas are dropped,
// not netted.
func profitability(engagements []domain.Engagement) transport.Profitability {
	var out transport.Profitability
	marginSum := 0.0
	marginCount := 0

	for _, e := range engagements {
		if e.TotalInvoiced > 0 {
			out.TotalProfit += e.Profit
		}

		if e.Status.IsClosed() && e.TotalInvoiced > 0 {
			marginSum += e.ProfitMargin
			marginCount++
			if e.TotalCost == 0 {
				out.MissingCostsCount++
			}
		}

		if e.QuoteAmount > 0 && e.TotalInvoiced > 0 {
			if delta := e.TotalInvoiced - e.QuoteAmount; delta > 0 {
				out.Variation += delta
			}
		}

		if e.Status.IsOpen() && e.QuoteAmount > 0 {
			out.PipelineValue += e.QuoteAmount
		}
	}

	if marginCount > 0 {
		out.AverageProfitMargin = round1(marginSum / float64(marginCount))
	}

	return out
}

// stripeBreakdown maps the processor summary into the view-model. A nil
// summary stays nil: the sub-object is omitted from the output entirely
// rather than zero-filled.
func stripeBreakdown(summary *domain.PaymentSummary) *transport.StripeBreakdown {
	if summary == nil {
		return nil
	}

	var payouts float64
	for _, p := range summary.Payouts {
		payouts += p.Amount
	}

	monthly := make([]transport.MonthlyPoint, 0, len(summary.MonthlyRevenue))
	for _, m := range summary.MonthlyRevenue {
		monthly = append(monthly, transport.MonthlyPoint{
			Month:  m.Month.Format("2006-01"),
			Amount: m.Amount,
		})
	}

	return &transport.StripeBreakdown{
		BalanceAvailable: summary.BalanceAvailable,
		ChargeCount:      len(summary.Charges),
		ChargesTotal:     summary.ChargesTotal(),
		PayoutsTotal:     payouts,
		MonthlyRevenue:   monthly,
		CapturedAt:       summary.CapturedAt,
	}
}
