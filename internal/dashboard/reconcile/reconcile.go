// Package reconcile merges the two independent revenue signals: the internal
// ledger derived from engagement monetary fields and the external payment
// processor. The precedence is a hard fallback, never a blend: when the
// processor is reachable its figures are authoritative, and internal sums
// are used only when it is not. Mixing partial results from both sources for
// the same metric would make the headline unexplainable, so consumers get
// the chosen source label alongside every figure.
package reconcile

import (
	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/internal/dashboard/period"
)

// Source identifies which signal produced a revenue figure.
type Source string

const (
	SourceStripe   Source = "stripe"
	SourceInternal Source = "internal"
)

// Revenue is the reconciled headline and current-month revenue.
type Revenue struct {
	Headline       float64
	HeadlineSource Source
	ThisMonth      float64
	MonthSource    Source
}

// Resolve picks the authoritative revenue figures. A nil summary, or a
// summary with no usable data for a given figure, degrades that figure to
// the internal ledger sum.
func Resolve(engagements []domain.Engagement, summary *domain.PaymentSummary, w period.Windows) Revenue {
	headline, headlineSource := headline(engagements, summary)
	month, monthSource := thisMonth(engagements, summary, w)

	return Revenue{
		Headline:       headline,
		HeadlineSource: headlineSource,
		ThisMonth:      month,
		MonthSource:    monthSource,
	}
}

func headline(engagements []domain.Engagement, summary *domain.PaymentSummary) (float64, Source) {
	if summary != nil {
		return summary.ChargesTotal(), SourceStripe
	}
	return InternalPaidTotal(engagements), SourceInternal
}

func thisMonth(engagements []domain.Engagement, summary *domain.PaymentSummary, w period.Windows) (float64, Source) {
	if summary != nil {
		if latest, ok := summary.LatestMonthlyRevenue(); ok {
			return latest.Amount, SourceStripe
		}
	}
	return internalMonthTotal(engagements, w), SourceInternal
}

// InternalPaidTotal sums deal values over engagements in a paid status.
func InternalPaidTotal(engagements []domain.Engagement) float64 {
	var total float64
	for _, e := range engagements {
		if e.Status.IsPaid() {
			total += e.DealValue()
		}
	}
	return total
}

func internalMonthTotal(engagements []domain.Engagement, w period.Windows) float64 {
	var total float64
	for _, e := range engagements {
		if e.Status.IsPaid() && w.Contains(period.Month, e.CreatedAt) {
			total += e.DealValue()
		}
	}
	return total
}
