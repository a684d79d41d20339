package reconcile

import (
	"testing"
	"time"

	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/internal/dashboard/period"
)

var refNow = time.Date(2025, time.March, 19, 15, 0, 0, 0, time.UTC)

func paidEngagement(value float64, createdAt time.Time) domain.Engagement {
	return domain.Engagement{
		Status:       domain.StatusCompleted,
		ProjectValue: value,
		CreatedAt:    createdAt,
	}
}

func TestResolvePrefersProcessorWhenReachable(t *testing.T) {
	engagements := []domain.Engagement{paidEngagement(500, refNow.Add(-time.Hour))}
	summary := &domain.PaymentSummary{
		Charges: []domain.Charge{
			{Amount: 900, Status: "succeeded"},
			{Amount: 100, Status: "failed"},
		},
		MonthlyRevenue: []domain.MonthlyRevenue{
			{Month: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Amount: 4000},
			{Month: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 3000},
		},
	}

	rev := Resolve(engagements, summary, period.At(refNow))

	if rev.Headline != 900 {
		t.Fatalf("expected headline 900 (failed charge excluded), got %v", rev.Headline)
	}
	if rev.HeadlineSource != SourceStripe {
		t.Fatalf("expected stripe source, got %q", rev.HeadlineSource)
	}
	if rev.ThisMonth != 3000 {
		t.Fatalf("expected latest monthly bucket 3000, got %v", rev.ThisMonth)
	}
	if rev.MonthSource != SourceStripe {
		t.Fatalf("expected stripe month source, got %q", rev.MonthSource)
	}
}

func TestResolveFallsBackToInternalLedger(t *testing.T) {
	engagements := []domain.Engagement{
		paidEngagement(500, refNow.Add(-time.Hour)),
		paidEngagement(200, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)),
		{Status: domain.StatusQuoteSent, ProjectValue: 999, CreatedAt: refNow},
	}

	rev := Resolve(engagements, nil, period.At(refNow))

	if rev.Headline != 700 {
		t.Fatalf("expected internal paid total 700, got %v", rev.Headline)
	}
	if rev.HeadlineSource != SourceInternal {
		t.Fatalf("expected internal source, got %q", rev.HeadlineSource)
	}
	// Only the paid engagement created this month counts.
	if rev.ThisMonth != 500 {
		t.Fatalf("expected internal month total 500, got %v", rev.ThisMonth)
	}
	if rev.MonthSource != SourceInternal {
		t.Fatalf("expected internal month source, got %q", rev.MonthSource)
	}
}

func TestResolveDegradesMonthOnlyWhenBucketsMissing(t *testing.T) {
	engagements := []domain.Engagement{paidEngagement(500, refNow.Add(-time.Hour))}
	summary := &domain.PaymentSummary{
		Charges: []domain.Charge{{Amount: 900, Status: "succeeded"}},
	}

	rev := Resolve(engagements, summary, period.At(refNow))

	if rev.HeadlineSource != SourceStripe {
		t.Fatalf("expected stripe headline, got %q", rev.HeadlineSource)
	}
	if rev.MonthSource != SourceInternal || rev.ThisMonth != 500 {
		t.Fatalf("expected internal month fallback 500, got %v from %q", rev.ThisMonth, rev.MonthSource)
	}
}

func TestResolveZeroChargesStillAuthoritative(t *testing.T) {
	engagements := []domain.Engagement{paidEngagement(500, refNow.Add(-time.Hour))}
	summary := &domain.PaymentSummary{}

	rev := Resolve(engagements, summary, period.At(refNow))

	// A reachable processor reporting zero revenue wins over internal sums.
	if rev.Headline != 0 || rev.HeadlineSource != SourceStripe {
		t.Fatalf("expected stripe headline 0, got %v from %q", rev.Headline, rev.HeadlineSource)
	}
}
