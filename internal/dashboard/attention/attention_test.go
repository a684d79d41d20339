package attention

import (
	"strings"
	"testing"
	"time"

	"opsboard_backend/internal/dashboard/domain"
)

var refNow = time.Date(2025, time.March, 19, 15, 0, 0, 0, time.UTC)

func TestEvaluateAllClearWhenNothingFires(t *testing.T) {
	engine := New(DefaultThresholds())

	items := engine.Evaluate(nil, nil, nil, refNow)

	if len(items) != 1 {
		t.Fatalf("expected exactly the all-clear item, got %d items", len(items))
	}
	if items[0].Rule != RuleAllClear || items[0].Severity != SeverityGreen {
		t.Fatalf("unexpected all-clear item: %+v", items[0])
	}
}

func TestStaleQuoteFiresAfterThreshold(t *testing.T) {
	engine := New(DefaultThresholds())
	engagements := []domain.Engagement{
		{CustomerName: "Dana", Status: domain.StatusQuoteSent, CreatedAt: refNow.Add(-5 * 24 * time.Hour)},
	}

	items := engine.Evaluate(engagements, nil, nil, refNow)

	if len(items) != 1 || items[0].Rule != RuleQuoteFollowUp {
		t.Fatalf("expected one quote follow-up alert, got %+v", items)
	}
	if items[0].Severity != SeverityOrange {
		t.Fatalf("expected orange severity, got %q", items[0].Severity)
	}
	if !strings.Contains(items[0].Message, "Dana") || !strings.Contains(items[0].Message, "5 days") {
		t.Fatalf("expected customer and age in message, got %q", items[0].Message)
	}
}

func TestFreshQuoteDoesNotFire(t *testing.T) {
	engine := New(DefaultThresholds())
	engagements := []domain.Engagement{
		{Status: domain.StatusQuoteSent, CreatedAt: refNow.Add(-2 * 24 * time.Hour)},
	}

	items := engine.Evaluate(engagements, nil, nil, refNow)

	if items[0].Rule != RuleAllClear {
		t.Fatalf("expected all clear for a quote inside the window, got %+v", items)
	}
}

func TestUncontactedLeadIsRed(t *testing.T) {
	engine := New(DefaultThresholds())
	engagements := []domain.Engagement{
		{CustomerName: "Lee", Status: domain.StatusNewLead, CreatedAt: refNow.Add(-30 * time.Hour)},
	}

	items := engine.Evaluate(engagements, nil, nil, refNow)

	if len(items) != 1 || items[0].Rule != RuleUncontactedLead {
		t.Fatalf("expected uncontacted-lead alert, got %+v", items)
	}
	if items[0].Severity != SeverityRed {
		t.Fatalf("expected red severity, got %q", items[0].Severity)
	}
}

func TestUnassignedJobFiresForPendingAndScheduledOnly(t *testing.T) {
	engine := New(DefaultThresholds())
	jobs := []domain.Job{
		{Name: "Boiler swap", Status: domain.JobStatusScheduled},
		{Name: "Estimate", Status: domain.JobStatusDraft},
		{Name: "Covered", Status: domain.JobStatusPending, TechnicianID: "t1"},
	}

	items := engine.Evaluate(nil, jobs, nil, refNow)

	if len(items) != 1 || items[0].Rule != RuleUnassignedJob {
		t.Fatalf("expected one unassigned-job alert, got %+v", items)
	}
	if !strings.Contains(items[0].Message, "Boiler swap") {
		t.Fatalf("expected job name in message, got %q", items[0].Message)
	}
}

func TestRevenueTrendFiresOnDrop(t *testing.T) {
	engine := New(DefaultThresholds())
	summary := &domain.PaymentSummary{
		MonthlyRevenue: []domain.MonthlyRevenue{
			{Month: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Amount: 10000},
			{Month: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 4000},
		},
	}

	items := engine.Evaluate(nil, nil, summary, refNow)

	if len(items) != 1 || items[0].Rule != RuleRevenueTrend {
		t.Fatalf("expected revenue-trend alert, got %+v", items)
	}
	if items[0].Severity != SeverityRed {
		t.Fatalf("expected red severity, got %q", items[0].Severity)
	}
	if !strings.Contains(items[0].Message, "40%") {
		t.Fatalf("expected 40%% in message, got %q", items[0].Message)
	}
}

func TestRevenueTrendNeedsTwoMonthsAndReachableProcessor(t *testing.T) {
	engine := New(DefaultThresholds())

	oneMonth := &domain.PaymentSummary{
		MonthlyRevenue: []domain.MonthlyRevenue{
			{Month: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 100},
		},
	}

	if items := engine.Evaluate(nil, nil, oneMonth, refNow); items[0].Rule != RuleAllClear {
		t.Fatalf("expected no trend alert with one bucket, got %+v", items)
	}
	if items := engine.Evaluate(nil, nil, nil, refNow); items[0].Rule != RuleAllClear {
		t.Fatalf("expected no trend alert with nil summary, got %+v", items)
	}
}

func TestRevenueTrendHoldsAtThreshold(t *testing.T) {
	engine := New(DefaultThresholds())
	summary := &domain.PaymentSummary{
		MonthlyRevenue: []domain.MonthlyRevenue{
			{Month: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Amount: 1000},
			{Month: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 750},
		},
	}

	if items := engine.Evaluate(nil, nil, summary, refNow); items[0].Rule != RuleAllClear {
		t.Fatalf("exactly 75%% of prior must not fire, got %+v", items)
	}
}

func TestMissingCostsFiresForClosedInvoicedOnly(t *testing.T) {
	engine := New(DefaultThresholds())
	engagements := []domain.Engagement{
		{CustomerName: "NoCosts", Status: domain.StatusCompleted, TotalInvoiced: 900},
		{CustomerName: "HasCosts", Status: domain.StatusCompleted, TotalInvoiced: 900, TotalCost: 300},
		{CustomerName: "OpenDeal", Status: domain.StatusQuoteSent, TotalInvoiced: 900},
	}

	items := engine.Evaluate(engagements, nil, nil, refNow)

	if len(items) != 1 || items[0].Rule != RuleMissingCosts {
		t.Fatalf("expected one missing-costs alert, got %+v", items)
	}
	if !strings.Contains(items[0].Message, "NoCosts") {
		t.Fatalf("expected customer name in message, got %q", items[0].Message)
	}
}

func TestEvaluateIsIdempotentAndOrdered(t *testing.T) {
	engine := New(DefaultThresholds())
	engagements := []domain.Engagement{
		{CustomerName: "Lead", Status: domain.StatusNewLead, CreatedAt: refNow.Add(-48 * time.Hour)},
		{CustomerName: "Quote", Status: domain.StatusQuoteSent, CreatedAt: refNow.Add(-96 * time.Hour)},
	}
	jobs := []domain.Job{{Name: "Job", Status: domain.JobStatusPending}}

	first := engine.Evaluate(engagements, jobs, nil, refNow)
	second := engine.Evaluate(engagements, jobs, nil, refNow)

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 alerts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected identical output at %d: %+v vs %+v", i, first[i], second[i])
		}
	}

	// Catalog order: quote follow-up before uncontacted lead before jobs.
	if first[0].Rule != RuleQuoteFollowUp || first[1].Rule != RuleUncontactedLead || first[2].Rule != RuleUnassignedJob {
		t.Fatalf("unexpected catalog order: %s, %s, %s", first[0].Rule, first[1].Rule, first[2].Rule)
	}
}

func TestCustomThresholds(t *testing.T) {
	engine := New(Thresholds{QuoteFollowUpDays: 7, LeadContactDays: 2, RevenueDropRatio: 0.5})
	engagements := []domain.Engagement{
		{Status: domain.StatusQuoteSent, CreatedAt: refNow.Add(-5 * 24 * time.Hour)},
		{Status: domain.StatusNewLead, CreatedAt: refNow.Add(-30 * time.Hour)},
	}

	items := engine.Evaluate(engagements, nil, nil, refNow)

	// 5-day quote is inside the widened 7-day window; 30-hour lead is inside
	// the widened 2-day window.
	if items[0].Rule != RuleAllClear {
		t.Fatalf("expected all clear under widened thresholds, got %+v", items)
	}
}
