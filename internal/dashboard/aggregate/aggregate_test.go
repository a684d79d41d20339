package aggregate

import (
	"testing"
	"time"

	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/internal/dashboard/period"
)

var refNow = time.Date(2025, time.March, 19, 15, 0, 0, 0, time.UTC)

func TestComputeEmptySnapshotYieldsZeroes(t *testing.T) {
	m := Compute(Input{}, period.At(refNow))

	if m.TotalActualLeads != 0 {
		t.Fatalf("expected 0 actual leads, got %d", m.TotalActualLeads)
	}
	if m.ConversionRate != 0 {
		t.Fatalf("expected conversion rate 0 with no leads, got %v", m.ConversionRate)
	}
	if len(m.Pipeline) != len(domain.LeadStatusOrder) {
		t.Fatalf("pipeline must list every status, got %d entries", len(m.Pipeline))
	}
	for _, entry := range m.Pipeline {
		if entry.Count != 0 {
			t.Fatalf("expected zero count for %s, got %d", entry.Status, entry.Count)
		}
	}
	if m.StripeAvailable || m.Stripe != nil {
		t.Fatal("expected no stripe breakdown on empty input")
	}
}

func TestPipelineExcludesNonActualAndUnknown(t *testing.T) {
	engagements := []domain.Engagement{
		{ActualLead: true, Status: domain.StatusNewLead},
		{ActualLead: true, Status: domain.StatusNewLead},
		{ActualLead: true, Status: domain.StatusUnknown},
		{ActualLead: false, Status: domain.StatusNewLead},
	}

	entries, total := pipelineCounts(engagements)

	if total != 3 {
		t.Fatalf("expected 3 actual leads, got %d", total)
	}
	counted := 0
	for _, e := range entries {
		counted += e.Count
		if e.Status == string(domain.StatusNewLead) && e.Count != 2 {
			t.Fatalf("expected 2 new leads, got %d", e.Count)
		}
	}
	if counted != 2 {
		t.Fatalf("unknown status must be out of the pipeline: expected 2 counted, got %d", counted)
	}
}

func TestConversionRateCountsPaidStatuses(t *testing.T) {
	engagements := []domain.Engagement{
		{ActualLead: true, Status: domain.StatusCompleted},
		{ActualLead: true, Status: domain.StatusPartsOrdered},
		{ActualLead: true, Status: domain.StatusNewLead},
		{ActualLead: false, Status: domain.StatusCompleted},
	}

	if got := conversionRate(engagements); got != 66.7 {
		t.Fatalf("expected 66.7, got %v", got)
	}
}

func TestRevenueTotalsQuoteSentScenario(t *testing.T) {
	// One Quote Sent engagement worth 500 created this month: quoted and
	// pending include it, paid does not.
	engagements := []domain.Engagement{
		{ActualLead: true, Status: domain.StatusQuoteSent, ProjectValue: 500, CreatedAt: refNow.Add(-48 * time.Hour)},
	}

	m := Compute(Input{Engagements: engagements}, period.At(refNow))

	if m.Revenue.TotalQuoted != 500 {
		t.Fatalf("expected total quoted 500, got %v", m.Revenue.TotalQuoted)
	}
	if m.Revenue.TotalPaid != 0 {
		t.Fatalf("expected total paid 0, got %v", m.Revenue.TotalPaid)
	}
	if m.Revenue.PendingPayments != 500 {
		t.Fatalf("expected pending 500, got %v", m.Revenue.PendingPayments)
	}
	if m.Revenue.CollectionRate != 0 {
		t.Fatalf("expected collection rate 0, got %v", m.Revenue.CollectionRate)
	}
	if m.Revenue.ThisMonth != 0 || m.Revenue.MonthSource != "internal" {
		t.Fatalf("expected internal month revenue 0, got %v from %q", m.Revenue.ThisMonth, m.Revenue.MonthSource)
	}
}

func TestCollectionRateRounding(t *testing.T) {
	engagements := []domain.Engagement{
		{Status: domain.StatusCompleted, ProjectValue: 100},
		{Status: domain.StatusQuoteSent, ProjectValue: 200},
	}

	m := Compute(Input{Engagements: engagements}, period.At(refNow))

	if m.Revenue.CollectionRate != 33.3 {
		t.Fatalf("expected collection rate 33.3, got %v", m.Revenue.CollectionRate)
	}
}

func TestSalesActivityFansOutAcrossWindows(t *testing.T) {
	engagements := []domain.Engagement{
		{ActualLead: true, Status: domain.StatusNewLead, CreatedAt: refNow.Add(-time.Hour)},
		{ActualLead: true, Status: domain.StatusCompleted, ProjectValue: 800, QuoteAmount: 800, CreatedAt: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
	}

	activity := salesActivity(engagements, period.At(refNow))

	if activity.NewLeads.Today != 1 || activity.NewLeads.Week != 1 || activity.NewLeads.Month != 2 || activity.NewLeads.Year != 2 {
		t.Fatalf("unexpected new-lead cells: %+v", activity.NewLeads)
	}
	if activity.DealsClosed.Today != 0 || activity.DealsClosed.Month != 1 {
		t.Fatalf("unexpected deals-closed cells: %+v", activity.DealsClosed)
	}
	if activity.DealsValue.Month != 800 || activity.DealsValue.Year != 800 {
		t.Fatalf("unexpected deals-value cells: %+v", activity.DealsValue)
	}
	if activity.QuotesOut.Month != 1 || activity.QuotesValue.Month != 800 {
		t.Fatalf("unexpected quote cells: %+v / %+v", activity.QuotesOut, activity.QuotesValue)
	}
}

func TestProfitabilityMissingCostsAndVariation(t *testing.T) {
	engagements := []domain.Engagement{
		// Closed, invoiced, costs recorded: margin participates.
		{Status: domain.StatusCompleted, TotalInvoiced: 1000, TotalCost: 600, Profit: 400, ProfitMargin: 40},
		// Closed, invoiced, no costs: counted as missing.
		{Status: domain.StatusCompleted, TotalInvoiced: 500, Profit: 500, ProfitMargin: 100},
		// Invoiced over quote: positive delta only.
		{Status: domain.StatusCompleted, QuoteAmount: 900, TotalInvoiced: 1000, TotalCost: 100, ProfitMargin: 90},
		// Invoiced under quote: delta dropped.
		{Status: domain.StatusCompleted, QuoteAmount: 1000, TotalInvoiced: 800, TotalCost: 100, ProfitMargin: 87.5},
		// Open with a quote out: pipeline value.
		{Status: domain.StatusQuoteSent, QuoteAmount: 700},
	}

	p := profitability(engagements)

	if p.MissingCostsCount != 1 {
		t.Fatalf("expected 1 missing-costs engagement, got %d", p.MissingCostsCount)
	}
	if p.Variation != 100 {
		t.Fatalf("expected variation 100 (positive deltas only), got %v", p.Variation)
	}
	if p.PipelineValue != 700 {
		t.Fatalf("expected pipeline value 700, got %v", p.PipelineValue)
	}
	want := (40.0 + 100.0 + 90.0 + 87.5) / 4
	if p.AverageProfitMargin != round1(want) {
		t.Fatalf("expected average margin %v, got %v", round1(want), p.AverageProfitMargin)
	}
}

func TestFunnelStagesAreCumulative(t *testing.T) {
	engagements := []domain.Engagement{
		{ActualLead: true, Status: domain.StatusNewLead},
		{ActualLead: true, Status: domain.StatusQuoteSent},
		{ActualLead: true, Status: domain.StatusCompleted},
		{ActualLead: true, Status: domain.StatusLost},
	}

	stages := funnel(engagements)

	wantCounts := map[string]int{
		"All Leads":    4,
		"Contacted":    2, // quote sent + completed
		"Quote Sent":   2,
		"Paid/Ordered": 1,
		"Completed":    1,
	}
	for _, stage := range stages {
		if stage.Count != wantCounts[stage.Label] {
			t.Fatalf("stage %s: expected %d, got %d", stage.Label, wantCounts[stage.Label], stage.Count)
		}
	}
}

func TestLeadSourcesSortedAndDefaulted(t *testing.T) {
	engagements := []domain.Engagement{
		{ActualLead: true, LeadSource: "Google"},
		{ActualLead: true, LeadSource: "Google"},
		{ActualLead: true, LeadSource: "Referral"},
		{ActualLead: true},
	}

	sources := leadSources(engagements)

	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
	if sources[0].Source != "Google" || sources[0].Count != 2 {
		t.Fatalf("expected Google first with 2, got %+v", sources[0])
	}
	found := false
	for _, s := range sources {
		if s.Source == "Unknown" && s.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected missing source grouped under Unknown")
	}
}

func TestTechniciansReferentialMissOmitted(t *testing.T) {
	roster := []domain.Technician{
		{ID: "t1", Name: "Alex", Availability: domain.AvailabilityAvailable},
		{ID: "t2", Name: "Sam", Availability: domain.AvailabilityBusy},
	}
	jobs := []domain.Job{
		{ID: "j1", Status: domain.JobStatusScheduled, TechnicianID: "t1"},
		{ID: "j2", Status: domain.JobStatusInProgress, TechnicianID: "t1"},
		{ID: "j3", Status: domain.JobStatusScheduled, TechnicianID: "ghost"},
	}

	view := technicians(jobs, roster)

	if view.Jobs[0].TechnicianID != "t1" || view.Jobs[0].JobCount != 2 {
		t.Fatalf("expected t1 first with 2 jobs, got %+v", view.Jobs[0])
	}
	if view.Jobs[1].JobCount != 0 {
		t.Fatalf("expected t2 with 0 jobs, got %+v", view.Jobs[1])
	}
	if view.Availability.Available != 1 || view.Availability.Busy != 1 {
		t.Fatalf("unexpected availability tally: %+v", view.Availability)
	}
}

func TestRecentLeadsNewestFirstAndLimited(t *testing.T) {
	engagements := []domain.Engagement{
		{ID: "a", ActualLead: true, CreatedAt: refNow.Add(-3 * time.Hour)},
		{ID: "b", ActualLead: true, CreatedAt: refNow.Add(-time.Hour)},
		{ID: "c", ActualLead: true, CreatedAt: refNow.Add(-2 * time.Hour)},
		{ID: "skip", ActualLead: false, CreatedAt: refNow},
	}

	leads := recentLeads(engagements, 2)

	if len(leads) != 2 {
		t.Fatalf("expected limit 2, got %d", len(leads))
	}
	if leads[0].ID != "b" || leads[1].ID != "c" {
		t.Fatalf("expected newest first [b c], got [%s %s]", leads[0].ID, leads[1].ID)
	}
}

func TestRecentActivityInboundOnly(t *testing.T) {
	messages := []domain.Message{
		{Direction: domain.DirectionInbound, Type: domain.MessageTypeSMS, SentAt: refNow.Add(-time.Hour)},
		{Direction: domain.DirectionOutbound, Type: domain.MessageTypeSMS, SentAt: refNow},
		{Direction: domain.DirectionInbound, Type: domain.MessageTypeCall, SentAt: refNow.Add(-time.Minute)},
	}

	recent := recentActivity(messages, 10)

	if len(recent) != 2 {
		t.Fatalf("expected 2 inbound messages, got %d", len(recent))
	}
	if recent[0].Type != string(domain.MessageTypeCall) {
		t.Fatalf("expected the call first, got %s", recent[0].Type)
	}
}

func TestStripeBreakdownNilSummaryStaysNil(t *testing.T) {
	if got := stripeBreakdown(nil); got != nil {
		t.Fatalf("expected nil breakdown, got %+v", got)
	}

	summary := &domain.PaymentSummary{
		BalanceAvailable: 1200,
		Charges: []domain.Charge{
			{Amount: 100, Status: "succeeded"},
			{Amount: 50, Status: "refunded"},
		},
		Payouts: []domain.Payout{{Amount: 80}},
		MonthlyRevenue: []domain.MonthlyRevenue{
			{Month: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 100},
		},
	}

	breakdown := stripeBreakdown(summary)
	if breakdown.ChargeCount != 2 {
		t.Fatalf("expected 2 charges counted, got %d", breakdown.ChargeCount)
	}
	if breakdown.ChargesTotal != 100 {
		t.Fatalf("expected refunded charge excluded from total, got %v", breakdown.ChargesTotal)
	}
	if breakdown.PayoutsTotal != 80 {
		t.Fatalf("expected payouts total 80, got %v", breakdown.PayoutsTotal)
	}
	if breakdown.MonthlyRevenue[0].Month != "2025-03" {
		t.Fatalf("expected YYYY-MM month label, got %q", breakdown.MonthlyRevenue[0].Month)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	engagements := []domain.Engagement{
		{ID: "a", ActualLead: true, Status: domain.StatusQuoteSent, QuoteAmount: 300, CreatedAt: refNow.Add(-time.Hour)},
		{ID: "b", ActualLead: true, Status: domain.StatusCompleted, ProjectValue: 900, CreatedAt: refNow.Add(-2 * time.Hour)},
	}
	in := Input{Engagements: engagements}
	w := period.At(refNow)

	first := Compute(in, w)
	second := Compute(in, w)

	if first.Revenue != second.Revenue {
		t.Fatalf("expected identical revenue, got %+v vs %+v", first.Revenue, second.Revenue)
	}
	if first.ConversionRate != second.ConversionRate {
		t.Fatal("expected identical conversion rate across runs")
	}
}
