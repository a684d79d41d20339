// Package attention evaluates the fixed catalog of follow-up rules against a
// normalized snapshot. Rules are independent: no rule suppresses another,
// and the catalog order fixes the output order, so identical inputs always
// yield an identical alert list. When nothing fires the engine emits a
// single affirmative all-clear item rather than an empty list.
package attention

import (
	"fmt"
	"math"
	"time"

	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/internal/dashboard/transport"
)

// Rule identifiers, in catalog order.
const (
	RuleQuoteFollowUp   = "quote_follow_up"
	RuleUncontactedLead = "uncontacted_lead"
	RuleUnassignedJob   = "unassigned_job"
	RuleRevenueTrend    = "revenue_trend"
	RuleMissingCosts    = "missing_costs"
	RuleAllClear        = "all_clear"
)

// Severity color tokens.
const (
	SeverityRed    = "red"
	SeverityOrange = "orange"
	SeverityGreen  = "green"
)

// Engine holds the rule thresholds. The catalog itself is fixed.
type Engine struct {
	thresholds Thresholds
}

// New creates a rule engine with the given thresholds.
func New(t Thresholds) *Engine {
	return &Engine{thresholds: t.withDefaults()}
}

// Evaluate runs the catalog against the snapshot. Rules fire in catalog
// order, and within a rule in input order, so the result is deterministic
// for identical inputs.
func (e *Engine) Evaluate(
	engagements []domain.Engagement,
	jobs []domain.Job,
	summary *domain.PaymentSummary,
	now time.Time,
) []transport.AttentionItem {
	items := make([]transport.AttentionItem, 0, 8)

	items = append(items, e.staleQuotes(engagements, now)...)
	items = append(items, e.uncontactedLeads(engagements, now)...)
	items = append(items, e.unassignedJobs(jobs)...)
	items = append(items, e.revenueTrend(summary)...)
	items = append(items, e.missingCosts(engagements)...)

	if len(items) == 0 {
		items = append(items, transport.AttentionItem{
			Rule:     RuleAllClear,
			Severity: SeverityGreen,
			Message:  "All clear: nothing needs attention right now.",
		})
	}

	return items
}

// staleQuotes flags quotes sent with no payment after the follow-up window.
func (e *Engine) staleQuotes(engagements []domain.Engagement, now time.Time) []transport.AttentionItem {
	var items []transport.AttentionItem
	for _, eng := range engagements {
		if eng.Status != domain.StatusQuoteSent {
			continue
		}
		days := daysBetween(eng.CreatedAt, now)
		if days < e.thresholds.QuoteFollowUpDays {
			continue
		}
		items = append(items, transport.AttentionItem{
			Rule:     RuleQuoteFollowUp,
			Severity: SeverityOrange,
			Message:  fmt.Sprintf("Quote sent to %s %d days ago with no payment", eng.CustomerName, days),
		})
	}
	return items
}

// uncontactedLeads flags new leads that have sat uncontacted too long.
func (e *Engine) uncontactedLeads(engagements []domain.Engagement, now time.Time) []transport.AttentionItem {
	var items []transport.AttentionItem
	for _, eng := range engagements {
		if eng.Status != domain.StatusNewLead {
			continue
		}
		days := daysBetween(eng.CreatedAt, now)
		if days < e.thresholds.LeadContactDays {
			continue
		}
		items = append(items, transport.AttentionItem{
			Rule:     RuleUncontactedLead,
			Severity: SeverityRed,
			Message:  fmt.Sprintf("New lead %s has not been contacted for %d days", eng.CustomerName, days),
		})
	}
	return items
}

// unassignedJobs flags open jobs that should have a technician but do not.
func (e *Engine) unassignedJobs(jobs []domain.Job) []transport.AttentionItem {
	var items []transport.AttentionItem
	for _, j := range jobs {
		if !j.Status.NeedsTechnician() || j.TechnicianID != "" {
			continue
		}
		items = append(items, transport.AttentionItem{
			Rule:     RuleUnassignedJob,
			Severity: SeverityOrange,
			Message:  fmt.Sprintf("Job %s is %s with no technician assigned", j.Name, j.Status),
		})
	}
	return items
}

// revenueTrend compares the two most recent processor-reported months. The
// rule only evaluates when both figures exist; it never guesses from
// internal sums.
func (e *Engine) revenueTrend(summary *domain.PaymentSummary) []transport.AttentionItem {
	if summary == nil || len(summary.MonthlyRevenue) < 2 {
		return nil
	}

	current := summary.MonthlyRevenue[len(summary.MonthlyRevenue)-1].Amount
	prior := summary.MonthlyRevenue[len(summary.MonthlyRevenue)-2].Amount
	if prior <= 0 {
		return nil
	}
	if current >= prior*e.thresholds.RevenueDropRatio {
		return nil
	}

	pct := int(math.Round(current / prior * 100))
	return []transport.AttentionItem{{
		Rule:     RuleRevenueTrend,
		Severity: SeverityRed,
		Message:  fmt.Sprintf("Revenue this month is down to %d%% of last month", pct),
	}}
}

// missingCosts flags completed, invoiced engagements with no recorded cost,
// which silently inflate profit figures.
func (e *Engine) missingCosts(engagements []domain.Engagement) []transport.AttentionItem {
	var items []transport.AttentionItem
	for _, eng := range engagements {
		if !eng.Status.IsClosed() || eng.TotalInvoiced <= 0 || eng.TotalCost != 0 {
			continue
		}
		items = append(items, transport.AttentionItem{
			Rule:     RuleMissingCosts,
			Severity: SeverityOrange,
			Message:  fmt.Sprintf("%s is invoiced for %.2f but has no costs recorded", eng.CustomerName, eng.TotalInvoiced),
		})
	}
	return items
}

func daysBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
