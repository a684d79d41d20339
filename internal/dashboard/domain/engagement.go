// Package domain holds the typed record model and the closed status
// vocabularies for the dashboard. Upstream systems encode lifecycle stages as
// free-text labels; everything here is the normalized, membership-checked
// form the aggregation engine works with.
package domain

import "time"

// EngagementStatus is the lifecycle status of a sales engagement.
type EngagementStatus string

const (
	// StatusUnknown is assigned when the upstream label is not part of the
	// vocabulary. Unknown engagements are excluded from pipeline and funnel
	// counts but still participate in revenue totals.
	StatusUnknown EngagementStatus = ""

	StatusNewLead            EngagementStatus = "New Lead"
	StatusLeadContacted      EngagementStatus = "Lead Contacted"
	StatusSiteVisitScheduled EngagementStatus = "Site Visit Scheduled"
	StatusPhotosRequested    EngagementStatus = "Photos Requested"
	StatusQuoteSent          EngagementStatus = "Quote Sent"
	StatusPartsOrdered       EngagementStatus = "Initial Parts Ordered"
	StatusCompleted          EngagementStatus = "Completed"
	StatusPositiveReview     EngagementStatus = "Positive Review Received"
	StatusNegativeReview     EngagementStatus = "Negative Review Received"
	StatusLost               EngagementStatus = "Lost"
)

// LeadStatusOrder is the fixed, ordered lead-status vocabulary used for
// pipeline counts. Lost is terminal and listed last.
var LeadStatusOrder = []EngagementStatus{
	StatusNewLead,
	StatusLeadContacted,
	StatusSiteVisitScheduled,
	StatusPhotosRequested,
	StatusQuoteSent,
	StatusPartsOrdered,
	StatusCompleted,
	StatusPositiveReview,
	StatusNegativeReview,
	StatusLost,
}

var knownEngagementStatuses = func() map[EngagementStatus]struct{} {
	m := make(map[EngagementStatus]struct{}, len(LeadStatusOrder))
	for _, s := range LeadStatusOrder {
		m[s] = struct{}{}
	}
	return m
}()

// ParseEngagementStatus maps an upstream label onto the vocabulary.
// Labels outside the vocabulary yield StatusUnknown, never an error.
func ParseEngagementStatus(label string) EngagementStatus {
	s := EngagementStatus(label)
	if _, ok := knownEngagementStatuses[s]; ok {
		return s
	}
	return StatusUnknown
}

// IsKnownEngagementStatus reports whether the status is part of the vocabulary.
func IsKnownEngagementStatus(s EngagementStatus) bool {
	_, ok := knownEngagementStatuses[s]
	return ok
}

// Membership sets. Sets are monotonically shrinking supersets along the
// lifecycle, which is what makes the funnel stages cumulative.

var contactedSet = statusSet(
	StatusLeadContacted, StatusSiteVisitScheduled, StatusPhotosRequested,
	StatusQuoteSent, StatusPartsOrdered, StatusCompleted,
	StatusPositiveReview, StatusNegativeReview,
)

var quotedOrBeyondSet = statusSet(
	StatusQuoteSent, StatusPartsOrdered, StatusCompleted,
	StatusPositiveReview, StatusNegativeReview,
)

var paidSet = statusSet(
	StatusPartsOrdered, StatusCompleted,
	StatusPositiveReview, StatusNegativeReview,
)

var closedSet = statusSet(
	StatusCompleted, StatusPositiveReview, StatusNegativeReview,
)

var terminalSet = statusSet(
	StatusCompleted, StatusPositiveReview, StatusNegativeReview, StatusLost,
)

func statusSet(statuses ...EngagementStatus) map[EngagementStatus]struct{} {
	m := make(map[EngagementStatus]struct{}, len(statuses))
	for _, s := range statuses {
		m[s] = struct{}{}
	}
	return m
}

// IsContacted reports whether the engagement has moved past New Lead.
func (s EngagementStatus) IsContacted() bool { _, ok := contactedSet[s]; return ok }

// IsQuotedOrBeyond reports whether a quote has been issued for this status.
func (s EngagementStatus) IsQuotedOrBeyond() bool { _, ok := quotedOrBeyondSet[s]; return ok }

// IsPaid reports whether the status represents collected revenue.
func (s EngagementStatus) IsPaid() bool { _, ok := paidSet[s]; return ok }

// IsClosed reports whether the deal is won and delivered.
func (s EngagementStatus) IsClosed() bool { _, ok := closedSet[s]; return ok }

// IsTerminal reports whether the engagement left the active pipeline.
func (s EngagementStatus) IsTerminal() bool { _, ok := terminalSet[s]; return ok }

// IsOpen reports whether the engagement is still active in the pipeline.
// Unknown statuses count as open so they are never silently dropped from
// pipeline value.
func (s EngagementStatus) IsOpen() bool { return !s.IsTerminal() }

// Color returns the presentation color token for a status. The rendering
// layer decides what the token looks like; this table only fixes the mapping.
func (s EngagementStatus) Color() string {
	switch s {
	case StatusNewLead:
		return "blue"
	case StatusLeadContacted, StatusSiteVisitScheduled, StatusPhotosRequested:
		return "teal"
	case StatusQuoteSent:
		return "amber"
	case StatusPartsOrdered:
		return "purple"
	case StatusCompleted, StatusPositiveReview:
		return "green"
	case StatusNegativeReview:
		return "orange"
	case StatusLost:
		return "gray"
	default:
		return "gray"
	}
}

// FunnelStage is one cumulative stage of the conversion funnel.
type FunnelStage struct {
	Label   string
	Members map[EngagementStatus]struct{}
}

// FunnelStages is the fixed five-stage cumulative funnel. Stage N counts all
// actual leads whose status belongs to the stage's inclusive set; the first
// stage has a nil member set meaning "every actual lead".
var FunnelStages = []FunnelStage{
	{Label: "All Leads", Members: nil},
	{Label: "Contacted", Members: contactedSet},
	{Label: "Quote Sent", Members: quotedOrBeyondSet},
	{Label: "Paid/Ordered", Members: paidSet},
	{Label: "Completed", Members: closedSet},
}

// CostBreakdown itemizes an engagement's recorded costs.
type CostBreakdown struct {
	Parts  float64
	Labor  float64
	Travel float64
	Other  float64
}

// Engagement is a normalized sales lead/deal record. All monetary fields are
// non-negative; unparsable upstream values are zero, never absent.
type Engagement struct {
	ID                string
	CustomerName      string
	Status            EngagementStatus
	ActualLead        bool
	LeadSource        string
	ServiceCallAmount float64
	ProjectValue      float64
	QuoteAmount       float64
	TotalInvoiced     float64
	TotalCost         float64
	Profit            float64
	ProfitMargin      float64
	Costs             CostBreakdown
	CreatedAt         time.Time
}

// DealValue is the engagement's combined service-call and project value, the
// amount used for quoted/paid/pending revenue totals.
func (e Engagement) DealValue() float64 {
	return e.ServiceCallAmount + e.ProjectValue
}
