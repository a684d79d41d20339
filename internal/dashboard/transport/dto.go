// Package transport defines the dashboard view-model. The structures carry
// raw numbers and ISO timestamps only; currency symbols, localization, and
// markup are the rendering layer's concern.
package transport

import "time"

// PeriodCells is one row of counts across the four rolling windows.
type PeriodCells struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// PeriodValues is one row of monetary values across the four rolling windows.
type PeriodValues struct {
	Today float64 `json:"today"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
	Year  float64 `json:"year"`
}

// PipelineEntry is the count of actual leads in one lifecycle status.
type PipelineEntry struct {
	Status string `json:"status"`
	Color  string `json:"color"`
	Count  int    `json:"count"`
}

// LeadSourceCount is the count of actual leads per lead-source label.
type LeadSourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// RevenueTotals carries the reconciled and ledger-derived revenue figures.
type RevenueTotals struct {
	Headline        float64 `json:"headline"`
	HeadlineSource  string  `json:"headlineSource"`
	ThisMonth       float64 `json:"thisMonth"`
	MonthSource     string  `json:"monthSource"`
	TotalQuoted     float64 `json:"totalQuoted"`
	TotalPaid       float64 `json:"totalPaid"`
	PendingPayments float64 `json:"pendingPayments"`
	CollectionRate  float64 `json:"collectionRate"`
}

// SalesActivity is the per-period activity table.
type SalesActivity struct {
	NewLeads    PeriodCells  `json:"newLeads"`
	QuotesOut   PeriodCells  `json:"quotesOut"`
	QuotesValue PeriodValues `json:"quotesValue"`
	DealsClosed PeriodCells  `json:"dealsClosed"`
	DealsValue  PeriodValues `json:"dealsValue"`
}

// Profitability carries the profit-side aggregates.
type Profitability struct {
	TotalProfit         float64 `json:"totalProfit"`
	AverageProfitMargin float64 `json:"averageProfitMargin"`
	MissingCostsCount   int     `json:"missingCostsCount"`
	Variation           float64 `json:"variation"`
	PipelineValue       float64 `json:"pipelineValue"`
}

// FunnelStage is one cumulative conversion funnel stage.
type FunnelStage struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TechnicianJobs is the per-technician job load.
type TechnicianJobs struct {
	TechnicianID string `json:"technicianId"`
	Name         string `json:"name"`
	Availability string `json:"availability"`
	JobCount     int    `json:"jobCount"`
}

// AvailabilityTally counts technicians per availability status.
type AvailabilityTally struct {
	Available   int `json:"available"`
	Busy        int `json:"busy"`
	Unavailable int `json:"unavailable"`
	Unknown     int `json:"unknown"`
}

// Technicians groups the utilization view.
type Technicians struct {
	Jobs         []TechnicianJobs  `json:"jobs"`
	Availability AvailabilityTally `json:"availability"`
}

// RecentLead is one row of the recent-leads list.
type RecentLead struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Status       string    `json:"status"`
	StatusColor  string    `json:"statusColor"`
	LeadSource   string    `json:"leadSource,omitempty"`
	Value        float64   `json:"value"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RecentMessage is one row of the recent-activity list.
type RecentMessage struct {
	Type   string    `json:"type"`
	Sender string    `json:"sender"`
	SentAt time.Time `json:"sentAt"`
}

// MonthlyPoint is one month of processor-reported revenue.
type MonthlyPoint struct {
	Month  string  `json:"month"` // YYYY-MM
	Amount float64 `json:"amount"`
}

// StripeBreakdown is present only when the payment processor was reachable.
type StripeBreakdown struct {
	BalanceAvailable float64        `json:"balanceAvailable"`
	ChargeCount      int            `json:"chargeCount"`
	ChargesTotal     float64        `json:"chargesTotal"`
	PayoutsTotal     float64        `json:"payoutsTotal"`
	MonthlyRevenue   []MonthlyPoint `json:"monthlyRevenue"`
	CapturedAt       time.Time      `json:"capturedAt"`
}

// Metrics is the full KPI view-model produced by one aggregation run.
type Metrics struct {
	GeneratedAt      time.Time         `json:"generatedAt"`
	TotalActualLeads int               `json:"totalActualLeads"`
	ConversionRate   float64           `json:"conversionRate"`
	Pipeline         []PipelineEntry   `json:"pipeline"`
	LeadSources      []LeadSourceCount `json:"leadSources"`
	Revenue          RevenueTotals     `json:"revenue"`
	SalesActivity    SalesActivity     `json:"salesActivity"`
	Profitability    Profitability     `json:"profitability"`
	Funnel           []FunnelStage     `json:"funnel"`
	Technicians      Technicians       `json:"technicians"`
	RecentLeads      []RecentLead      `json:"recentLeads"`
	RecentActivity   []RecentMessage   `json:"recentActivity"`
	StripeAvailable  bool              `json:"stripeAvailable"`
	Stripe           *StripeBreakdown  `json:"stripe,omitempty"`
}

// AttentionItem is one surfaced alert.
type AttentionItem struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Dashboard is the complete response served to the rendering layer.
type Dashboard struct {
	Metrics   Metrics         `json:"metrics"`
	Attention []AttentionItem `json:"attention"`
}

// DashboardQuery binds the dashboard endpoint's query parameters.
type DashboardQuery struct {
	At      string `form:"at" validate:"omitempty"`
	Refresh bool   `form:"refresh"`
}
