// Package transport defines the payment processor snapshot shapes returned
// by the stripe service.
package transport

import "time"

// Charge is a single processor charge, amounts in dollars.
type Charge struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Payout is a transfer from the processor balance to the bank account.
type Payout struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	ArrivalDate time.Time `json:"arrivalDate"`
}

// MonthBucket is a calendar-month revenue figure. Buckets are ordered
// oldest first so the last element is the most recent month.
type MonthBucket struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// FinancialSummary is the full processor snapshot.
type FinancialSummary struct {
	BalanceAvailable float64       `json:"balanceAvailable"`
	BalancePending   float64       `json:"balancePending"`
	Charges          []Charge      `json:"charges"`
	Payouts          []Payout      `json:"payouts"`
	MonthlyRevenue   []MonthBucket `json:"monthlyRevenue"`
	CapturedAt       time.Time     `json:"capturedAt"`
}
