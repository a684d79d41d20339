package domain

import "time"

// Charge is a single payment-processor charge.
type Charge struct {
	Amount    float64
	Status    string
	CreatedAt time.Time
}

// Collected reports whether the charge contributes to revenue. Charges
// arrive with processor-specific statuses; only an explicit failure or
// refund excludes them.
func (c Charge) Collected() bool {
	switch c.Status {
	case "failed", "refunded", "canceled":
		return false
	default:
		return true
	}
}

// Payout is a transfer from the processor balance to the bank account.
type Payout struct {
	Amount    float64
	Status    string
	CreatedAt time.Time
}

// MonthlyRevenue is one month's revenue bucket reported by the processor.
type MonthlyRevenue struct {
	Month  time.Time
	Amount float64
}

// PaymentSummary is the external payment-processor snapshot. A nil
// *PaymentSummary means the processor was unreachable and the dashboard
// must fall back to internal ledger sums; it is never zero-filled.
type PaymentSummary struct {
	BalanceAvailable float64
	Charges          []Charge
	Payouts          []Payout
	MonthlyRevenue   []MonthlyRevenue // most recent last
	CapturedAt       time.Time
}

// ChargesTotal sums all collected charges.
func (s *PaymentSummary) ChargesTotal() float64 {
	var total float64
	for _, c := range s.Charges {
		if c.Collected() {
			total += c.Amount
		}
	}
	return total
}

// LatestMonthlyRevenue returns the most recent monthly bucket, if any.
func (s *PaymentSummary) LatestMonthlyRevenue() (MonthlyRevenue, bool) {
	if len(s.MonthlyRevenue) == 0 {
		return MonthlyRevenue{}, false
	}
	return s.MonthlyRevenue[len(s.MonthlyRevenue)-1], true
}
