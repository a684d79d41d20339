// Package normalize converts the loosely-typed record payloads mirrored from
// the upstream systems of record into the typed domain model. Upstream field
// names drift, values arrive as strings or numbers interchangeably, and
// timestamps are frequently missing; every accessor here resolves an alias
// chain and has a defined default, so no malformed record can fail an
// aggregation run.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/platform/phone"
)

// Record is one raw record payload as stored in the mirror tables
// (a decoded JSONB object).
type Record map[string]any

// Text returns the first non-empty string value among the aliased keys.
func (r Record) Text(keys ...string) string {
	for _, key := range keys {
		if s := asString(r[key]); s != "" {
			return s
		}
	}
	return ""
}

// Flag reports whether any aliased key holds a non-empty marker value.
// Upstream encodes booleans as checkboxes ("checked"/true) or free text.
func (r Record) Flag(keys ...string) bool {
	for _, key := range keys {
		switch v := r[key].(type) {
		case bool:
			if v {
				return true
			}
		case string:
			if strings.TrimSpace(v) != "" && !strings.EqualFold(strings.TrimSpace(v), "false") {
				return true
			}
		case float64:
			if v != 0 {
				return true
			}
		}
	}
	return false
}

// Money returns the first parsable monetary value among the aliased keys.
// Currency symbols and thousands separators are tolerated. Unparsable,
// absent, or negative values yield 0 so they never null-propagate into sums.
func (r Record) Money(keys ...string) float64 {
	for _, key := range keys {
		raw, ok := r[key]
		if !ok {
			continue
		}
		if v, ok := asMoney(raw); ok {
			if v < 0 {
				return 0
			}
			return v
		}
	}
	return 0
}

// Time returns the first parsable timestamp among the aliased keys, falling
// back to the supplied reference instant. The fallback guarantees every
// record is temporally classifiable; it misattributes recency for malformed
// records rather than dropping them.
func (r Record) Time(fallback time.Time, keys ...string) time.Time {
	for _, key := range keys {
		if t, ok := asTime(r[key]); ok {
			return t
		}
	}
	return fallback
}

// Ref returns the first reference value among the aliased keys. Upstream
// stores references either as a plain identifier or a one-element array.
func (r Record) Ref(keys ...string) string {
	for _, key := range keys {
		switch v := r[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case []any:
			if len(v) > 0 {
				if s := asString(v[0]); s != "" {
					return s
				}
			}
		case []string:
			if len(v) > 0 && strings.TrimSpace(v[0]) != "" {
				return strings.TrimSpace(v[0])
			}
		}
	}
	return ""
}

// Engagement normalizes a raw engagement payload.
func Engagement(rec Record, now time.Time) domain.Engagement {
	name := rec.Text("Customer Name", "First Name")
	if name == "" {
		name = "Unknown Customer"
	}

	return domain.Engagement{
		ID:                rec.Text("id", "Record ID"),
		CustomerName:      name,
		Status:            domain.ParseEngagementStatus(rec.Text("Status")),
		ActualLead:        rec.Flag("Actual Lead"),
		LeadSource:        rec.Text("Lead Source"),
		ServiceCallAmount: rec.Money("Service Call Amount", "Service Call"),
		ProjectValue:      rec.Money("Project Value"),
		QuoteAmount:       rec.Money("Quote Amount", "Quoted Amount"),
		TotalInvoiced:     rec.Money("Total Invoiced", "Invoiced"),
		TotalCost:         rec.Money("Total Cost"),
		Profit:            rec.Money("Profit"),
		ProfitMargin:      rec.Money("Profit Margin"),
		Costs: domain.CostBreakdown{
			Parts:  rec.Money("Parts Cost"),
			Labor:  rec.Money("Labor Cost"),
			Travel: rec.Money("Travel Cost"),
			Other:  rec.Money("Other Cost"),
		},
		CreatedAt: rec.Time(now, "Date Created", "createdTime"),
	}
}

// Job normalizes a raw job payload.
func Job(rec Record) domain.Job {
	name := rec.Text("Job Name", "Name")
	if name == "" {
		name = rec.Text("id", "Record ID")
	}

	return domain.Job{
		ID:           rec.Text("id", "Record ID"),
		Name:         name,
		Status:       domain.ParseJobStatus(rec.Text("Job Status", "Status")),
		TechnicianID: rec.Ref("Assigned Technician", "Technician"),
	}
}

// Technician normalizes a raw technician payload. The display name falls
// back from a full-name field to first/last parts to a constant.
func Technician(rec Record) domain.Technician {
	name := rec.Text("Name", "Full Name")
	if name == "" {
		name = strings.TrimSpace(rec.Text("First Name") + " " + rec.Text("Last Name"))
	}
	if name == "" {
		name = "Technician"
	}

	return domain.Technician{
		ID:           rec.Text("id", "Record ID"),
		Name:         name,
		Availability: domain.ParseAvailability(rec.Text("Availability Status", "Availability")),
	}
}

// Message normalizes a raw message payload. SMS and call sender identifiers
// are phone numbers and get E.164-normalized so the same caller is never
// counted under two spellings.
func Message(rec Record, now time.Time) domain.Message {
	msgType := domain.ParseMessageType(rec.Text("Message Type", "Type"))

	sender := rec.Text("From", "Sender")
	if msgType == domain.MessageTypeSMS || msgType == domain.MessageTypeCall {
		sender = phone.NormalizeE164(sender)
	}

	return domain.Message{
		Direction:     domain.ParseMessageDirection(rec.Text("Direction")),
		Type:          msgType,
		Sender:        sender,
		EngagementRef: rec.Ref("Engagement", "Lead"),
		SentAt:        rec.Time(now, "Sent At", "Date", "createdTime"),
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return ""
	}
}

func asMoney(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		cleaned := strings.TrimSpace(n)
		cleaned = strings.TrimPrefix(cleaned, "$")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		cleaned = strings.TrimSuffix(cleaned, "%")
		if cleaned == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
