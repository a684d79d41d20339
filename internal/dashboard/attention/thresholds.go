package attention

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds are the rule cut-offs. The catalog and its order are fixed;
// only these values are tunable.
type Thresholds struct {
	// QuoteFollowUpDays is the age in days after which a sent quote with no
	// payment is flagged.
	QuoteFollowUpDays int `yaml:"quoteFollowUpDays"`
	// LeadContactDays is the age in days after which an uncontacted new
	// lead is flagged.
	LeadContactDays int `yaml:"leadContactDays"`
	// RevenueDropRatio is the current/prior month ratio below which the
	// downward-trend rule fires.
	RevenueDropRatio float64 `yaml:"revenueDropRatio"`
}

// DefaultThresholds returns the documented defaults: 3 days, 1 day, 75%.
func DefaultThresholds() Thresholds {
	return Thresholds{
		QuoteFollowUpDays: 3,
		LeadContactDays:   1,
		RevenueDropRatio:  0.75,
	}
}

// LoadThresholds reads overrides from a YAML file. An empty path returns the
// defaults; a missing or unreadable file is an error so a misconfigured
// deployment fails at startup instead of silently alerting on the wrong
// cut-offs.
func LoadThresholds(path string) (Thresholds, error) {
	t := DefaultThresholds()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, err
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Thresholds{}, err
	}

	return t.withDefaults(), nil
}

// withDefaults replaces non-positive values with the documented defaults.
func (t Thresholds) withDefaults() Thresholds {
	defaults := DefaultThresholds()
	if t.QuoteFollowUpDays < 1 {
		t.QuoteFollowUpDays = defaults.QuoteFollowUpDays
	}
	if t.LeadContactDays < 1 {
		t.LeadContactDays = defaults.LeadContactDays
	}
	if t.RevenueDropRatio <= 0 || t.RevenueDropRatio >= 1 {
		t.RevenueDropRatio = defaults.RevenueDropRatio
	}
	return t
}
