package attention

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadThresholdsEmptyPathReturnsDefaults(t *testing.T) {
	got, err := LoadThresholds("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DefaultThresholds() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLoadThresholdsReadsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "quoteFollowUpDays: 7\nleadContactDays: 2\nrevenueDropRatio: 0.5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := LoadThresholds(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.QuoteFollowUpDays != 7 || got.LeadContactDays != 2 || got.RevenueDropRatio != 0.5 {
		t.Fatalf("unexpected thresholds: %+v", got)
	}
}

func TestLoadThresholdsPartialOverrideKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("quoteFollowUpDays: 10\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := LoadThresholds(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.QuoteFollowUpDays != 10 {
		t.Fatalf("expected override 10, got %d", got.QuoteFollowUpDays)
	}
	if got.LeadContactDays != DefaultThresholds().LeadContactDays {
		t.Fatalf("expected default lead-contact days, got %d", got.LeadContactDays)
	}
	if got.RevenueDropRatio != DefaultThresholds().RevenueDropRatio {
		t.Fatalf("expected default drop ratio, got %v", got.RevenueDropRatio)
	}
}

func TestLoadThresholdsMissingFileIsError(t *testing.T) {
	if _, err := LoadThresholds(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadThresholdsInvalidValuesClampToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "quoteFollowUpDays: -1\nleadContactDays: 0\nrevenueDropRatio: 1.5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := LoadThresholds(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DefaultThresholds() {
		t.Fatalf("expected invalid values clamped to defaults, got %+v", got)
	}
}
