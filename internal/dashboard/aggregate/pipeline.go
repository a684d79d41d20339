package aggregate

import (
	"sort"

	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/internal/dashboard/transport"
)

// pipelineCounts groups actual leads by status over the fixed vocabulary.
// Engagements whose status fell outside the vocabulary are excluded from the
// pipeline but still included in the actual-lead total, so the sum of
// pipeline counts is at most totalActual.
func pipelineCounts(engagements []domain.Engagement) ([]transport.PipelineEntry, int) {
	counts := make(map[domain.EngagementStatus]int, len(domain.LeadStatusOrder))
	totalActual := 0

	for _, e := range engagements {
		if !e.ActualLead {
			continue
		}
		totalActual++
		if domain.IsKnownEngagementStatus(e.Status) {
			counts[e.Status]++
		}
	}

	entries := make([]transport.PipelineEntry, 0, len(domain.LeadStatusOrder))
	for _, status := range domain.LeadStatusOrder {
		entries = append(entries, transport.PipelineEntry{
			Status: string(status),
			Color:  status.Color(),
			Count:  counts[status],
		})
	}

	return entries, totalActual
}

// conversionRate is converted actual leads over all actual leads, as a
// percentage rounded to one decimal. Zero actual leads yields 0.0 rather
// than a division fault.
func conversionRate(engagements []domain.Engagement) float64 {
	total, converted := 0, 0
	for _, e := range engagements {
		if !e.ActualLead {
			continue
		}
		total++
		if e.Status.IsPaid() {
			converted++
		}
	}

	if total == 0 {
		return 0
	}
	return round1(float64(converted) / float64(total) * 100)
}

// leadSources counts actual leads per lead-source label, most common first.
// Leads without a source label are grouped under "Unknown".
func leadSources(engagements []domain.Engagement) []transport.LeadSourceCount {
	counts := make(map[string]int)
	for _, e := range engagements {
		if !e.ActualLead {
			continue
		}
		source := e.LeadSource
		if source == "" {
			source = "Unknown"
		}
		counts[source]++
	}

	entries := make([]transport.LeadSourceCount, 0, len(counts))
	for source, count := range counts {
		entries = append(entries, transport.LeadSourceCount{Source: source, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Source < entries[j].Source
	})

	return entries
}

// funnel counts actual leads per cumulative stage. The stage sets are
// monotonically shrinking supersets, so counts are non-increasing left to
// right under typical data (not enforced).
func funnel(engagements []domain.Engagement) []transport.FunnelStage {
	stages := make([]transport.FunnelStage, 0, len(domain.FunnelStages))

	for _, stage := range domain.FunnelStages {
		count := 0
		for _, e := range engagements {
			if !e.ActualLead {
				continue
			}
			if stage.Members == nil {
				count++
				continue
			}
			if _, ok := stage.Members[e.Status]; ok {
				count++
			}
		}
		stages = append(stages, transport.FunnelStage{Label: stage.Label, Count: count})
	}

	return stages
}
