package aggregate

import (
	"sort"

	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/internal/dashboard/transport"
)

// technicians builds the utilization view: per-technician job counts keyed
// by technician identity plus the availability tally. Jobs referencing a
// technician that is not in the roster are omitted from the counts
// (referential miss, never fatal).
func technicians(jobs []domain.Job, roster []domain.Technician) transport.Technicians {
	counts := make(map[string]int, len(roster))
	for _, t := range roster {
		counts[t.ID] = 0
	}

	for _, j := range jobs {
		if j.TechnicianID == "" {
			continue
		}
		if _, ok := counts[j.TechnicianID]; !ok {
			continue
		}
		counts[j.TechnicianID]++
	}

	var tally transport.AvailabilityTally
	entries := make([]transport.TechnicianJobs, 0, len(roster))
	for _, t := range roster {
		switch t.Availability {
		case domain.AvailabilityAvailable:
			tally.Available++
		case domain.AvailabilityBusy:
			tally.Busy++
		case domain.AvailabilityUnavailable:
			tally.Unavailable++
		default:
			tally.Unknown++
		}

		entries = append(entries, transport.TechnicianJobs{
			TechnicianID: t.ID,
			Name:         t.Name,
			Availability: string(t.Availability),
			JobCount:     counts[t.ID],
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].JobCount != entries[j].JobCount {
			return entries[i].JobCount > entries[j].JobCount
		}
		return entries[i].Name < entries[j].Name
	})

	return transport.Technicians{Jobs: entries, Availability: tally}
}

// recentLeads lists the most recently created actual leads, newest first.
func recentLeads(engagements []domain.Engagement, limit int) []transport.RecentLead {
	leads := make([]transport.RecentLead, 0, limit)
	for _, e := range engagements {
		if !e.ActualLead {
			continue
		}
		leads = append(leads, transport.RecentLead{
			ID:           e.ID,
			CustomerName: e.CustomerName,
			Status:       string(e.Status),
			StatusColor:  e.Status.Color(),
			LeadSource:   e.LeadSource,
			Value:        e.DealValue(),
			CreatedAt:    e.CreatedAt,
		})
	}

	sort.Slice(leads, func(i, j int) bool {
		if !leads[i].CreatedAt.Equal(leads[j].CreatedAt) {
			return leads[i].CreatedAt.After(leads[j].CreatedAt)
		}
		return leads[i].ID < leads[j].ID
	})

	if len(leads) > limit {
		leads = leads[:limit]
	}
	return leads
}

// recentActivity lists the most recent inbound messages, newest first.
// Outbound and internal traffic is not customer activity and is excluded.
func recentActivity(messages []domain.Message, limit int) []transport.RecentMessage {
	recent := make([]transport.RecentMessage, 0, limit)
	for _, m := range messages {
		if m.Direction != domain.DirectionInbound {
			continue
		}
		recent = append(recent, transport.RecentMessage{
			Type:   string(m.Type),
			Sender: m.Sender,
			SentAt: m.SentAt,
		})
	}

	sort.Slice(recent, func(i, j int) bool {
		return recent[i].SentAt.After(recent[j].SentAt)
	})

	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
