package domain

// JobStatus is the lifecycle status of a service job.
type JobStatus string

const (
	JobStatusUnknown         JobStatus = ""
	JobStatusDraft           JobStatus = "Draft"
	JobStatusPending         JobStatus = "Pending"
	JobStatusScheduled       JobStatus = "Scheduled"
	JobStatusTechAssigned    JobStatus = "Tech Assigned"
	JobStatusInProgress      JobStatus = "In Progress"
	JobStatusPaymentReceived JobStatus = "Payment Received"
	JobStatusCompleted       JobStatus = "Completed"
)

var knownJobStatuses = map[JobStatus]struct{}{
	JobStatusDraft:           {},
	JobStatusPending:         {},
	JobStatusScheduled:       {},
	JobStatusTechAssigned:    {},
	JobStatusInProgress:      {},
	JobStatusPaymentReceived: {},
	JobStatusCompleted:       {},
}

// ParseJobStatus maps an upstream label onto the job vocabulary.
// Labels outside the vocabulary yield JobStatusUnknown.
func ParseJobStatus(label string) JobStatus {
	s := JobStatus(label)
	if _, ok := knownJobStatuses[s]; ok {
		return s
	}
	return JobStatusUnknown
}

// NeedsTechnician reports whether a job in this status is expected to have a
// technician assigned.
func (s JobStatus) NeedsTechnician() bool {
	return s == JobStatusPending || s == JobStatusScheduled
}

// Job is a normalized service job. TechnicianID is a weak reference: it may
// be empty, and it may point at a technician that no longer exists.
type Job struct {
	ID           string
	Name         string
	Status       JobStatus
	TechnicianID string
}
