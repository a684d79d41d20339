package domain

// Availability is a technician's availability status.
type Availability string

const (
	AvailabilityAvailable   Availability = "Available"
	AvailabilityBusy        Availability = "Busy"
	AvailabilityUnavailable Availability = "Unavailable"
	AvailabilityUnknown     Availability = "Unknown"
)

// AvailabilityOrder is the fixed tally order for the utilization view.
var AvailabilityOrder = []Availability{
	AvailabilityAvailable,
	AvailabilityBusy,
	AvailabilityUnavailable,
	AvailabilityUnknown,
}

// ParseAvailability maps an upstream label onto the availability vocabulary,
// defaulting to Unknown.
func ParseAvailability(label string) Availability {
	switch Availability(label) {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityUnavailable:
		return Availability(label)
	default:
		return AvailabilityUnknown
	}
}

// Technician is a normalized technician record.
type Technician struct {
	ID           string
	Name         string
	Availability Availability
}
