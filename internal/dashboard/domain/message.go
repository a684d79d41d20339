package domain

import "time"

// MessageDirection tells who initiated a message.
type MessageDirection string

const (
	DirectionInbound  MessageDirection = "Inbound"
	DirectionOutbound MessageDirection = "Outbound"
	DirectionInternal MessageDirection = "Internal"
)

// ParseMessageDirection maps an upstream label onto the direction vocabulary,
// defaulting to Internal so unclassifiable traffic never shows up as
// customer activity.
func ParseMessageDirection(label string) MessageDirection {
	switch MessageDirection(label) {
	case DirectionInbound, DirectionOutbound:
		return MessageDirection(label)
	default:
		return DirectionInternal
	}
}

// MessageType is the channel a message arrived on.
type MessageType string

const (
	MessageTypeSMS    MessageType = "SMS"
	MessageTypeEmail  MessageType = "Email"
	MessageTypeCall   MessageType = "Call"
	MessageTypeSystem MessageType = "System"
	MessageTypeNote   MessageType = "Note"
)

// ParseMessageType maps an upstream label onto the type vocabulary,
// defaulting to System.
func ParseMessageType(label string) MessageType {
	switch MessageType(label) {
	case MessageTypeSMS, MessageTypeEmail, MessageTypeCall, MessageTypeNote:
		return MessageType(label)
	default:
		return MessageTypeSystem
	}
}

// Message is a normalized communication record. EngagementRef is an external
// correlation key and is not referentially enforced; it may be empty or
// point nowhere.
type Message struct {
	Direction     MessageDirection
	Type          MessageType
	Sender        string
	EngagementRef string
	SentAt        time.Time
}
