package transport

import (
	"time"

	"uvbus/pkg/payload"
	"uvbus/pkg/uri"
	"uvbus/pkg/uuid"
)

// MessageType labels the delivery semantics of a message.
type MessageType int

const (
	MessageUnspecified MessageType = iota
	MessagePublish
	MessageNotification
	MessageRequest
	MessageResponse
)

func (t MessageType) String() string {
	switch t {
	case MessagePublish:
		return "publish"
	case MessageNotification:
		return "notification"
	case MessageRequest:
		return "request"
	case MessageResponse:
		return "response"
	default:
		return "unspecified"
	}
}

// Priority is the QoS class of a message, lowest first.
type Priority uint8

const (
	PriorityCS0 Priority = iota
	PriorityCS1
	PriorityCS2
	PriorityCS3
	PriorityCS4
	PriorityCS5
	PriorityCS6
)

// Attributes is the addressing and identity metadata of a message. ID is
// minted by the sender (see pkg/uuid); the transport never stamps it.
type Attributes struct {
	ID       uuid.UUID
	Type     MessageType
	Source   uri.UUri
	Sink     uri.UUri
	Priority Priority
	TTL      time.Duration
}

// Message is one unit of transfer: attributes plus an opaque payload.
type Message struct {
	Attributes Attributes
	Payload    payload.Payload
}
