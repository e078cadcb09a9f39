package shared

import (
	"time"

	"github.com/google/uuid"
)

// Domain event topics consumed by the notification/chat collaborator.
const (
	TopicRequestCreated           = "request.created"
	TopicRequestAccepted          = "request.accepted"
	TopicRequestRejected          = "request.rejected"
	TopicRequestCancelled         = "request.cancelled"
	TopicExchangeAccepted         = "exchange.accepted"
	TopicExchangeMeetingProposed  = "exchange.meeting_proposed"
	TopicExchangeMeetingConfirmed = "exchange.meeting_confirmed"
	TopicExchangeStarted          = "exchange.started"
	TopicExchangeCompleted        = "exchange.completed"
	TopicExchangeCancelled        = "exchange.cancelled"
)

// DomainEvent carries enough identifiers for a collaborator to post a
// system message without querying back into this core.
type DomainEvent struct {
	Topic      string     `json:"topic"`
	RequestID  *uuid.UUID `json:"request_id,omitempty"`
	ExchangeID *uuid.UUID `json:"exchange_id,omitempty"`
	ActorID    uuid.UUID  `json:"actor_id"`
	Status     string     `json:"status"`
	OccurredAt time.Time  `json:"occurred_at"`
}
