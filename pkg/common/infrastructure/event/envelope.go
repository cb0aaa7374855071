package event

import (
	"time"

	"github.com/google/uuid"

	"foodplatform/pkg/common/domain"
)

// Envelope is the broker representation of a domain event.
type Envelope struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Service    string       `json:"service"`
	OccurredAt time.Time    `json:"occurred_at"`
	Payload    domain.Event `json:"payload"`
}

func NewEnvelope(service string, e domain.Event) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		Type:       e.Type(),
		Service:    service,
		OccurredAt: time.Now().UTC(),
		Payload:    e,
	}
}

func (e Envelope) Key() string {
	if agg, ok := e.Payload.(domain.AggregateEvent); ok {
		return agg.AggregateID()
	}
	return e.Type
}
