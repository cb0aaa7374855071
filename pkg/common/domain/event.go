package domain

type Event interface {
	Type() string
}

// AggregateEvent is an event that belongs to a single entity. Brokers use the
// aggregate id as the partition or routing key.
type AggregateEvent interface {
	Event
	AggregateID() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}
