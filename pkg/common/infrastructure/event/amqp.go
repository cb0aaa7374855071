package event

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"foodplatform/pkg/common/domain"
)

const publishTimeout = 5 * time.Second

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPDispatcher publishes events to a topic exchange, routed by event type.
type AMQPDispatcher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       amqpPublisher
	exchange string
	service  string
}

func NewAMQPDispatcher(url, exchange, service string) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "open rabbitmq channel")
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "declare exchange %s", exchange)
	}
	return &AMQPDispatcher{conn: conn, ch: ch, exchange: exchange, service: service}, nil
}

func (d *AMQPDispatcher) Dispatch(e domain.Event) error {
	env := NewEnvelope(d.service, e)
	body, err := json.Marshal(env)
	if err != nil {
		return errors.Wrapf(err, "encode event %s", e.Type())
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	err = d.ch.PublishWithContext(ctx, d.exchange, e.Type(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    env.ID,
		Timestamp:    env.OccurredAt,
		Body:         body,
	})
	return errors.Wrapf(err, "publish event %s", e.Type())
}

func (d *AMQPDispatcher) Close() error {
	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}
