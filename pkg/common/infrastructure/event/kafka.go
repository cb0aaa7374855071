package event

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"foodplatform/pkg/common/domain"
)

// KafkaDispatcher writes events to one topic keyed by aggregate id, so all
// events of an order or delivery land in the same partition.
type KafkaDispatcher struct {
	producer sarama.SyncProducer
	topic    string
	service  string
}

func NewKafkaDispatcher(brokers []string, topic, service string) (*KafkaDispatcher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Timeout = 5 * time.Second
	prod, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, errors.Wrap(err, "create kafka producer")
	}
	return NewKafkaDispatcherWithProducer(prod, topic, service), nil
}

func NewKafkaDispatcherWithProducer(producer sarama.SyncProducer, topic, service string) *KafkaDispatcher {
	return &KafkaDispatcher{producer: producer, topic: topic, service: service}
}

func (d *KafkaDispatcher) Dispatch(e domain.Event) error {
	env := NewEnvelope(d.service, e)
	body, err := json.Marshal(env)
	if err != nil {
		return errors.Wrapf(err, "encode event %s", e.Type())
	}
	msg := &sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(env.Key()),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(e.Type())},
		},
	}
	partition, offset, err := d.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrapf(err, "send event %s to %s", e.Type(), d.topic)
	}
	log.WithFields(log.Fields{
		"topic":     d.topic,
		"partition": partition,
		"offset":    offset,
		"event":     e.Type(),
	}).Debug("event stored")
	return nil
}

func (d *KafkaDispatcher) Close() error {
	return d.producer.Close()
}
