package event

import (
	log "github.com/sirupsen/logrus"

	"foodplatform/pkg/common/domain"
)

type LogDispatcher struct {
	service string
}

func NewLogDispatcher(service string) *LogDispatcher {
	return &LogDispatcher{service: service}
}

func (d *LogDispatcher) Dispatch(e domain.Event) error {
	log.WithFields(log.Fields{
		"service": d.service,
		"event":   e.Type(),
		"payload": e,
	}).Info("domain event")
	return nil
}

// Fanout delivers every event to all dispatchers and reports the first failure.
type Fanout []domain.EventDispatcher

func (f Fanout) Dispatch(e domain.Event) error {
	var first error
	for _, d := range f {
		if err := d.Dispatch(e); err != nil {
			log.WithError(err).WithField("event", e.Type()).Error("failed to dispatch event")
			if first == nil {
				first = err
			}
		}
	}
	return first
}
