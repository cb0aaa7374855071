package outbox

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	log "github.com/sirupsen/logrus"

	ordermodel "foodplatform/pkg/order/domain/model"
)

type Config struct {
	Interval       time.Duration `envconfig:"OUTBOX_INTERVAL" default:"1s"`
	InitialBackoff time.Duration `envconfig:"OUTBOX_INITIAL_BACKOFF" default:"500ms"`
	MaxBackoff     time.Duration `envconfig:"OUTBOX_MAX_BACKOFF" default:"30s"`
	MaxAttempts    int           `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type OrderStatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, orderID string, status ordermodel.OrderStatus) (*ordermodel.Order, error)
}

// Outbox keeps at most one pending status per order. A newer status replaces
// the pending one, so only the latest desired state is retried. Writes to the
// same order, direct or retried, never overlap.
type Outbox struct {
	cfg     Config
	updater OrderStatusUpdater

	mu      sync.Mutex
	seq     uint64
	entries map[string]*entry
	locks   map[string]*orderLock
}

type orderLock struct {
	mu   sync.Mutex
	refs int
}

type entry struct {
	status   ordermodel.OrderStatus
	seq      uint64
	attempts int
	due      time.Time
	backoff  backoff.BackOff
}

func New(cfg Config, updater OrderStatusUpdater) *Outbox {
	return &Outbox{
		cfg:     cfg,
		updater: updater,
		entries: make(map[string]*entry),
		locks:   make(map[string]*orderLock),
	}
}

// Deliver applies the status to the order right away. On failure the status
// is queued for retry; on success any pending entry for the order is dropped.
func (o *Outbox) Deliver(ctx context.Context, orderID string, status ordermodel.OrderStatus) error {
	unlock := o.lockOrder(orderID)
	defer unlock()

	if _, err := o.updater.UpdateOrderStatus(ctx, orderID, status); err != nil {
		o.Enqueue(orderID, status)
		return err
	}
	o.Forget(orderID)
	return nil
}

func (o *Outbox) Enqueue(orderID string, status ordermodel.OrderStatus) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.cfg.InitialBackoff
	b.MaxInterval = o.cfg.MaxBackoff
	b.MaxElapsedTime = 0
	b.Reset()

	o.mu.Lock()
	defer o.mu.Unlock()
	o.seq++
	o.entries[orderID] = &entry{
		status:  status,
		seq:     o.seq,
		due:     time.Now().Add(b.NextBackOff()),
		backoff: b,
	}
}

// Forget drops a pending update, typically because a newer one was applied.
func (o *Outbox) Forget(orderID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.entries, orderID)
}

func (o *Outbox) Pending(orderID string) (ordermodel.OrderStatus, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	e, ok := o.entries[orderID]
	if !ok {
		return ordermodel.UnknownStatus, false
	}
	return e.status, true
}

func (o *Outbox) Run(ctx context.Context) error {
	ticker := time.NewTicker(o.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			o.Flush(ctx)
		}
	}
}

// Flush retries every entry that is due.
func (o *Outbox) Flush(ctx context.Context) {
	now := time.Now()
	o.mu.Lock()
	var due []string
	for orderID, e := range o.entries {
		if !e.due.After(now) {
			due = append(due, orderID)
		}
	}
	o.mu.Unlock()

	for _, orderID := range due {
		o.retry(ctx, orderID, now)
	}
}

func (o *Outbox) retry(ctx context.Context, orderID string, now time.Time) {
	unlock := o.lockOrder(orderID)
	defer unlock()

	// The entry may have been replaced or dropped while waiting for the lock.
	o.mu.Lock()
	e, ok := o.entries[orderID]
	if !ok || e.due.After(now) {
		o.mu.Unlock()
		return
	}
	status, seq := e.status, e.seq
	o.mu.Unlock()

	_, err := o.updater.UpdateOrderStatus(ctx, orderID, status)
	o.complete(orderID, seq, err)
}

func (o *Outbox) lockOrder(orderID string) func() {
	o.mu.Lock()
	l, ok := o.locks[orderID]
	if !ok {
		l = &orderLock{}
		o.locks[orderID] = l
	}
	l.refs++
	o.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		o.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(o.locks, orderID)
		}
		o.mu.Unlock()
	}
}

func (o *Outbox) complete(orderID string, seq uint64, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	e, ok := o.entries[orderID]
	if !ok || e.seq != seq {
		return
	}
	fields := log.Fields{"order_id": orderID, "status": e.status}
	if err == nil {
		delete(o.entries, orderID)
		log.WithFields(fields).Info("outbox delivered order status")
		return
	}

	e.attempts++
	next := e.backoff.NextBackOff()
	if e.attempts >= o.cfg.MaxAttempts || next == backoff.Stop {
		delete(o.entries, orderID)
		log.WithError(err).WithFields(fields).Error("outbox gave up on order status")
		return
	}
	e.due = time.Now().Add(next)
	log.WithError(err).WithFields(fields).WithField("attempt", e.attempts).Warn("outbox retry failed")
}
