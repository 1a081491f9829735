package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/food_order/internal/models"
)

const (
	EventCreate       = "create"
	EventStatusUpdate = "status:update"

	// OrdersChannel is the push channel dashboards subscribe to.
	OrdersChannel = "orders"
)

const (
	publishTimeout = 5 * time.Second
	// backlog bounds how many envelopes wait for the broker worker.
	backlog = 256
)

// Envelope is what brokers receive for every order event.
type Envelope struct {
	EventID   string        `json:"event_id"`
	Type      string        `json:"type"`
	OrderID   string        `json:"order_id"`
	CreatedAt time.Time     `json:"created_at"`
	Payload   *models.Order `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
	Close() error
}

type Pusher interface {
	Publish(channel, event string, payload any)
}

// Bus fans an order event out to push subscribers and every broker.
// Push happens inline and never blocks; broker publishing runs on a single
// background worker. Delivery is best effort: failures are logged and never
// returned.
type Bus struct {
	push       Pusher
	publishers []Publisher
	log        *slog.Logger
	now        func() time.Time

	mu     sync.RWMutex
	closed bool
	ch     chan Envelope

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewBus(push Pusher, logger *slog.Logger, publishers ...Publisher) *Bus {
	b := &Bus{
		push:       push,
		publishers: publishers,
		log:        logger.With("component", "events"),
		now:        time.Now,
		ch:         make(chan Envelope, backlog),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go b.run()
	return b
}

// Emit pushes the event and queues it for the brokers. It never waits on a
// broker; when the backlog is full the envelope is dropped and logged.
func (b *Bus) Emit(_ context.Context, event string, order *models.Order) {
	if b == nil || order == nil {
		return
	}
	if b.push != nil {
		b.push.Publish(OrdersChannel, event, order)
	}
	if len(b.publishers) == 0 {
		return
	}

	snapshot := *order
	env := Envelope{
		EventID:   uuid.NewString(),
		Type:      event,
		OrderID:   order.ID.String(),
		CreatedAt: b.now().UTC(),
		Payload:   &snapshot,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		b.log.Warn("event_dropped", "type", event, "order_id", env.OrderID, "reason", "bus closed")
		return
	}
	select {
	case b.ch <- env:
	default:
		b.log.Warn("event_dropped", "type", event, "order_id", env.OrderID, "reason", "backlog full")
	}
}

// Close stops intake, waits for queued envelopes to reach the brokers and then
// closes every publisher. When ctx ends first the backlog is abandoned.
func (b *Bus) Close(ctx context.Context) error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
	b.mu.Unlock()

	var errs []error
	select {
	case <-b.done:
	case <-ctx.Done():
		b.stopOnce.Do(func() { close(b.stop) })
		<-b.done
		errs = append(errs, ctx.Err())
	}
	for _, p := range b.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) run() {
	defer close(b.done)
	for env := range b.ch {
		select {
		case <-b.stop:
			return
		default:
		}
		b.publish(env)
	}
}

func (b *Bus) publish(env Envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	go func() {
		select {
		case <-b.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	for _, p := range b.publishers {
		if err := p.Publish(ctx, env); err != nil {
			b.log.Error("event_publish_failed", "type", env.Type, "order_id", env.OrderID, "error", err)
		}
	}
}
