package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Skotchmaster/food_order/pkg/metrics"
)

const sendTimeout = 15 * time.Second

// Queue delivers messages on a single background worker. Enqueue never blocks
// the caller, and delivery failures are only logged and counted.
type Queue struct {
	mailer  Mailer
	log     *slog.Logger
	metrics *metrics.OrderMetrics

	mu     sync.RWMutex
	closed bool
	ch     chan Message

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func NewQueue(size int, mailer Mailer, logger *slog.Logger, m *metrics.OrderMetrics) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{
		mailer:  mailer,
		log:     logger.With("component", "notify"),
		metrics: m,
		ch:      make(chan Message, size),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (q *Queue) Start() {
	q.startOnce.Do(func() { go q.run() })
}

func (q *Queue) Enqueue(msg Message) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.log.Warn("notification_dropped", "to", msg.To, "reason", "queue closed")
		q.metrics.Notification("dropped")
		return false
	}
	select {
	case q.ch <- msg:
		return true
	default:
		q.log.Warn("notification_dropped", "to", msg.To, "reason", "queue full")
		q.metrics.Notification("dropped")
		return false
	}
}

// Close stops intake and waits for queued messages to be sent. When ctx ends
// first the remaining messages are abandoned.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
	q.mu.Unlock()

	q.Start()
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		q.stopOnce.Do(func() { close(q.stop) })
		<-q.done
		return ctx.Err()
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for msg := range q.ch {
		select {
		case <-q.stop:
			return
		default:
		}
		q.deliver(msg)
	}
}

func (q *Queue) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			q.log.Error("notification_failed", "to", msg.To, "reason", "panic", "error", r)
			q.metrics.Notification("failed")
		}
	}()

	if err := q.mailer.Send(ctx, msg); err != nil {
		q.log.Error("notification_failed", "to", msg.To, "title", msg.Title, "error", err)
		q.metrics.Notification("failed")
		return
	}
	q.log.Info("notification_sent", "to", msg.To)
	q.metrics.Notification("sent")
}
