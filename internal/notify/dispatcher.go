package notify

import (
	"context"
	"sync"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// RecipientLookup resolves the account an event is addressed to.
type RecipientLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// Dispatcher queues events and delivers them from a fixed set of workers.
type Dispatcher struct {
	queue   chan Event
	users   RecipientLookup
	sender  Sender
	workers int
	timeout time.Duration
	log     *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     conc.WaitGroup
}

func NewDispatcher(users RecipientLookup, sender Sender, config utils.NotifyConfig, log *zap.Logger) *Dispatcher {
	workers := max(config.Workers, 1)
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Dispatcher{
		queue:   make(chan Event, max(config.QueueSize, 1)),
		users:   users,
		sender:  sender,
		workers: workers,
		timeout: timeout,
		log:     log.With(zap.String("component", "notify")),
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Go(d.work)
	}
	d.log.Info("Notification workers started", zap.Int("workers", d.workers))
}

// Notify never blocks; when the queue is full the event is dropped.
func (d *Dispatcher) Notify(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Notification dropped, dispatcher closed", zap.String("kind", string(event.Kind)))
		return
	}

	select {
	case d.queue <- event:
	default:
		d.log.Warn("Notification dropped, queue full",
			zap.String("kind", string(event.Kind)),
			zap.String("booking_id", event.BookingID.String()),
		)
	}
}

// Close stops accepting events and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	d.log.Info("Notification workers stopped")
}

func (d *Dispatcher) work() {
	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event Event) {
	log := d.log.With(
		zap.String("kind", string(event.Kind)),
		zap.String("booking_id", event.BookingID.String()),
		zap.String("user_id", event.UserID.String()),
	)

	defer func() {
		if p := recover(); p != nil {
			log.Error("Notification delivery panicked", zap.Any("panic", p), zap.Stack("stack"))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	user, err := d.users.FindByID(ctx, event.UserID)
	if err != nil {
		log.Error("Failed to resolve notification recipient", zap.Error(err))
		return
	}
	if user == nil || user.Email == "" {
		log.Warn("Notification recipient has no email")
		return
	}

	subject, body := event.Message()
	if err := d.sender.Send(ctx, user.Email, subject, body); err != nil {
		log.Error("Failed to send notification", zap.Error(err))
		return
	}

	log.Debug("Notification sent", zap.String("to", user.Email))
}
