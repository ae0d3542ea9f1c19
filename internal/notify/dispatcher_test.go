package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mail struct {
	to, subject, body string
}

type fakeSender struct {
	mu    sync.Mutex
	sent  []mail
	err   error
	block chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, mail{to, subject, body})
	return f.err
}

func (f *fakeSender) mails() []mail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mail(nil), f.sent...)
}

type fakeUsers map[uuid.UUID]*entity.User

func (f fakeUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f[id], nil
}

func sampleEvent(userID uuid.UUID) Event {
	return Event{
		Kind:       KindPaymentCompleted,
		UserID:     userID,
		BookingID:  uuid.New(),
		Reference:  "BK-20240601-ABCDEF12",
		RoomNumber: "101",
		CheckIn:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.RequireFromString("140"),
	}
}

func TestDispatcherDeliversQueuedEventsOnClose(t *testing.T) {
	userID := uuid.New()
	users := fakeUsers{userID: {Email: "guest@example.com"}}
	sender := &fakeSender{}

	d := NewDispatcher(users, sender, utils.NotifyConfig{Workers: 2, QueueSize: 10}, zap.NewNop())
	d.Start()
	for i := 0; i < 3; i++ {
		d.Notify(sampleEvent(userID))
	}
	d.Close()

	mails := sender.mails()
	require.Len(t, mails, 3)
	assert.Equal(t, "guest@example.com", mails[0].to)
	assert.Equal(t, "Payment received for booking BK-20240601-ABCDEF12", mails[0].subject)
	assert.Contains(t, mails[0].body, "140.00")
	assert.Contains(t, mails[0].body, "2024-06-01 to 2024-06-04")
}

func TestDispatcherLogsSendFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	userID := uuid.New()
	sender := &fakeSender{err: errors.New("smtp down")}

	d := NewDispatcher(fakeUsers{userID: {Email: "guest@example.com"}}, sender, utils.NotifyConfig{Workers: 1, QueueSize: 1}, zap.New(core))
	d.Start()
	d.Notify(sampleEvent(userID))
	d.Close()

	assert.Equal(t, 1, logs.FilterMessage("Failed to send notification").Len())
}

func TestDispatcherSkipsUnknownRecipient(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sender := &fakeSender{}

	d := NewDispatcher(fakeUsers{}, sender, utils.NotifyConfig{Workers: 1, QueueSize: 1}, zap.New(core))
	d.Start()
	d.Notify(sampleEvent(uuid.New()))
	d.Close()

	assert.Empty(t, sender.mails())
	assert.Equal(t, 1, logs.FilterMessage("Notification recipient has no email").Len())
}

func TestDispatcherDropsWhenFullOrClosed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	userID := uuid.New()
	sender := &fakeSender{block: make(chan struct{})}

	// not started: nothing drains the queue
	d := NewDispatcher(fakeUsers{userID: {Email: "guest@example.com"}}, sender, utils.NotifyConfig{Workers: 1, QueueSize: 1}, zap.New(core))
	d.Notify(sampleEvent(userID))
	d.Notify(sampleEvent(userID))
	assert.Equal(t, 1, logs.FilterMessage("Notification dropped, queue full").Len())

	close(sender.block)
	d.Start()
	d.Close()
	d.Notify(sampleEvent(userID))

	assert.Len(t, sender.mails(), 1)
	assert.Equal(t, 1, logs.FilterMessage("Notification dropped, dispatcher closed").Len())
}

func TestEventMessages(t *testing.T) {
	event := sampleEvent(uuid.New())
	for _, kind := range []Kind{KindBookingCreated, KindBookingCancelled, KindBookingStatusChanged, KindPaymentRefunded} {
		event.Kind = kind
		subject, body := event.Message()
		assert.Contains(t, subject, event.Reference, kind)
		assert.Contains(t, body, "room 101", kind)
	}
}

func TestNewSenderFallsBackToLog(t *testing.T) {
	_, ok := NewSender(utils.EmailConfig{}, zap.NewNop()).(*LogSender)
	assert.True(t, ok)

	_, ok = NewSender(utils.EmailConfig{Host: "smtp.example", Port: 587}, zap.NewNop()).(*SMTPSender)
	assert.True(t, ok)
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := string(buildMessage("hotel@example.com", "guest@example.com", "Hello", "Body"))
	assert.Contains(t, msg, "From: hotel@example.com\r\n")
	assert.Contains(t, msg, "To: guest@example.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "\r\n\r\nBody\r\n")
}
