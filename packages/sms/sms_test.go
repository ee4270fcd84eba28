package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	declareErr error
	publishErr error
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if f.declareErr != nil {
		return amqp.Queue{}, f.declareErr
	}
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func TestLogSender_Send(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender("Madrese", slog.New(slog.NewTextHandler(&buf, nil)))

	err := sender.Send(context.Background(), &Message{To: "09123456789", Body: "hello"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "sms simulated")
	assert.Contains(t, buf.String(), "09123456789")

	err = sender.Send(context.Background(), &Message{To: "09123456789"})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestQueueSender_Send(t *testing.T) {
	ch := &fakeChannel{}
	sender, err := NewQueueSender(ch, "", "Madrese")
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultQueue}, ch.declared)

	fixed := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	sender.now = func() time.Time { return fixed }

	require.NoError(t, sender.Send(context.Background(), &Message{To: "09123456789", Body: "کد: 123456"}))
	require.Len(t, ch.published, 1)
	assert.Equal(t, DefaultQueue, ch.keys[0])
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)
	assert.Equal(t, "application/json", ch.published[0].ContentType)

	var job Message
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &job))
	assert.Equal(t, "09123456789", job.To)
	assert.Equal(t, "Madrese", job.From)
	assert.True(t, job.SentAt.Equal(fixed))
}

func TestQueueSender_Errors(t *testing.T) {
	_, err := NewQueueSender(&fakeChannel{declareErr: errors.New("closed")}, "q", "")
	assert.Error(t, err)

	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	sender, err := NewQueueSender(ch, "q", "")
	require.NoError(t, err)

	err = sender.Send(context.Background(), &Message{To: "09123456789", Body: "x"})
	assert.ErrorContains(t, err, "publish sms")

	assert.ErrorIs(t, sender.Send(context.Background(), nil), ErrEmptyMessage)
}

func TestRenderVerificationCode(t *testing.T) {
	body, err := RenderVerificationCode("مدرسه", "482913", 5)
	require.NoError(t, err)
	assert.Contains(t, body, "482913")
	assert.Contains(t, body, "5 دقیقه")
	assert.Contains(t, body, "مدرسه")
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "0912****789", MaskPhone("09123456789"))
	assert.Equal(t, "123", MaskPhone("123"))
}
