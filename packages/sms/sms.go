// Package sms delivers short text messages to mobile numbers. There is no
// gateway integration here: LogSender simulates delivery and QueueSender hands
// the message to a worker through RabbitMQ.
package sms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var ErrEmptyMessage = errors.New("sms: recipient and body are required")

// Config SMS 传输配置
type Config struct {
	Driver string `koanf:"driver"` // log, rabbitmq
	Sender string `koanf:"sender"` // 发送方号码或名称
	Queue  string `koanf:"queue"`  // rabbitmq 队列名称
}

// Message SMS 消息
type Message struct {
	To     string    `json:"to"`
	From   string    `json:"from,omitempty"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sentAt"`
}

// Sender is the transport collaborator used by the verification engine.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

func (m *Message) validate() error {
	if m == nil || m.To == "" || m.Body == "" {
		return ErrEmptyMessage
	}
	return nil
}

// LogSender writes messages to the log instead of a gateway.
type LogSender struct {
	from string
	log  *slog.Logger
}

func NewLogSender(from string, log *slog.Logger) *LogSender {
	return &LogSender{from: from, log: log}
}

func (s *LogSender) Send(ctx context.Context, msg *Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	if msg.From == "" {
		msg.From = s.from
	}
	s.log.InfoContext(ctx, "sms simulated", "to", msg.To, "from", msg.From, "body", msg.Body)
	return nil
}

// MaskPhone hides the middle digits of a phone number for logs.
func MaskPhone(phone string) string {
	if len(phone) < 7 {
		return phone
	}
	return fmt.Sprintf("%s****%s", phone[:4], phone[len(phone)-3:])
}
