package testutils

import (
	"context"
	"regexp"
	"sync"

	"madrese/auth-service/packages/sms"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

// SMSRecorder is an sms.Sender that keeps every message. Setting Err makes
// the next sends fail.
type SMSRecorder struct {
	mu       sync.Mutex
	Messages []sms.Message
	Err      error
}

func (r *SMSRecorder) Send(_ context.Context, msg *sms.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Messages = append(r.Messages, *msg)
	return nil
}

func (r *SMSRecorder) SetErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Err = err
}

// LastCode returns the code in the most recent message sent to phone.
func (r *SMSRecorder) LastCode(phone string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].To == phone {
			return codePattern.FindString(r.Messages[i].Body)
		}
	}
	return ""
}

func (r *SMSRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Messages)
}
