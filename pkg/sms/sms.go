package sms

import "context"

// Sender dispatches a text message to a phone number. Implementations
// must not block indefinitely; use the context for cancellation.
type Sender interface {
	Send(ctx context.Context, phone, body string) error
}

// Disabled is a Sender for environments without an SMS provider. Every
// send fails so callers surface the dependency failure instead of
// silently dropping codes.
type Disabled struct{}

func (Disabled) Send(ctx context.Context, phone, body string) error {
	return ErrNotConfigured
}
