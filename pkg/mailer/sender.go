package mailer

import "context"

// Sender delivers a prepared Email through a mail transport and returns the
// message id assigned by the transport.
type Sender interface {
	Send(ctx context.Context, email *Email) (messageID string, err error)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, email *Email) (string, error)

func (f SenderFunc) Send(ctx context.Context, email *Email) (string, error) {
	return f(ctx, email)
}
