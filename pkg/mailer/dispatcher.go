package mailer

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mailgate/pkg/logger"
)

// NameResolver supplies the sender display name. senderconfig.Cache
// implements it.
type NameResolver interface {
	Resolve(ctx context.Context) string
}

// Dispatcher sends messages through a Sender with a resolved From header.
type Dispatcher struct {
	sender      Sender
	names       NameResolver
	address     string
	body        *BodyBuilder
	concurrency int
	logger      *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithConcurrency bounds parallel deliveries within one bulk send.
// Values below 2 keep bulk sends sequential.
func WithConcurrency(n int) DispatcherOption {
	return func(d *Dispatcher) {
		d.concurrency = max(n, 1)
	}
}

// WithBodyBuilder replaces the default builder, e.g. to enable sanitizing.
func WithBodyBuilder(b *BodyBuilder) DispatcherOption {
	return func(d *Dispatcher) {
		if b != nil {
			d.body = b
		}
	}
}

// WithLogger sets the dispatcher logger.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher creates a Dispatcher that sends from address.
func NewDispatcher(sender Sender, names NameResolver, address string, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sender:      sender,
		names:       names,
		address:     address,
		body:        NewBodyBuilder(false),
		concurrency: 1,
		logger:      logger.NewNope(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// envelope is the part of a message shared by every recipient of a send.
type envelope struct {
	from    string
	subject string
	html    string
	atts    []Attachment
}

func (d *Dispatcher) prepare(ctx context.Context, c Content) (envelope, error) {
	html, err := d.body.HTML(c)
	if err != nil {
		return envelope{}, err
	}
	return envelope{
		from:    FormatFrom(d.names.Resolve(ctx), d.address),
		subject: c.Subject,
		html:    html,
		atts:    c.Attachments,
	}, nil
}

// Send delivers msg to a single recipient and returns the transport message id.
// A transport failure is returned as *TransportError and is not retried.
func (d *Dispatcher) Send(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" {
		return "", ErrNoRecipient
	}
	env, err := d.prepare(ctx, msg.Content)
	if err != nil {
		return "", err
	}
	id, err := d.deliver(ctx, env, msg.To)
	if err != nil {
		return "", &TransportError{Recipient: msg.To, Err: err}
	}
	return id, nil
}

// SendBulk delivers the same content to every recipient, each as its own
// message. One failed recipient never stops the batch. The returned error is
// non-nil only when the message itself is invalid, in which case nothing is sent.
//
// The batch ignores cancellation of ctx so that a disconnected client does not
// leave it half sent.
func (d *Dispatcher) SendBulk(ctx context.Context, msg BulkMessage) (BulkResult, error) {
	if len(msg.Recipients) == 0 {
		return BulkResult{}, ErrNoRecipient
	}
	env, err := d.prepare(ctx, msg.Content)
	if err != nil {
		return BulkResult{}, err
	}

	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	outcomes := make([]Outcome, len(msg.Recipients))

	if d.concurrency <= 1 {
		for i, to := range msg.Recipients {
			outcomes[i] = d.attempt(ctx, env, to)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(d.concurrency)
		for i, to := range msg.Recipients {
			g.Go(func() error {
				outcomes[i] = d.attempt(ctx, env, to)
				return nil
			})
		}
		_ = g.Wait()
	}

	res := newBulkResult(outcomes)
	d.logger.InfoContext(ctx, "bulk email completed",
		slog.Int("total", res.Total()),
		slog.Int("successful", len(res.Successful)),
		slog.Int("failed", len(res.Failed)),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (d *Dispatcher) attempt(ctx context.Context, env envelope, to string) Outcome {
	id, err := d.deliver(ctx, env, to)
	if err != nil {
		return Outcome{Recipient: to, Error: err.Error()}
	}
	return Outcome{Recipient: to, Success: true, MessageID: id}
}

func (d *Dispatcher) deliver(ctx context.Context, env envelope, to string) (string, error) {
	id, err := d.sender.Send(ctx, &Email{
		From:        env.from,
		To:          []string{to},
		Subject:     env.subject,
		HTML:        env.html,
		Attachments: env.atts,
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to send email",
			slog.String("to", to),
			slog.Any("error", err),
		)
		return "", err
	}

	d.logger.InfoContext(ctx, "email sent",
		slog.String("to", to),
		slog.String("message_id", id),
	)
	return id, nil
}
