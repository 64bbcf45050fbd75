// Package smtp delivers mail through an SMTP relay.
package smtp

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/mailgate/pkg/mailer"
	"github.com/dmitrymomot/mailgate/pkg/mailer/mailmsg"
)

var ErrMissingHost = errors.New("smtp: host is required")

// Sender implements mailer.Sender. Each Send opens its own connection, so a
// Sender is safe for concurrent use.
type Sender struct {
	host string
	opts []mail.Option
}

// New validates cfg. Secure selects implicit TLS; otherwise STARTTLS is used
// when the server offers it. Authentication is enabled when Username is set.
func New(cfg Config) (*Sender, error) {
	if cfg.Host == "" {
		return nil, ErrMissingHost
	}

	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	// Fail on bad options now rather than on the first send.
	if _, err := mail.NewClient(cfg.Host, opts...); err != nil {
		return nil, fmt.Errorf("smtp: %w", err)
	}

	return &Sender{host: cfg.Host, opts: opts}, nil
}

// Send implements mailer.Sender. The returned id is the Message-ID header.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	msg, id, err := mailmsg.Build(email)
	if err != nil {
		return "", err
	}

	client, err := mail.NewClient(s.host, s.opts...)
	if err != nil {
		return "", fmt.Errorf("smtp: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("smtp: %w", err)
	}
	return id, nil
}
