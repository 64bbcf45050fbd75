// Package mailmsg converts a mailer.Email into an RFC 5322 message.
// It is shared by transports that speak raw MIME (SMTP, SES raw sends).
package mailmsg

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/mailgate/pkg/mailer"
)

var ErrInvalidAddress = errors.New("mailmsg: invalid address")

// Build returns a message with a fresh Message-ID whose right-hand side is
// the domain of the From address. The id is returned with angle brackets.
func Build(email *mailer.Email) (*mail.Msg, string, error) {
	m := mail.NewMsg()

	if err := m.From(email.From); err != nil {
		return nil, "", fmt.Errorf("%w: from: %w", ErrInvalidAddress, err)
	}
	if err := m.To(email.To...); err != nil {
		return nil, "", fmt.Errorf("%w: to: %w", ErrInvalidAddress, err)
	}
	if email.ReplyTo != "" {
		if err := m.ReplyTo(email.ReplyTo); err != nil {
			return nil, "", fmt.Errorf("%w: reply-to: %w", ErrInvalidAddress, err)
		}
	}

	m.Subject(email.Subject)
	m.SetDateWithValue(time.Now())
	m.SetMessageIDWithValue(uuid.NewString() + "@" + domainOf(email.From))
	for k, v := range email.Headers {
		m.SetGenHeader(mail.Header(k), v)
	}

	m.SetBodyString(mail.TypeTextHTML, email.HTML)
	if email.Text != "" {
		m.AddAlternativeString(mail.TypeTextPlain, email.Text)
	}

	for _, a := range email.Attachments {
		var opts []mail.FileOption
		if a.ContentType != "" {
			opts = append(opts, mail.WithFileContentType(mail.ContentType(a.ContentType)))
		}
		var err error
		if a.ContentID != "" {
			opts = append(opts, mail.WithFileContentID("<"+strings.Trim(a.ContentID, "<>")+">"))
			err = m.EmbedReader(a.Filename, bytes.NewReader(a.Content), opts...)
		} else {
			err = m.AttachReader(a.Filename, bytes.NewReader(a.Content), opts...)
		}
		if err != nil {
			return nil, "", fmt.Errorf("attach %q: %w", a.Filename, err)
		}
	}

	return m, m.GetMessageID(), nil
}

// Raw renders the message to bytes.
func Raw(email *mailer.Email) ([]byte, string, error) {
	m, id, err := Build(email)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, "", fmt.Errorf("write message: %w", err)
	}
	return buf.Bytes(), id, nil
}

func domainOf(from string) string {
	addr := strings.TrimSuffix(from, ">")
	if i := strings.LastIndexByte(addr, '@'); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "localhost"
}
