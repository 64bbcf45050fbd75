package mailer

import (
	"errors"
	"fmt"
)

var (
	ErrNoRecipient = errors.New("mailer: message must have a recipient")
	ErrNoContent   = errors.New("mailer: message must have html, markdown or text content")
	ErrSendFailed  = errors.New("mailer: failed to send email")
	ErrRender      = errors.New("mailer: failed to render markdown")
)

// TransportError is returned when a Sender rejects a message.
type TransportError struct {
	Recipient string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("send to %s: %v", e.Recipient, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrSendFailed, e.Err}
}
