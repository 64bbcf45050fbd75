package ses

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

var (
	ErrRejected  = errors.New("ses: message rejected")
	ErrThrottled = errors.New("ses: sending rate exceeded")
	ErrSend      = errors.New("ses: send failed")
)

func wrapError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "MessageRejected", "MailFromDomainNotVerifiedException", "ConfigurationSetDoesNotExist":
			return fmt.Errorf("%w: %s", ErrRejected, apiErr.ErrorMessage())
		case "Throttling", "ThrottlingException":
			return fmt.Errorf("%w: %s", ErrThrottled, apiErr.ErrorMessage())
		}
	}
	return fmt.Errorf("%w: %v", ErrSend, err)
}
