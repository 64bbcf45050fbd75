// Package ses delivers mail through Amazon SES using raw MIME messages, so
// attachments and inline images are supported.
package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/dmitrymomot/mailgate/pkg/mailer"
	"github.com/dmitrymomot/mailgate/pkg/mailer/mailmsg"
)

// API is the subset of the SES client used by Sender.
type API interface {
	SendRawEmail(ctx context.Context, in *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// Sender implements mailer.Sender.
type Sender struct {
	api       API
	configSet string
}

// NewClient builds an SES client from cfg.
func NewClient(ctx context.Context, cfg Config) (*ses.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ses: load aws config: %w", err)
	}
	return ses.NewFromConfig(awsCfg), nil
}

// New wraps an SES client.
func New(api API, cfg Config) *Sender {
	return &Sender{api: api, configSet: cfg.ConfigurationSet}
}

// Send implements mailer.Sender. The returned id is the SES message id.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	raw, _, err := mailmsg.Raw(email)
	if err != nil {
		return "", err
	}

	in := &ses.SendRawEmailInput{
		RawMessage:   &types.RawMessage{Data: raw},
		Destinations: email.To,
	}
	if s.configSet != "" {
		in.ConfigurationSetName = aws.String(s.configSet)
	}

	out, err := s.api.SendRawEmail(ctx, in)
	if err != nil {
		return "", wrapError(err)
	}
	return aws.ToString(out.MessageId), nil
}
