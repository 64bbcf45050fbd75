package ses_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsses "github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/pkg/mailer"
	"github.com/dmitrymomot/mailgate/pkg/mailer/ses"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) SendRawEmail(ctx context.Context, in *awsses.SendRawEmailInput, _ ...func(*awsses.Options)) (*awsses.SendRawEmailOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*awsses.SendRawEmailOutput)
	return out, args.Error(1)
}

var email = &mailer.Email{
	From:    `"Acme" <noreply@acme.test>`,
	To:      []string{"alice@example.com"},
	Subject: "Hi",
	HTML:    "<p>Hi</p>",
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("sends raw mime", func(t *testing.T) {
		t.Parallel()

		api := &MockAPI{}
		api.On("SendRawEmail", mock.Anything, mock.MatchedBy(func(in *awsses.SendRawEmailInput) bool {
			return aws.ToString(in.ConfigurationSetName) == "transactional" &&
				len(in.Destinations) == 1 && in.Destinations[0] == "alice@example.com" &&
				len(in.RawMessage.Data) > 0
		})).Return(&awsses.SendRawEmailOutput{MessageId: aws.String("0100-abc")}, nil).Once()

		id, err := ses.New(api, ses.Config{ConfigurationSet: "transactional"}).Send(ctx, email)
		require.NoError(t, err)
		require.Equal(t, "0100-abc", id)
		api.AssertExpectations(t)
	})

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "rejected",
			err:  &smithy.GenericAPIError{Code: "MessageRejected", Message: "Email address is not verified."},
			want: ses.ErrRejected,
		},
		{
			name: "throttled",
			err:  &smithy.GenericAPIError{Code: "Throttling", Message: "Maximum sending rate exceeded."},
			want: ses.ErrThrottled,
		},
		{
			name: "other",
			err:  errors.New("dial tcp: i/o timeout"),
			want: ses.ErrSend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := &MockAPI{}
			api.On("SendRawEmail", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			_, err := ses.New(api, ses.Config{}).Send(ctx, email)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewClient_StaticCredentials(t *testing.T) {
	t.Parallel()

	client, err := ses.NewClient(context.Background(), ses.Config{
		Region:    "eu-west-1",
		AccessKey: "AKIDEXAMPLE",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, "eu-west-1", client.Options().Region)
}
