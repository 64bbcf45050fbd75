package resend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/pkg/mailer"
	"github.com/dmitrymomot/mailgate/pkg/mailer/resend"
)

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := resend.New(resend.Config{})
	require.ErrorIs(t, err, resend.ErrMissingAPIKey)
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	email := &mailer.Email{
		From:    `"Acme" <noreply@example.com>`,
		To:      []string{"alice@example.com"},
		Subject: "Hi",
		HTML:    "<p>Hi</p>",
		Attachments: []mailer.Attachment{
			{Filename: "a.txt", ContentType: "text/plain", Content: []byte("hello")},
		},
	}

	t.Run("returns the provider id", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/emails", r.URL.Path)
			assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, email.From, body["from"])
			assert.Equal(t, "Hi", body["subject"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
		}))
		t.Cleanup(srv.Close)

		s, err := resend.New(resend.Config{APIKey: "re_test", BaseURL: srv.URL})
		require.NoError(t, err)

		id, err := s.Send(context.Background(), email)
		require.NoError(t, err)
		require.Equal(t, "49a3999c-0ce1-4ea6-ab68-afcd6dc2e794", id)
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`))
		}))
		t.Cleanup(srv.Close)

		s, err := resend.New(resend.Config{APIKey: "re_test", BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = s.Send(context.Background(), email)
		require.Error(t, err)
		require.Contains(t, err.Error(), "resend:")
	})
}
