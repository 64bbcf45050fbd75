package senderconfig_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/pkg/senderconfig"
)

func TestRefresher(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("invalid schedule", func(t *testing.T) {
		t.Parallel()

		_, err := senderconfig.NewRefresher(senderconfig.New(nil), "not a schedule", nil)
		require.Error(t, err)
	})

	t.Run("start warms the cache", func(t *testing.T) {
		t.Parallel()

		src := (&fakeSource{}).push("Acme", nil)
		c := senderconfig.New(src)

		r, err := senderconfig.NewRefresher(c, "@every 1h", nil)
		require.NoError(t, err)
		require.NoError(t, r.Start(ctx))
		t.Cleanup(func() { _ = r.Stop(ctx) })

		require.Equal(t, senderconfig.StateFresh, c.State())
		require.EqualValues(t, 1, src.calls.Load())
	})

	t.Run("start tolerates an unreachable source", func(t *testing.T) {
		t.Parallel()

		c := senderconfig.New((&fakeSource{}).push("", errDown))
		r, err := senderconfig.NewRefresher(c, "*/5 * * * *", nil)
		require.NoError(t, err)
		require.NoError(t, r.Start(ctx))
		require.NoError(t, r.Stop(ctx))
		require.Equal(t, senderconfig.StateUnset, c.State())
	})
}
