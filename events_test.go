package localizer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localizer"
)

func TestManagerEvents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("successful switch emits both events in order", func(t *testing.T) {
		t.Parallel()
		transport := newFakeTransport(docFor("de", nil))
		m := newManager(t,
			localizer.WithTransport(transport),
			localizer.WithLocales("de"),
		)

		var events []localizer.Event
		unsubscribe := m.Subscribe(func(e localizer.Event) {
			events = append(events, e)
		})
		defer unsubscribe()

		require.NoError(t, m.SetLocale(ctx, "de"))

		require.Len(t, events, 2)
		assert.Equal(t, localizer.EventLocaleChanged, events[0].Name)
		assert.Equal(t, localizer.EventLocalesChanged, events[1].Name)
		assert.Equal(t, "de", events[0].Locale)
		assert.Equal(t, []string{"de", "en"}, events[0].Locales)
	})

	t.Run("failed switch emits nothing", func(t *testing.T) {
		t.Parallel()
		transport := newFakeTransport()
		transport.fail["de"] = errors.New("boom")
		m := newManager(t,
			localizer.WithTransport(transport),
			localizer.WithLocales("de"),
		)

		var events []localizer.Event
		defer m.Subscribe(func(e localizer.Event) {
			events = append(events, e)
		})()

		require.Error(t, m.SetLocale(ctx, "de"))
		assert.Empty(t, events)
	})

	t.Run("rejected switch emits nothing", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)

		var events []localizer.Event
		defer m.Subscribe(func(e localizer.Event) {
			events = append(events, e)
		})()

		require.Error(t, m.SetLocale(ctx, "fr"))
		assert.Empty(t, events)
	})

	t.Run("unsubscribed callbacks stop receiving events", func(t *testing.T) {
		t.Parallel()
		transport := newFakeTransport(docFor("de", nil), docFor("fr", nil))
		m := newManager(t,
			localizer.WithTransport(transport),
			localizer.WithLocales("de", "fr"),
		)

		var calls int
		unsubscribe := m.Subscribe(func(localizer.Event) { calls++ })

		require.NoError(t, m.SetLocale(ctx, "de"))
		assert.Equal(t, 2, calls)

		unsubscribe()
		require.NoError(t, m.SetLocale(ctx, "fr"))
		assert.Equal(t, 2, calls)
	})

	t.Run("subscriber may query the manager", func(t *testing.T) {
		t.Parallel()
		transport := newFakeTransport(docFor("de", nil))
		m := newManager(t,
			localizer.WithTransport(transport),
			localizer.WithLocales("de"),
		)

		var seen string
		defer m.Subscribe(func(e localizer.Event) {
			if e.Name == localizer.EventLocaleChanged {
				seen = m.Locale()
			}
		})()

		require.NoError(t, m.SetLocale(ctx, "de"))
		assert.Equal(t, "de", seen, "the switch is committed before notifications fire")
	})
}
