package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localizer/pkg/catalog"
)

// collectingSink records every document fed into it.
type collectingSink struct {
	mu   sync.Mutex
	docs []catalog.Document
	err  error
}

func (s *collectingSink) LoadJSON(doc catalog.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.docs = append(s.docs, doc)
	return nil
}

func (s *collectingSink) last() catalog.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.docs) == 0 {
		return nil
	}
	return s.docs[len(s.docs)-1]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoaderURL(t *testing.T) {
	t.Parallel()

	t.Run("default base path", func(t *testing.T) {
		t.Parallel()
		l := catalog.NewLoader(&collectingSink{})
		assert.Equal(t, "/assets/locales/en.json", l.URL("en"))
	})

	t.Run("custom base path with trailing slash trimmed", func(t *testing.T) {
		t.Parallel()
		l := catalog.NewLoader(&collectingSink{},
			catalog.WithBasePath("https://cdn.example.com/locales/"),
		)
		assert.Equal(t, "https://cdn.example.com/locales/de.json", l.URL("de"))
	})

	t.Run("fingerprinted locales get the fragment", func(t *testing.T) {
		t.Parallel()
		l := catalog.NewLoader(&collectingSink{},
			catalog.WithFingerprints(map[string]string{"en": "a1b2c3"}),
		)
		assert.Equal(t, "/assets/locales/a1b2c3/en.json", l.URL("en"))
		assert.Equal(t, "/assets/locales/de.json", l.URL("de"))
	})
}

func TestLoaderLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("fetches, caches, and feeds the sink", func(t *testing.T) {
		t.Parallel()
		sink := &collectingSink{}
		var fetched []string
		l := catalog.NewLoader(sink,
			catalog.WithLoaderLogger(discardLogger()),
			catalog.WithTransport(catalog.TransportFunc(func(_ context.Context, url string) (catalog.Document, error) {
				fetched = append(fetched, url)
				return catalog.Document{"locale": "en"}, nil
			})),
		)

		require.NoError(t, l.Load(ctx, "en"))
		require.Equal(t, []string{"/assets/locales/en.json"}, fetched)
		require.Len(t, sink.docs, 1)

		ok, err := l.Store().Has(ctx, "en")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("second load is a cache hit", func(t *testing.T) {
		t.Parallel()
		sink := &collectingSink{}
		var calls int
		l := catalog.NewLoader(sink,
			catalog.WithLoaderLogger(discardLogger()),
			catalog.WithTransport(catalog.TransportFunc(func(_ context.Context, _ string) (catalog.Document, error) {
				calls++
				return catalog.Document{"locale": "en"}, nil
			})),
		)

		require.NoError(t, l.Load(ctx, "en"))
		require.NoError(t, l.Load(ctx, "en"))
		assert.Equal(t, 1, calls)
		assert.Len(t, sink.docs, 2)
	})

	t.Run("fetch failure leaves the store untouched", func(t *testing.T) {
		t.Parallel()
		sink := &collectingSink{}
		transportErr := errors.New("connection refused")
		l := catalog.NewLoader(sink,
			catalog.WithLoaderLogger(discardLogger()),
			catalog.WithTransport(catalog.TransportFunc(func(_ context.Context, _ string) (catalog.Document, error) {
				return nil, transportErr
			})),
		)

		err := l.Load(ctx, "de")
		require.ErrorIs(t, err, catalog.ErrLoadFailed)
		require.ErrorIs(t, err, transportErr)
		assert.Empty(t, sink.docs)

		ok, hasErr := l.Store().Has(ctx, "de")
		require.NoError(t, hasErr)
		assert.False(t, ok, "a failed fetch must not populate the store")
	})

	t.Run("retry after failure re-fetches", func(t *testing.T) {
		t.Parallel()
		sink := &collectingSink{}
		var calls int
		l := catalog.NewLoader(sink,
			catalog.WithLoaderLogger(discardLogger()),
			catalog.WithTransport(catalog.TransportFunc(func(_ context.Context, _ string) (catalog.Document, error) {
				calls++
				if calls == 1 {
					return nil, errors.New("timeout")
				}
				return catalog.Document{"locale": "de"}, nil
			})),
		)

		require.Error(t, l.Load(ctx, "de"))
		require.NoError(t, l.Load(ctx, "de"))
		assert.Equal(t, 2, calls)
	})

	t.Run("cached copy is isolated from sink mutations", func(t *testing.T) {
		t.Parallel()
		sink := &collectingSink{}
		l := catalog.NewLoader(sink,
			catalog.WithLoaderLogger(discardLogger()),
			catalog.WithTransport(catalog.TransportFunc(func(_ context.Context, _ string) (catalog.Document, error) {
				return catalog.Document{
					"locale":       "en",
					"translations": map[string]any{"Hello": "Hello"},
				}, nil
			})),
		)

		require.NoError(t, l.Load(ctx, "en"))

		// The sink received the original document; mutate it the way
		// a phrase engine retaining the document by reference might.
		sink.last()["translations"].(map[string]any)["Hello"] = "mutated"

		cached, err := l.Store().Get(ctx, "en")
		require.NoError(t, err)
		assert.Equal(t, "Hello", cached["translations"].(map[string]any)["Hello"])
	})

	t.Run("sink failure surfaces as load failure", func(t *testing.T) {
		t.Parallel()
		sink := &collectingSink{err: errors.New("bad catalog shape")}
		l := catalog.NewLoader(sink,
			catalog.WithLoaderLogger(discardLogger()),
			catalog.WithTransport(catalog.TransportFunc(func(_ context.Context, _ string) (catalog.Document, error) {
				return catalog.Document{"locale": "en"}, nil
			})),
		)

		err := l.Load(ctx, "en")
		require.ErrorIs(t, err, catalog.ErrLoadFailed)
	})
}

func TestLoaderPreload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("loads shipped JSON and YAML catalogs", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"en.json":    {Data: []byte(`{"locale":"en","translations":{"Hello":"Hello"}}`)},
			"de.yaml":    {Data: []byte("locale: de\ntranslations:\n  Hello: Hallo\n")},
			"fr.yml":     {Data: []byte("locale: fr\ntranslations:\n  Hello: Bonjour\n")},
			"ignore.txt": {Data: []byte("not a catalog")},
		}

		sink := &collectingSink{}
		l := catalog.NewLoader(sink, catalog.WithLoaderLogger(discardLogger()))

		locales, err := l.Preload(ctx, fsys)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"en", "de", "fr"}, locales)

		// Preloaded locales load without touching the transport.
		require.NoError(t, l.Load(ctx, "de"))
		require.Len(t, sink.docs, 1)
		assert.Equal(t, "de", sink.last()["locale"])
	})

	t.Run("fails on malformed catalog files", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"en.json": {Data: []byte("{broken")},
		}

		l := catalog.NewLoader(&collectingSink{}, catalog.WithLoaderLogger(discardLogger()))
		_, err := l.Preload(ctx, fsys)
		require.ErrorIs(t, err, catalog.ErrInvalidDocument)
	})
}
