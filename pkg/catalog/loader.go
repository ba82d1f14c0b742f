package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

// DefaultBasePath is the default location of catalog documents.
const DefaultBasePath = "/assets/locales"

// Sink receives loaded catalog documents. The phrase engine is the
// usual sink; it may retain or mutate what it is fed, which is why the
// loader stores its own deep copy.
type Sink interface {
	LoadJSON(doc Document) error
}

// Loader resolves a locale to a catalog URL, fetches the document via
// its Transport, caches it in its Store, and feeds it to the Sink.
//
// Cached catalogs are authoritative: a second load for the same locale
// never touches the transport. Concurrent loads for the same locale
// share a single in-flight fetch.
type Loader struct {
	sink         Sink
	store        Store
	transport    Transport
	log          *slog.Logger
	basePath     string
	fingerprints map[string]string
	group        singleflight.Group
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithStore sets the catalog store (default in-memory).
func WithStore(store Store) LoaderOption {
	return func(l *Loader) {
		if store != nil {
			l.store = store
		}
	}
}

// WithTransport sets the fetch transport (default HTTP).
func WithTransport(transport Transport) LoaderOption {
	return func(l *Loader) {
		if transport != nil {
			l.transport = transport
		}
	}
}

// WithBasePath sets the base path catalog URLs are built from
// (default "/assets/locales"). The path may be an absolute URL.
func WithBasePath(basePath string) LoaderOption {
	return func(l *Loader) {
		if basePath != "" {
			l.basePath = strings.TrimSuffix(basePath, "/")
		}
	}
}

// WithFingerprints sets the locale → path-fragment map used to build
// cache-busted URLs. Locales absent from the map get plain URLs.
func WithFingerprints(fingerprints map[string]string) LoaderOption {
	return func(l *Loader) {
		l.fingerprints = fingerprints
	}
}

// WithLoaderLogger sets the logger (default slog.Default()).
func WithLoaderLogger(log *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader creates a loader feeding the given sink.
func NewLoader(sink Sink, opts ...LoaderOption) *Loader {
	l := &Loader{
		sink:     sink,
		basePath: DefaultBasePath,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.store == nil {
		l.store = NewMemory()
	}
	if l.transport == nil {
		l.transport = NewHTTPTransport()
	}
	return l
}

// Store returns the loader's catalog store.
func (l *Loader) Store() Store {
	return l.store
}

// URL returns the fetch URL for a locale:
// basePath[/fingerprint]/locale.json.
func (l *Loader) URL(locale string) string {
	if fp, ok := l.fingerprints[locale]; ok && fp != "" {
		return l.basePath + "/" + fp + "/" + locale + ".json"
	}
	return l.basePath + "/" + locale + ".json"
}

// Load makes the catalog for a locale active in the sink.
//
// A cached document is fed to the sink without any network access.
// Otherwise the document is fetched, a deep copy is cached, and the
// original is fed to the sink. On fetch failure the store is left
// untouched for that locale, so a later retry re-fetches instead of
// serving a partial entry.
func (l *Loader) Load(ctx context.Context, locale string) error {
	doc, err := l.store.Get(ctx, locale)
	switch {
	case err == nil:
		return l.feed(locale, doc)
	case !errors.Is(err, ErrNotFound):
		return err
	}

	fetchURL := l.URL(locale)

	v, err, _ := l.group.Do(locale, func() (any, error) {
		// Re-check under the flight: a concurrent load may have
		// populated the store while this call was queued.
		if cached, err := l.store.Get(ctx, locale); err == nil {
			return cached, nil
		}

		fetched, err := l.transport.Fetch(ctx, fetchURL)
		if err != nil {
			return nil, err
		}
		if err := l.store.Set(ctx, locale, fetched.Clone()); err != nil {
			return nil, err
		}
		return fetched, nil
	})
	if err != nil {
		l.log.ErrorContext(ctx, "failed to load translation catalog",
			slog.String("locale", locale),
			slog.String("url", fetchURL),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: locale %q from %q: %w", ErrLoadFailed, locale, fetchURL, err)
	}

	return l.feed(locale, v.(Document))
}

func (l *Loader) feed(locale string, doc Document) error {
	if err := l.sink.LoadJSON(doc); err != nil {
		return fmt.Errorf("%w: locale %q: %w", ErrLoadFailed, locale, err)
	}
	return nil
}

// Preload seeds the store with catalogs shipped in a filesystem and
// returns the locale codes it found. File convention: {locale}.json,
// {locale}.yaml or {locale}.yml at the root of fsys.
//
// Preloaded locales behave exactly like previously fetched ones: a
// later Load serves them from the store without network access.
func (l *Loader) Preload(ctx context.Context, fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("catalog: reading catalog dir: %w", err)
	}

	var locales []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))

		var unmarshal func([]byte, any) error
		switch ext {
		case ".json":
			unmarshal = json.Unmarshal
		case ".yaml", ".yml":
			unmarshal = yaml.Unmarshal
		default:
			continue
		}

		locale := strings.TrimSuffix(name, path.Ext(name))
		if locale == "" {
			continue
		}

		file, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("catalog: opening %q: %w", name, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("catalog: reading %q: %w", name, err)
		}

		var doc Document
		if err := unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: parsing %q: %w", ErrInvalidDocument, name, err)
		}

		if err := l.store.Set(ctx, locale, doc); err != nil {
			return nil, err
		}
		locales = append(locales, locale)
	}

	return locales, nil
}
