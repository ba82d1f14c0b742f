package localizer

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/localizer/pkg/catalog"
)

type config struct {
	defaultLocale string
	forceLocale   string
	basePath      string
	locales       []string
	fingerprints  map[string]string
	store         catalog.Store
	transport     catalog.Transport
	engine        PhraseEngine
	env           Environment
	log           *slog.Logger
	catalogFS     fs.FS
	autoInit      bool
}

// Option configures the Manager during construction.
type Option func(*config) error

// WithDefaultLocale sets the fallback locale (default "en").
func WithDefaultLocale(locale string) Option {
	return func(c *config) error {
		if locale == "" {
			return ErrEmptyLocale
		}
		c.defaultLocale = locale
		return nil
	}
}

// WithForceLocale sets a locale that bypasses auto-detection entirely.
// It is used verbatim, without normalization.
func WithForceLocale(locale string) Option {
	return func(c *config) error {
		c.forceLocale = locale
		return nil
	}
}

// WithLocales registers the locales for which a catalog is known to
// exist. The default locale is always included. Locales preloaded via
// WithCatalogFS are added on top.
func WithLocales(locales ...string) Option {
	return func(c *config) error {
		c.locales = append(c.locales, locales...)
		return nil
	}
}

// WithBasePath sets the base path catalog URLs are built from
// (default "/assets/locales"). May be an absolute URL.
func WithBasePath(basePath string) Option {
	return func(c *config) error {
		if basePath != "" {
			c.basePath = basePath
		}
		return nil
	}
}

// WithFingerprints sets the locale → path-fragment map used to build
// cache-busted catalog URLs.
func WithFingerprints(fingerprints map[string]string) Option {
	return func(c *config) error {
		c.fingerprints = fingerprints
		return nil
	}
}

// WithStore sets the catalog store (default in-memory).
func WithStore(store catalog.Store) Option {
	return func(c *config) error {
		c.store = store
		return nil
	}
}

// WithTransport sets the catalog fetch transport (default HTTP).
func WithTransport(transport catalog.Transport) Option {
	return func(c *config) error {
		c.transport = transport
		return nil
	}
}

// WithEngine sets the phrase engine (default pkg/gettext).
func WithEngine(engine PhraseEngine) Option {
	return func(c *config) error {
		if engine == nil {
			return ErrNilEngine
		}
		c.engine = engine
		return nil
	}
}

// WithEnvironment sets the language preference source
// (default OSEnvironment).
func WithEnvironment(env Environment) Option {
	return func(c *config) error {
		if env != nil {
			c.env = env
		}
		return nil
	}
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(log *slog.Logger) Option {
	return func(c *config) error {
		c.log = log
		return nil
	}
}

// WithCatalogFS preloads shipped catalogs from a filesystem during
// construction and registers their locales as available.
// File convention: {locale}.json, {locale}.yaml or {locale}.yml.
func WithCatalogFS(fsys fs.FS) Option {
	return func(c *config) error {
		c.catalogFS = fsys
		return nil
	}
}

// WithAutoInit controls whether New runs detection and the initial
// locale switch (default true).
func WithAutoInit(enabled bool) Option {
	return func(c *config) error {
		c.autoInit = enabled
		return nil
	}
}
