package localizer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/dmitrymomot/localizer/pkg/catalog"
	"github.com/dmitrymomot/localizer/pkg/gettext"
)

// DefaultLocale is the fallback locale used when none is configured.
const DefaultLocale = "en"

// M is a substitution table for placeholder interpolation.
type M map[string]any

// PhraseEngine performs the actual phrase lookup and plural-form
// selection. The manager treats it as a black box: it only supplies
// the count and never computes plurality itself.
// pkg/gettext ships the default implementation.
type PhraseEngine interface {
	// SetLocale switches the engine's active locale.
	SetLocale(locale string)
	// Gettext returns the singular translation for msgid,
	// or msgid itself when untranslated.
	Gettext(msgid string) string
	// NGettext returns the plural form of msgid selected for count.
	NGettext(msgid, msgidPlural string, count int) string
	// LoadJSON indexes a catalog document.
	LoadJSON(doc catalog.Document) error
}

// Manager resolves the active locale, coordinates catalog loading with
// all-or-nothing switch semantics, and formats translated strings.
//
// One Manager owns its phrase engine and catalog store exclusively;
// all mutations of the active locale go through SetLocale.
type Manager struct {
	engine      PhraseEngine
	loader      *catalog.Loader
	env         Environment
	log         *slog.Logger
	subscribers *subscribers

	defaultLocale string
	forceLocale   string

	// available is fixed after construction; only activeLocale is
	// mutated afterwards, guarded by mu.
	available map[string]struct{}

	mu           sync.Mutex
	activeLocale string // "" means unset, the default locale applies
}

// New creates a Manager. Unless disabled with WithAutoInit(false),
// construction runs locale detection and switches to the detected
// locale, which may hit the transport; use Init to control the
// context of that initial switch.
func New(opts ...Option) (*Manager, error) {
	cfg := &config{
		defaultLocale: DefaultLocale,
		basePath:      catalog.DefaultBasePath,
		autoInit:      true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if cfg.log == nil {
		cfg.log = slog.Default()
	}
	if cfg.env == nil {
		cfg.env = OSEnvironment{}
	}
	if cfg.engine == nil {
		engine, err := gettext.New()
		if err != nil {
			return nil, err
		}
		cfg.engine = engine
	}

	loaderOpts := []catalog.LoaderOption{
		catalog.WithBasePath(cfg.basePath),
		catalog.WithLoaderLogger(cfg.log),
	}
	if cfg.fingerprints != nil {
		loaderOpts = append(loaderOpts, catalog.WithFingerprints(cfg.fingerprints))
	}
	if cfg.store != nil {
		loaderOpts = append(loaderOpts, catalog.WithStore(cfg.store))
	}
	if cfg.transport != nil {
		loaderOpts = append(loaderOpts, catalog.WithTransport(cfg.transport))
	}

	m := &Manager{
		engine:        cfg.engine,
		loader:        catalog.NewLoader(cfg.engine, loaderOpts...),
		env:           cfg.env,
		log:           cfg.log,
		subscribers:   newSubscribers(),
		defaultLocale: cfg.defaultLocale,
		forceLocale:   cfg.forceLocale,
		available:     make(map[string]struct{}, len(cfg.locales)+1),
	}

	m.available[m.defaultLocale] = struct{}{}
	for _, locale := range cfg.locales {
		if locale != "" {
			m.available[locale] = struct{}{}
		}
	}

	if cfg.catalogFS != nil {
		locales, err := m.loader.Preload(context.Background(), cfg.catalogFS)
		if err != nil {
			return nil, err
		}
		for _, locale := range locales {
			m.available[locale] = struct{}{}
		}
	}

	if cfg.autoInit {
		if err := m.Init(context.Background()); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Init detects the locale that should be active and switches to it.
// A missing language source falls back to the default locale instead
// of failing; only the switch itself can return an error.
func (m *Manager) Init(ctx context.Context) error {
	locale, err := m.DetectLocale()
	if err != nil {
		m.log.Warn("no language preference source, using default locale",
			slog.String("locale", locale))
	}
	return m.SetLocale(ctx, locale)
}

// Locale returns the active locale, or the configured default when no
// switch has succeeded yet. It is pure and always succeeds.
func (m *Manager) Locale() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.localeLocked()
}

func (m *Manager) localeLocked() string {
	if m.activeLocale == "" {
		return m.defaultLocale
	}
	return m.activeLocale
}

// HasLocale reports whether a catalog is registered for the locale.
// It warns when the locale is unknown; both detection and switching
// gate on this check with the same side effect.
func (m *Manager) HasLocale(locale string) bool {
	if _, ok := m.available[locale]; ok {
		return true
	}
	m.log.Warn("locale is not available", slog.String("locale", locale))
	return false
}

// Locales returns the sorted set of available locales.
func (m *Manager) Locales() []string {
	locales := make([]string, 0, len(m.available))
	for locale := range m.available {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// SetLocale switches the active locale with all-or-nothing semantics.
//
// An unavailable locale is rejected with ErrLocaleUnavailable before
// any mutation. Otherwise the engine and active locale are updated
// optimistically, the catalog is loaded, and the switch either commits
// (emitting EventLocaleChanged and EventLocalesChanged, in that order)
// or rolls both back to the previous locale and returns an error
// wrapping ErrLoadFailed.
//
// State mutations are serialized, but whole switches are not queued:
// when calls for different locales race, the last one to complete wins
// the active locale. Concurrent loads of the same locale share one
// fetch.
func (m *Manager) SetLocale(ctx context.Context, locale string) error {
	if !m.HasLocale(locale) {
		return fmt.Errorf("%w: %q", ErrLocaleUnavailable, locale)
	}

	m.mu.Lock()
	previous := m.localeLocked()
	m.activeLocale = locale
	m.mu.Unlock()
	m.engine.SetLocale(locale)

	if err := m.loader.Load(ctx, locale); err != nil {
		// Best-effort rollback: both the engine locale and the
		// active locale must reflect the previous locale again,
		// never a mix.
		m.engine.SetLocale(previous)
		m.mu.Lock()
		m.activeLocale = previous
		m.mu.Unlock()
		return fmt.Errorf("%w: %q: %w", ErrLoadFailed, locale, err)
	}

	locales := m.Locales()
	m.subscribers.publish(Event{Name: EventLocaleChanged, Locale: locale, Locales: locales})
	m.subscribers.publish(Event{Name: EventLocalesChanged, Locale: locale, Locales: locales})

	return nil
}
