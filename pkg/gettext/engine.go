package gettext

import (
	"fmt"
	"sync"

	"github.com/dmitrymomot/localizer/pkg/catalog"
)

// Engine is a gettext-style phrase lookup engine over JSON catalog
// documents. It owns plural-form selection; callers only supply the
// count. Lookups fall back to the message id itself when no
// translation exists, so translation calls never fail.
//
// It is safe for concurrent use: translation lookups may race with
// locale switches and catalog loads.
type Engine struct {
	mu       sync.RWMutex
	locale   string
	catalogs map[string]map[string][]string
	rules    map[string]PluralRule
}

// Option configures an Engine during construction.
type Option func(*Engine) error

// WithPluralRule registers a custom plural rule for a locale,
// overriding the built-in rule selection.
func WithPluralRule(locale string, rule PluralRule) Option {
	return func(e *Engine) error {
		if locale == "" {
			return ErrEmptyLocaleCode
		}
		if rule == nil {
			return ErrNilPluralRule
		}
		e.rules[locale] = rule
		return nil
	}
}

// New creates an empty engine. Catalogs are added via LoadJSON and the
// active locale is selected via SetLocale.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		catalogs: make(map[string]map[string][]string),
		rules:    make(map[string]PluralRule),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

// SetLocale switches the locale used by Gettext and NGettext. Locales
// without a loaded catalog are allowed; lookups then return the
// message id unchanged.
func (e *Engine) SetLocale(locale string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.locale = locale
}

// Locale returns the engine's active locale.
func (e *Engine) Locale() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.locale
}

// LoadJSON indexes a catalog document. The expected shape is:
//
//	{
//	  "locale": "de",
//	  "translations": {
//	    "Hello":      "Hallo",
//	    "{{count}} item": ["{{count}} Artikel", "{{count}} Artikel"]
//	  }
//	}
//
// A string value is a single (singular) form; an array holds plural
// forms in the order the locale's plural rule indexes them. Loading a
// catalog for an already-known locale replaces it.
func (e *Engine) LoadJSON(doc catalog.Document) error {
	locale, ok := doc["locale"].(string)
	if !ok || locale == "" {
		return ErrMissingLocale
	}

	rawTranslations, ok := doc["translations"].(map[string]any)
	if !ok {
		return fmt.Errorf("%w: missing translations object", ErrInvalidCatalog)
	}

	indexed := make(map[string][]string, len(rawTranslations))
	for msgid, value := range rawTranslations {
		switch v := value.(type) {
		case string:
			indexed[msgid] = []string{v}
		case []any:
			forms := make([]string, 0, len(v))
			for _, form := range v {
				s, ok := form.(string)
				if !ok {
					return fmt.Errorf("%w: non-string plural form for %q", ErrInvalidCatalog, msgid)
				}
				forms = append(forms, s)
			}
			if len(forms) == 0 {
				return fmt.Errorf("%w: empty plural forms for %q", ErrInvalidCatalog, msgid)
			}
			indexed[msgid] = forms
		default:
			return fmt.Errorf("%w: unsupported value for %q", ErrInvalidCatalog, msgid)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.catalogs[locale] = indexed
	if _, exists := e.rules[locale]; !exists {
		e.rules[locale] = RuleForLocale(locale)
	}
	return nil
}

// Gettext returns the singular translation for msgid in the active
// locale, or msgid itself when no translation exists.
func (e *Engine) Gettext(msgid string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if forms, ok := e.catalogs[e.locale][msgid]; ok && len(forms) > 0 {
		return forms[0]
	}
	return msgid
}

// NGettext returns the plural form of msgid selected by the active
// locale's plural rule for count. When the message has fewer forms
// than the rule demands, the last form is used. Without a translation
// it falls back to msgid for a count of one and msgidPlural otherwise.
func (e *Engine) NGettext(msgid, msgidPlural string, count int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	forms, ok := e.catalogs[e.locale][msgid]
	if !ok || len(forms) == 0 {
		if count == 1 || count == -1 {
			return msgid
		}
		return msgidPlural
	}

	rule, ok := e.rules[e.locale]
	if !ok {
		rule = RuleForLocale(e.locale)
	}

	idx := rule(count)
	if idx >= len(forms) {
		idx = len(forms) - 1
	}
	return forms[idx]
}

// Locales returns the locale codes with a loaded catalog.
func (e *Engine) Locales() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	locales := make([]string, 0, len(e.catalogs))
	for locale := range e.catalogs {
		locales = append(locales, locale)
	}
	return locales
}

var _ catalog.Sink = (*Engine)(nil)
