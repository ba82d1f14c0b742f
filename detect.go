package localizer

import (
	"log/slog"
	"os"
	"regexp"

	"golang.org/x/text/language"
)

// Environment provides read-only access to the client's raw language
// preference sources. Preferences returns candidate values in priority
// order; the first non-empty one wins. UserAgent may return "" when no
// user agent is known.
type Environment interface {
	UserAgent() string
	Preferences() []string
}

// androidLocaleRe matches the non-standard Android user-agent format
// that carries the device locale, e.g. "... Android 4.0.3; en-us; ...".
// The first two-letter group is the language code.
var androidLocaleRe = regexp.MustCompile(`(?i)android.*?\W([a-z]{2})-([a-z]{2})\W`)

// OSEnvironment reads language preferences from the POSIX locale
// environment variables, most specific first: LANGUAGE, LC_ALL,
// LC_MESSAGES, LANG.
type OSEnvironment struct{}

// UserAgent returns ""; processes have no user agent.
func (OSEnvironment) UserAgent() string { return "" }

// Preferences returns the raw values of the locale environment
// variables in priority order. Values like "en_US.UTF-8" are returned
// unmodified; normalization happens during detection.
func (OSEnvironment) Preferences() []string {
	return []string{
		os.Getenv("LANGUAGE"),
		os.Getenv("LC_ALL"),
		os.Getenv("LC_MESSAGES"),
		os.Getenv("LANG"),
	}
}

// HeaderEnvironment adapts HTTP request headers to the Environment
// interface for server-side detection. The Accept-Language header is
// parsed into tags ordered by quality.
type HeaderEnvironment struct {
	userAgent      string
	acceptLanguage string
}

// NewHeaderEnvironment creates an Environment from User-Agent and
// Accept-Language header values.
func NewHeaderEnvironment(userAgent, acceptLanguage string) *HeaderEnvironment {
	return &HeaderEnvironment{
		userAgent:      userAgent,
		acceptLanguage: acceptLanguage,
	}
}

// UserAgent returns the raw User-Agent header value.
func (h *HeaderEnvironment) UserAgent() string { return h.userAgent }

// Preferences returns the Accept-Language tags in quality order.
// A malformed header yields no preferences.
func (h *HeaderEnvironment) Preferences() []string {
	if h.acceptLanguage == "" {
		return nil
	}

	tags, _, err := language.ParseAcceptLanguage(h.acceptLanguage)
	if err != nil {
		return nil
	}

	prefs := make([]string, 0, len(tags))
	for _, tag := range tags {
		prefs = append(prefs, tag.String())
	}
	return prefs
}

// StaticEnvironment is an Environment with fixed values, useful in
// tests or when the caller already resolved the client's preferences.
type StaticEnvironment struct {
	UA    string
	Prefs []string
}

// UserAgent returns the fixed user agent.
func (s StaticEnvironment) UserAgent() string { return s.UA }

// Preferences returns the fixed preference list.
func (s StaticEnvironment) Preferences() []string { return s.Prefs }

// DetectLocale resolves the locale that should be active.
//
// A configured forced locale is used verbatim, skipping auto-detection
// and normalization. Otherwise the Android user-agent rule is tried
// first, then the environment's preference sources in order; the first
// non-empty value is truncated to its 2-letter code.
//
// A result without a registered catalog falls back to the default
// locale. When no source yields any value and no locale is forced,
// the default locale is returned together with ErrNoLanguageSource so
// the caller can decide how loud to be; the manager's state is never
// touched by detection.
func (m *Manager) DetectLocale() (string, error) {
	if m.forceLocale != "" {
		if !m.HasLocale(m.forceLocale) {
			m.log.Info("forced locale has no catalog, falling back to default",
				slog.String("forced", m.forceLocale),
				slog.String("default", m.defaultLocale),
			)
			return m.defaultLocale, nil
		}
		m.log.Info("using forced locale", slog.String("locale", m.forceLocale))
		return m.forceLocale, nil
	}

	raw, ok := m.rawPreference()
	if !ok {
		return m.defaultLocale, ErrNoLanguageSource
	}

	locale := normalizeLocale(raw)
	if !m.HasLocale(locale) {
		m.log.Info("detected locale has no catalog, falling back to default",
			slog.String("detected", locale),
			slog.String("default", m.defaultLocale),
		)
		return m.defaultLocale, nil
	}

	m.log.Info("detected locale", slog.String("locale", locale))
	return locale, nil
}

// rawPreference returns the raw language preference value, trying the
// Android user-agent extraction before the generic sources.
func (m *Manager) rawPreference() (string, bool) {
	if ua := m.env.UserAgent(); ua != "" {
		if match := androidLocaleRe.FindStringSubmatch(ua); match != nil {
			return match[1], true
		}
	}

	for _, raw := range m.env.Preferences() {
		if raw != "" {
			return raw, true
		}
	}
	return "", false
}

// normalizeLocale truncates a raw preference value to its 2-letter
// code. Locale codes are compared as-is beyond truncation; no case
// folding is applied.
func normalizeLocale(raw string) string {
	if len(raw) > 2 {
		return raw[:2]
	}
	return raw
}
