// Package localizer resolves a client's active locale, loads and caches the
// matching translation catalog, and renders translated strings with
// pluralization and {{placeholder}} interpolation.
//
// A Manager coordinates three collaborators: an Environment supplying raw
// language preferences, a catalog.Loader fetching and caching catalog
// documents, and a PhraseEngine performing the actual phrase lookup and
// plural-rule selection (pkg/gettext ships the default).
//
// # Basic Usage
//
//	m, err := localizer.New(
//		localizer.WithDefaultLocale("en"),
//		localizer.WithLocales("en", "de", "fr"),
//		localizer.WithBasePath("https://cdn.example.com/locales"),
//		localizer.WithAutoInit(false),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := m.SetLocale(ctx, "de"); err != nil {
//		// the switch is all-or-nothing: on a load failure both the
//		// phrase engine and the active locale are rolled back
//	}
//
//	m.T("Hello {{name}}", localizer.M{"name": "Ann"})
//	m.N("one item", "{{count}} items", 5)
//
// # Locale Detection
//
// DetectLocale resolves the locale from a forced override or the
// environment's preference sources. Server-side code can detect from request
// headers:
//
//	env := localizer.NewHeaderEnvironment(r.UserAgent(), r.Header.Get("Accept-Language"))
//	m, err := localizer.New(localizer.WithEnvironment(env), ...)
//
// Detected locales without a registered catalog fall back to the default
// locale.
//
// # Switch Semantics
//
// SetLocale rejects unavailable locales before any mutation, updates the
// engine and active locale optimistically, then loads the catalog. Successful
// switches emit EventLocaleChanged and EventLocalesChanged to subscribers;
// failed loads roll back both the engine locale and the active locale and
// leave the catalog cache untouched so a retry re-fetches. Catalogs are cached
// per locale and never refetched or evicted.
//
// Translation calls never return an error: the worst case is an untranslated
// or partially substituted string.
//
// # Configuration
//
// Besides functional options, configuration can come from environment
// variables (LOCALIZER_DEFAULT_LOCALE, LOCALIZER_LOCALES, ...):
//
//	cfg, err := localizer.LoadConfig()
//	m, err := localizer.New(cfg.Options()...)
package localizer
