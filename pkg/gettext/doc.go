// Package gettext implements a gettext-style phrase lookup engine over JSON
// catalog documents, with per-language plural-form selection.
//
// The engine stores one indexed catalog per locale and serves lookups for a
// single active locale at a time. Message ids double as the fallback text, so
// lookups never fail: an untranslated msgid is returned unchanged.
//
//	engine, _ := gettext.New()
//	_ = engine.LoadJSON(catalog.Document{
//		"locale": "de",
//		"translations": map[string]any{
//			"Hello":    "Hallo",
//			"one item": []any{"ein Artikel", "{{count}} Artikel"},
//		},
//	})
//	engine.SetLocale("de")
//
//	engine.Gettext("Hello")                    // "Hallo"
//	engine.NGettext("one item", "items", 3)    // "{{count}} Artikel"
//
// Plural-form indexes follow classic gettext nplurals conventions; built-in
// rules cover the common language families and can be overridden per locale
// with WithPluralRule.
package gettext
