package localizer

import (
	"fmt"
	"log/slog"
	"maps"
	"regexp"
)

// placeholderRe matches {{ name }} tokens; whitespace inside the
// braces is optional and ignored.
var placeholderRe = regexp.MustCompile(`\{\{\s*([^\s{}]+)\s*\}\}`)

// T translates a message id and interpolates placeholders.
//
// The message id must be textual (a string or fmt.Stringer). Anything
// else is logged and passed through via fmt.Sprint without a phrase
// lookup; translation calls never fail.
func (m *Manager) T(msgid any, subs ...M) string {
	text, ok := toText(msgid)
	if !ok {
		m.log.Warn("message id is not a textual value", slog.Any("msgid", msgid))
		return fmt.Sprint(msgid)
	}
	return m.interpolate(m.engine.Gettext(text), mergeSubs(subs))
}

// N translates a message id with pluralization and interpolates
// placeholders. Plural-form selection by count is entirely the phrase
// engine's responsibility.
//
// When the substitution table has no "count" entry, the count is
// injected into a copy; the caller's table is never mutated.
// The textual-value rule of T applies to both message ids
// independently.
func (m *Manager) N(msgid, msgidPlural any, count int, subs ...M) string {
	singular, ok := toText(msgid)
	if !ok {
		m.log.Warn("message id is not a textual value", slog.Any("msgid", msgid))
		return fmt.Sprint(msgid)
	}
	plural, ok := toText(msgidPlural)
	if !ok {
		m.log.Warn("plural message id is not a textual value", slog.Any("msgid", msgidPlural))
		return fmt.Sprint(msgidPlural)
	}

	merged := mergeSubs(subs)
	if _, exists := merged["count"]; !exists {
		merged["count"] = count
	}

	return m.interpolate(m.engine.NGettext(singular, plural, count), merged)
}

// interpolate replaces {{name}} tokens in a looked-up string.
// Tokens without a substitution entry stay literal. Textual values get
// a single recursive singular lookup before substitution, so values
// that are themselves message ids come out translated; non-textual
// values are substituted verbatim.
func (m *Manager) interpolate(s string, subs M) string {
	if len(subs) == 0 {
		return s
	}

	return placeholderRe.ReplaceAllStringFunc(s, func(token string) string {
		name := placeholderRe.FindStringSubmatch(token)[1]

		value, ok := subs[name]
		if !ok {
			return token
		}
		if text, isText := toText(value); isText {
			return m.engine.Gettext(text)
		}
		return fmt.Sprint(value)
	})
}

// toText resolves the textual-input contract at the call boundary:
// strings and fmt.Stringer values are textual, everything else is not.
func toText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case fmt.Stringer:
		return t.String(), true
	default:
		return "", false
	}
}

// mergeSubs merges substitution tables into a fresh copy so callers'
// tables are never mutated.
func mergeSubs(subs []M) M {
	merged := make(M)
	for _, s := range subs {
		maps.Copy(merged, s)
	}
	return merged
}
