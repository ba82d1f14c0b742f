package gettext

import "strings"

// PluralRule maps a count to an index into a message's plural forms,
// following classic gettext nplurals semantics: index 0 is the first
// form in the catalog, index 1 the second, and so on.
type PluralRule func(n int) int

// TwoFormRule is the rule for English, German, Dutch, and most other
// languages with a simple singular/plural split: one (1), other.
var TwoFormRule PluralRule = func(n int) int {
	if n == 1 || n == -1 {
		return 0
	}
	return 1
}

// TwoFormZeroSingularRule is the rule for French and Brazilian
// Portuguese, where zero takes the singular form.
var TwoFormZeroSingularRule PluralRule = func(n int) int {
	if n == 0 || n == 1 || n == -1 {
		return 0
	}
	return 1
}

// SlavicRule is the three-form rule for Russian, Ukrainian, Polish,
// Czech, and related languages: one, few, many.
var SlavicRule PluralRule = func(n int) int {
	absN := n
	if n < 0 {
		absN = -n
	}

	mod10 := absN % 10
	mod100 := absN % 100

	if mod10 == 1 && mod100 != 11 {
		return 0
	}
	if mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14) {
		return 1
	}
	return 2
}

// SingleFormRule is the rule for languages without plural distinction
// (Japanese, Chinese, Korean, Thai, Vietnamese, Indonesian).
var SingleFormRule PluralRule = func(_ int) int {
	return 0
}

// ArabicRule is the six-form rule for Arabic:
// zero, one, two, few, many, other.
var ArabicRule PluralRule = func(n int) int {
	if n == 0 {
		return 0
	}
	if n == 1 || n == -1 {
		return 1
	}
	if n == 2 || n == -2 {
		return 2
	}

	absN := n
	if n < 0 {
		absN = -n
	}

	mod100 := absN % 100
	if mod100 >= 3 && mod100 <= 10 {
		return 3
	}
	if mod100 >= 11 && mod100 <= 99 {
		return 4
	}
	return 5
}

// RuleForLocale returns the plural rule for a locale code. It uses the
// two-letter ISO 639-1 language prefix and falls back to TwoFormRule
// for unknown languages.
func RuleForLocale(locale string) PluralRule {
	if len(locale) >= 2 {
		locale = strings.ToLower(locale[:2])
	}

	switch locale {
	case "fr":
		return TwoFormZeroSingularRule
	case "ru", "uk", "pl", "cs", "sk", "hr", "sr", "bs":
		return SlavicRule
	case "ja", "zh", "ko", "th", "vi", "id", "ms":
		return SingleFormRule
	case "ar":
		return ArabicRule
	default:
		return TwoFormRule
	}
}
