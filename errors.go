package localizer

import "errors"

var (
	ErrLocaleUnavailable = errors.New("localizer: no catalog registered for locale")
	ErrLoadFailed        = errors.New("localizer: failed to load locale")
	ErrNoLanguageSource  = errors.New("localizer: no language preference source available")
	ErrEmptyLocale       = errors.New("localizer: locale cannot be empty")
	ErrNilEngine         = errors.New("localizer: phrase engine cannot be nil")
)
