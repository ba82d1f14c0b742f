package gettext

import "errors"

var (
	ErrMissingLocale   = errors.New("gettext: catalog has no locale field")
	ErrInvalidCatalog  = errors.New("gettext: invalid catalog document")
	ErrNilPluralRule   = errors.New("gettext: plural rule cannot be nil")
	ErrEmptyLocaleCode = errors.New("gettext: locale code cannot be empty")
)
