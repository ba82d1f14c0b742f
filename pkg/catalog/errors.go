package catalog

import "errors"

var (
	ErrNotFound        = errors.New("catalog: not found")
	ErrLoadFailed      = errors.New("catalog: load failed")
	ErrInvalidDocument = errors.New("catalog: invalid document")
	ErrMarshal         = errors.New("catalog: failed to marshal document")
	ErrUnmarshal       = errors.New("catalog: failed to unmarshal document")
)
