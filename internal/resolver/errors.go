package resolver

import "errors"

var (
	ErrInvalidSource     = errors.New("source url not recognized")
	ErrUnresolvable      = errors.New("source could not be resolved")
	ErrFormatUnavailable = errors.New("format no longer available")
)
