package access

import "errors"

var (
	// ErrInvalidProfile is returned when a stored profile document is
	// missing the fields required to build an Identity.
	ErrInvalidProfile = errors.New("access: invalid profile document")
)
