package directory

import "errors"

var (
	ErrInvalidConfig = errors.New("directory: invalid configuration")
	ErrRejected      = errors.New("directory: request rejected")
)
