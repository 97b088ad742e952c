package facade

import "errors"

var (
	ErrTimeout = errors.New("facade: command timed out")
)
