package domain

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidOrder   = errors.New("order is not a permutation of the current items")
)
