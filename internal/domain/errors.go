package domain

import "errors"

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidState  = errors.New("invalid state")
	ErrRunNotFound   = errors.New("run not found")
)
