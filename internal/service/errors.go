package service

import "errors"

// ErrInvalidState is returned when an operation targets a record whose
// lifecycle status forbids it, e.g. resolving an already-resolved conflict.
var ErrInvalidState = errors.New("invalid state")
