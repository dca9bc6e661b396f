package models

import "errors"

// Custom errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrInvalidOdds         = errors.New("decimal price must be greater than 1.0")
	ErrUnresolvedLink      = errors.New("no odds quote matched the fixture")
	ErrUnresolvedPlayer    = errors.New("player name normalizes to an empty key")
	ErrUnrecognizedSurface = errors.New("surface is not hard, clay or grass")
)
