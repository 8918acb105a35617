package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Item errors
	ErrItemNotFound = errors.New("item not found")

	// Catalog errors
	ErrCatalogNotFound = errors.New("catalog not found")

	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
