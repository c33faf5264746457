package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Campaign errors
	ErrCampaignNotFound = errors.New("campaign not found")

	// Moderation errors
	ErrModerationNotFound = errors.New("moderation result not found")
	ErrInvalidReviewState = errors.New("moderation result is not awaiting review")

	// Persistence errors: the moderation result was computed but could not
	// be stored; callers still receive the in-memory result.
	ErrPersistence = errors.New("failed to persist moderation result")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
