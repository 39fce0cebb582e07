// Package services defines the business logic for authentication,
// conversations, lessons, dashboards, pronunciation, and practice material.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

// Auth-related errors.
var (
	// ErrInvalidCredentials is returned when login email/password do not
	// match a stored user. Deliberately indistinguishable between unknown
	// email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken indicates that registration used an already-registered
	// email address.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidEmail is returned when a registration email fails basic
	// shape validation.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword is returned when a registration password is outside
	// the allowed length bounds.
	ErrWeakPassword = errors.New("password must be between 8 and 128 characters")

	// ErrInvalidToken indicates a missing, malformed, expired, or
	// wrongly-signed bearer token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Conversation-related errors.
var (
	// ErrConversationNotFound indicates that the requested conversation does
	// not exist or is not accessible to the current user.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrEmptyMessage is returned when a conversational turn contains an
	// empty message.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMessageTooLong is returned when a message exceeds the configured
	// maximum length limit.
	ErrMessageTooLong = errors.New("message too long")
)

// Lesson and practice errors.
var (
	// ErrLessonNotFound indicates that the requested lesson does not exist.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrMissingFields is returned when a request omits required fields.
	ErrMissingFields = errors.New("required fields are missing")

	// ErrEmptyText is returned when practice or pronunciation text is empty.
	ErrEmptyText = errors.New("text is empty")
)
