package apperrors

import (
	"net/http"
)

// Factories and predefined values for notification-domain errors.
// Repository sentinel errors get wrapped through the factories; static
// conditions use the predefined variables.

// ErrNotFound converts a repository not-found sentinel into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "notification", "Notification not found", http.StatusNotFound)
}

// ErrPersistence converts a store write failure into a 500.
func ErrPersistence(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "notification", "Failed to persist notification", http.StatusInternalServerError)
}

// ErrInvalidID is returned when a path id is not a positive integer.
var ErrInvalidID = New(
	CodeValidationFailed,
	"validation",
	"Notification id must be a positive integer",
	http.StatusBadRequest,
)

// ErrEmptyIDList is returned when a bulk operation receives no ids.
var ErrEmptyIDList = New(
	CodeInvalidOperation,
	"notification",
	"Bulk operation requires a non-empty id list",
	http.StatusBadRequest,
)

// ErrNoRecipients is returned when a create request carries no user ids.
var ErrNoRecipients = New(
	CodeInvalidOperation,
	"notification",
	"Notification requires at least one recipient",
	http.StatusBadRequest,
)

// ErrAllRecipientsFailed is returned when fan-out persisted zero rows.
var ErrAllRecipientsFailed = New(
	CodeInternalError,
	"notification",
	"Failed to create notification for every recipient",
	http.StatusInternalServerError,
)

// ErrNoRowsAffected is returned when a bulk update or delete expected to
// affect rows but touched none.
var ErrNoRowsAffected = New(
	CodeInternalError,
	"notification",
	"Operation affected no notifications",
	http.StatusInternalServerError,
)
