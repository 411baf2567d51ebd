package apperrors

import (
	"net/http"
)

// Factories and predefined values for common domain errors.

// ErrNotFound converts a repository not-found (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Messaging ---

var ErrEmptyMessage = New(
	CodeValidationFailed,
	"messaging",
	"Message content must not be empty",
	http.StatusBadRequest,
)

var ErrSelfMessage = New(
	CodeInvalidOperation,
	"messaging",
	"Cannot send a message to yourself",
	http.StatusBadRequest,
)

// --- Jobs & proposals ---

var ErrJobClosed = New(
	CodeInvalidStatus,
	"jobs",
	"This job listing is no longer open",
	http.StatusConflict,
)

var ErrDuplicateProposal = New(
	CodeAlreadyExists,
	"jobs",
	"You already submitted a proposal for this job",
	http.StatusConflict,
)

var ErrProposalDecided = New(
	CodeInvalidStatus,
	"jobs",
	"This proposal has already been decided",
	http.StatusConflict,
)
