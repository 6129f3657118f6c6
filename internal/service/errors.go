package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering an already used username
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvoiceNumberTaken is returned when an invoice number is already in use
	ErrInvoiceNumberTaken = errors.New("invoice number already in use")

	// ErrOrderNumberTaken is returned when a purchase order number is already in use
	ErrOrderNumberTaken = errors.New("order number already in use")

	// ErrInvalidTransition is returned on an illegal lifecycle status change
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyPaid is returned when marking a paid invoice as paid again
	ErrAlreadyPaid = errors.New("invoice already paid")

	// ErrAlreadyCompleted is returned when completing a finished service order
	ErrAlreadyCompleted = errors.New("service order already completed")
)
