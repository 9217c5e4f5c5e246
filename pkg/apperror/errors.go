package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Accounts (ACC) ----

func ErrAccountNotFound(id string) *AppError {
	return New("ACC_001", fmt.Sprintf("Account not found: %s", id), http.StatusNotFound)
}

func ErrAccountExists(id string) *AppError {
	return New("ACC_002", fmt.Sprintf("Account already exists: %s", id), http.StatusConflict)
}

func ErrInsufficientFunds(id string) *AppError {
	return New("ACC_003", fmt.Sprintf("Insufficient funds in account: %s", id), http.StatusBadRequest)
}

// ---- Validation (VAL) ----

// Validation returns a 400 error for malformed or missing input.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// ErrStoreFailure wraps an account store failure.
func ErrStoreFailure(err error) *AppError {
	return Wrap("SYS_002", "Account store failure", http.StatusInternalServerError, err)
}
