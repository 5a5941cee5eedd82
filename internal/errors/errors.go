// Package errors provides the error taxonomy of the ledger.
// Every rejection the engine or a storage backend can produce is an AppError
// carrying a stable code, so callers can branch with errors.Is against the
// sentinels below regardless of how much context was wrapped around them.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind groups error codes by how a caller is expected to react.
type Kind int

const (
	// KindValidation errors are recoverable: correct the command and retry.
	KindValidation Kind = iota + 1
	// KindStorage errors are fatal to the current apply. Retrying the whole
	// command is safe because command ids are idempotent.
	KindStorage
	// KindParse errors come from malformed input text and are rejected before validation.
	KindParse
	// KindNotFound is used by read-only queries.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	case KindParse:
		return "parse"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// AppError represents a structured ledger error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Kind       Kind   `json:"-"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Kind:       sentinel.Kind,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Kind:       sentinel.Kind,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// KindOf returns the kind of the first AppError in err's chain, or 0.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

// IsValidation reports whether err is a recoverable command rejection.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsStorage reports whether err is a backend failure.
func IsStorage(err error) bool { return KindOf(err) == KindStorage }

func validation(code, message string) *AppError {
	return &AppError{Code: code, Message: message, Kind: KindValidation, StatusCode: http.StatusUnprocessableEntity}
}

// Command validation errors.
var (
	ErrAccountNotFound     = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", Kind: KindValidation, StatusCode: http.StatusNotFound}
	ErrAccountDisabled     = validation("ACCOUNT_DISABLED", "Account is disabled")
	ErrWrongAccountKind    = validation("WRONG_ACCOUNT_KIND", "Account kind does not fit this slot")
	ErrNonPositiveAmount   = validation("NON_POSITIVE_AMOUNT", "Amount must be strictly positive")
	ErrCurrencyMismatch    = validation("CURRENCY_MISMATCH", "Currency mismatch")
	ErrDuplicateCommandID  = &AppError{Code: "DUPLICATE_COMMAND_ID", Message: "Command id already in the log", Kind: KindValidation, StatusCode: http.StatusConflict}
	ErrAccountExists       = &AppError{Code: "ACCOUNT_EXISTS", Message: "Account already exists", Kind: KindValidation, StatusCode: http.StatusConflict}
	ErrTransactionExists   = &AppError{Code: "TRANSACTION_EXISTS", Message: "Transaction already exists", Kind: KindValidation, StatusCode: http.StatusConflict}
	ErrAccountHasBalance   = validation("ACCOUNT_HAS_BALANCE", "Account still holds a nonzero balance")
	ErrInsufficientFunds   = validation("INSUFFICIENT_FUNDS", "Insufficient account balance")
	ErrSameAccount         = validation("SAME_ACCOUNT", "Source and destination are the same account")
	ErrInvalidName         = validation("INVALID_NAME", "Invalid account name")
	ErrMissingField        = validation("MISSING_FIELD", "Required field is missing")
	ErrEmptyUpdate         = validation("EMPTY_UPDATE", "Update carries no operations")
	ErrInvalidCommand      = validation("INVALID_COMMAND", "Invalid command")
	ErrInvalidInput        = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", Kind: KindParse, StatusCode: http.StatusBadRequest}
	ErrParse               = &AppError{Code: "PARSE_ERROR", Message: "Malformed amount", Kind: KindParse, StatusCode: http.StatusBadRequest}
	ErrInvalidID           = &AppError{Code: "INVALID_ID", Message: "Malformed identifier", Kind: KindParse, StatusCode: http.StatusBadRequest}
	ErrInvalidCurrencyCode = &AppError{Code: "INVALID_CURRENCY", Message: "Currency codes are exactly 3 upper-case letters", Kind: KindParse, StatusCode: http.StatusBadRequest}
)

// Storage errors.
var (
	ErrStorage            = &AppError{Code: "STORAGE_ERROR", Message: "Storage backend failure", Kind: KindStorage, StatusCode: http.StatusInternalServerError}
	ErrProjectionDiverged = &AppError{Code: "PROJECTION_DIVERGED", Message: "Persisted projections diverge from the command log", Kind: KindStorage, StatusCode: http.StatusInternalServerError}
	ErrStoreLocked        = &AppError{Code: "STORE_LOCKED", Message: "Store is locked by another process", Kind: KindStorage, StatusCode: http.StatusServiceUnavailable}
	ErrLockTimeout        = &AppError{Code: "LOCK_TIMEOUT", Message: "Gave up waiting for the ledger lock", Kind: KindStorage, StatusCode: http.StatusServiceUnavailable}
)

// General errors.
var (
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)
