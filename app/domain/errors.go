package domain

import "errors"

// ErrorKind is the stable, serializable error taxonomy surfaced to the UI.
// Session.Error always holds one of these, never a raw provider error.
type ErrorKind string

const (
	KindInvalidCredentials   ErrorKind = "INVALID_CREDENTIALS"
	KindDuplicateIdentity    ErrorKind = "DUPLICATE_IDENTITY"
	KindProviderUnavailable  ErrorKind = "PROVIDER_UNAVAILABLE"
	KindProfileNotFound      ErrorKind = "PROFILE_NOT_FOUND"
	KindReconciliationFailed ErrorKind = "PROFILE_RECONCILIATION_FAILED"
	KindValidation           ErrorKind = "VALIDATION_ERROR"
	KindOperationInProgress  ErrorKind = "OPERATION_IN_PROGRESS"
	KindPartialDeletion      ErrorKind = "PARTIAL_DELETION_FAILURE"
	KindUnknown              ErrorKind = "UNKNOWN"
)

// Sentinel errors for branching inside the engine.
var (
	ErrInvalidCredentials  = NewAccountError(KindInvalidCredentials, "invalid credentials", nil)
	ErrDuplicateIdentity   = NewAccountError(KindDuplicateIdentity, "identity already registered", nil)
	ErrProviderUnavailable = NewAccountError(KindProviderUnavailable, "identity provider unavailable", nil)
	ErrProfileNotFound     = NewAccountError(KindProfileNotFound, "profile not found", nil)
	ErrDuplicateProfile    = NewAccountError(KindReconciliationFailed, "profile already exists", nil)
	ErrOperationInProgress = NewAccountError(KindOperationInProgress, "another operation is in flight", nil)
	ErrNotAuthenticated    = NewAccountError(KindInvalidCredentials, "not authenticated", nil)
)

// AccountError carries a taxonomy kind, a human-readable message, and the
// wrapped cause. The cause never crosses the UI boundary.
type AccountError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *AccountError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AccountError) Unwrap() error {
	return e.Cause
}

// Is matches account errors by kind so sentinels compare against wrapped
// instances carrying extra context.
func (e *AccountError) Is(target error) bool {
	var other *AccountError
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// NewAccountError creates a taxonomy error.
func NewAccountError(kind ErrorKind, message string, cause error) *AccountError {
	return &AccountError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// KindOf maps any error to its taxonomy kind, defaulting to UNKNOWN.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var accErr *AccountError
	if errors.As(err, &accErr) {
		return accErr.Kind
	}
	return KindUnknown
}
