// Package errors maps the domain error taxonomy onto HTTP responses for the
// REST layer. The taxonomy itself lives in the domain package; this package
// only decides status codes and response bodies.
package errors

import (
	"errors"
	"net/http"

	"account-service/app/domain"
)

// ErrorResponse is the JSON body returned for failed requests. The code is
// always a stable taxonomy value, never a raw provider error.
type ErrorResponse struct {
	Code    domain.ErrorKind `json:"code"`
	Message string           `json:"message"`
}

// ToResponse converts any error to an HTTP status and response body.
func ToResponse(err error) (int, ErrorResponse) {
	kind := domain.KindOf(err)

	message := "internal error"
	var accErr *domain.AccountError
	if errors.As(err, &accErr) {
		message = accErr.Message
	}

	return StatusCode(kind), ErrorResponse{
		Code:    kind,
		Message: message,
	}
}

// StatusCode maps a taxonomy kind to an HTTP status code.
func StatusCode(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidCredentials:
		return http.StatusUnauthorized
	case domain.KindDuplicateIdentity:
		return http.StatusConflict
	case domain.KindProviderUnavailable:
		return http.StatusServiceUnavailable
	case domain.KindProfileNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindOperationInProgress:
		return http.StatusConflict
	case domain.KindReconciliationFailed, domain.KindPartialDeletion:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
