package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrAccountNotFound is returned when a payment account is not found.
	ErrAccountNotFound = errors.New("payment account not found")
	// ErrMutationNotFound is returned when a mutation is not found.
	ErrMutationNotFound = errors.New("mutation not found")
	// ErrAmountBelowMinimum is returned when a mutation amount is below the minimum.
	ErrAmountBelowMinimum = errors.New("amount is below the minimum of 10000")
	// ErrAccountHasMutations is returned when deleting an account that mutations still reference.
	ErrAccountHasMutations = errors.New("account is referenced by existing mutations")
	// ErrStaleMutation is returned when editing a mutation that is no longer the latest for its account.
	ErrStaleMutation = errors.New("mutation is not the latest for its account")
	// ErrCheckinNotAccepted is returned when the account does not accept checkins.
	ErrCheckinNotAccepted = errors.New("account does not accept checkins")
	// ErrCheckoutNotAccepted is returned when the account does not accept checkouts.
	ErrCheckoutNotAccepted = errors.New("account does not accept checkouts")
	// ErrNotImplemented signals a variant that failed to override a required base method.
	ErrNotImplemented = errors.New("not implemented by mutation variant")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrAccountNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACCOUNT_NOT_FOUND")
	case ErrMutationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "MUTATION_NOT_FOUND")
	case ErrAmountBelowMinimum:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "AMOUNT_BELOW_MINIMUM")
	case ErrAccountHasMutations:
		return NewHTTPError(http.StatusConflict, err.Error(), "ACCOUNT_HAS_MUTATIONS")
	case ErrStaleMutation:
		return NewHTTPError(http.StatusConflict, err.Error(), "STALE_MUTATION")
	case ErrCheckinNotAccepted:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CHECKIN_NOT_ACCEPTED")
	case ErrCheckoutNotAccepted:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CHECKOUT_NOT_ACCEPTED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
