package failure

import (
	"errors"
	"net/http"
	"strings"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
var PricingUnavailableError = &Failure{Code: http.StatusUnprocessableEntity, Message: "pricing unavailable for this trek"}
var SubmissionInProgressError = &Failure{Code: http.StatusConflict, Message: "booking submission already in progress"}
var PriceChangedError = &Failure{Code: http.StatusConflict, Message: "the price changed, please review your booking"}

// authMarkers are the upstream messages that mean the user has to sign in again.
var authMarkers = []string{"session expired", "login required", "unauthorized"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// BadGateway returns a new Failure for an upstream call that failed without a usable status.
func BadGateway(msg string) error {
	return &Failure{
		Code:    http.StatusBadGateway,
		Message: msg,
	}
}

// PaymentRequired returns a new Failure for a payment the provider declined.
func PaymentRequired(msg string) error {
	return &Failure{
		Code:    http.StatusPaymentRequired,
		Message: msg,
	}
}

// FromStatus maps an upstream status and message onto a Failure.
// Upstream 5xx responses become a bad gateway, everything else keeps its code.
func FromStatus(code int, msg string) error {
	if code >= http.StatusInternalServerError {
		code = http.StatusBadGateway
	}

	return &Failure{
		Code:    code,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsAuth reports whether err means the session is gone and the user must sign in again.
func IsAuth(err error) bool {
	if err == nil {
		return false
	}

	var fail *Failure
	if errors.As(err, &fail) && fail.Code == http.StatusUnauthorized {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range authMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// Message returns the message of a Failure in err, or fallback when err carries none.
func Message(err error, fallback string) string {
	var fail *Failure
	if errors.As(err, &fail) && fail.Message != "" {
		return fail.Message
	}

	return fallback
}
