package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"trekking/shared/constant"
	"trekking/shared/failure"
	"trekking/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

// LoginRequired tells the browser where to sign in; the redirect carries the page to come back to.
type LoginRequired struct {
	Error         *string `json:"error,omitempty"`
	LoginRedirect string  `json:"login_redirect"`
}

// ErrorWithData reports a failure together with the state the caller should render.
type ErrorWithData[T any] struct {
	Error *string `json:"error,omitempty"`
	Data  *T      `json:"data,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends a response with an error message. Unexpected errors are not echoed to the client.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := clientMessage(err)

	response(writer, code, Error{Error: &errMsg})
}

// WithErrorData sends the error status with the payload the client needs to keep going.
func WithErrorData(writer http.ResponseWriter, err error, payload interface{}) {
	code := failure.GetCode(err)
	errMsg := clientMessage(err)

	response(writer, code, ErrorWithData[any]{Error: &errMsg, Data: &payload})
}

// WithLoginRedirect sends a 401 with the login URL to continue from.
func WithLoginRedirect(writer http.ResponseWriter, err error, redirect string) {
	errMsg := clientMessage(err)

	response(writer, http.StatusUnauthorized, LoginRequired{Error: &errMsg, LoginRedirect: redirect})
}

// WithPDF sends a PDF as an attachment.
func WithPDF(writer http.ResponseWriter, filename string, content []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypePDF)
	writer.Header().Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	writer.Header().Set("Content-Length", strconv.Itoa(len(content)))
	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(content); err != nil {
		logger.ErrorWithStack(err)
	}
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func clientMessage(err error) string {
	var fail *failure.Failure
	if errors.As(err, &fail) && fail.Code != http.StatusInternalServerError {
		return fail.Message
	}

	return constant.ResponseErrorGeneric
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
