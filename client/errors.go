package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"nettileffa/errs"
)

// APIError is a non-2xx answer of the API. Message is the server's message
// when the body carried one.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     []errs.FieldError
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the application error matching the status, so callers can
// use errs.ErrorCode on client errors too.
func (e *APIError) Unwrap() error {
	return &errs.Error{Code: appCode(e.StatusCode), Message: e.Message, Fields: e.Fields}
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  []errs.FieldError `json:"fields"`
	}

	e := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		e.Code = payload.Code
		e.Message = payload.Message
		e.Fields = payload.Fields
		return e
	}

	e.Message = fmt.Sprintf("request failed: %d %s", status, http.StatusText(status))
	return e
}

func appCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errs.EINVALID
	case http.StatusNotFound:
		return errs.ENOTFOUND
	case http.StatusConflict:
		return errs.ECONFLICT
	case http.StatusUnauthorized:
		return errs.EUNAUTHORIZED
	case http.StatusNotImplemented:
		return errs.ENOTIMPLEMENTED
	case http.StatusServiceUnavailable, http.StatusTooManyRequests:
		return errs.EUNAVAILABLE
	default:
		return errs.EINTERNAL
	}
}
