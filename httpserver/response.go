package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"nettileffa/errs"
	"nettileffa/pkg/sentry"

	"github.com/labstack/echo/v4"
)

const (
	defaultErrorCode     = "100500"
	internalErrorMessage = "Internal server error"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  []errs.FieldError `json:"fields,omitempty"`
}

// customHTTPErrorHandler maps application errors to HTTP status codes,
// logs them with the request id and reports 5xx to Sentry.
func (s *Server) customHTTPErrorHandler(err error, c echo.Context) {
	// Don't write response if already committed
	if c.Response().Committed {
		return
	}

	status, resp := errorResponse(err)

	if status >= http.StatusInternalServerError {
		s.Logger.Errorw(err.Error(),
			"request_id", s.requestID(c),
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", status,
		)
		sentry.WithContext(c).
			WithTag("request_id", s.requestID(c)).
			WithTag("status", strconv.Itoa(status)).
			Error(err)
	} else {
		s.Logger.Infow(resp.Message,
			"request_id", s.requestID(c),
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", status,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, resp)
	}
	if err != nil {
		s.Logger.Errorw("cannot write error response", "request_id", s.requestID(c), "error", err)
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		return he.Code, ErrorResponse{Code: errorCode(nil, he.Code), Message: message}
	}

	status := statusCode(err)
	message := errs.ErrorMessage(err)
	if status == http.StatusInternalServerError {
		message = internalErrorMessage
	}
	return status, ErrorResponse{
		Code:    errorCode(err, status),
		Message: message,
		Fields:  errs.ErrorFields(err),
	}
}

func statusCode(err error) int {
	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusBadRequest
	case errs.ENOTFOUND:
		return http.StatusNotFound
	case errs.ECONFLICT:
		return http.StatusConflict
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented
	case errs.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func errorCode(err error, status int) string {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case errs.EINVALID:
			return "100010"
		case errs.ENOTFOUND:
			return "100404"
		case errs.ECONFLICT:
			return "100409"
		case errs.EUNAUTHORIZED:
			return "100401"
		case errs.ENOTIMPLEMENTED:
			return "100501"
		case errs.EUNAVAILABLE:
			return "100503"
		case errs.EINTERNAL:
			return defaultErrorCode
		}
	}

	if status != 0 {
		return fmt.Sprintf("100%03d", status)
	}
	return defaultErrorCode
}
