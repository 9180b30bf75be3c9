package util

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// HTTPError is the terminal outcome of a failed request. Code is a fixed,
// non-revealing reason code; Message optionally carries validation detail
// for bad requests.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Code, he.Status)
}

func BadRequestErr(code string) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Code: code}
}

func UnauthorizedErr(code string) *HTTPError {
	return &HTTPError{Status: http.StatusUnauthorized, Code: code}
}

func ForbiddenErr(code string) *HTTPError {
	return &HTTPError{Status: http.StatusForbidden, Code: code}
}

func NotFoundErr(code string) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Code: code}
}

// BuildDbHTTPErr logs the underlying database error and returns the generic
// 500 response. No internal detail reaches the client.
func BuildDbHTTPErr(err error) *HTTPError {
	log.WithError(err).Error("database error occurred")
	return &HTTPError{
		Status: http.StatusInternalServerError,
		Code:   "INTERNAL_ERROR",
	}
}

// BuildInternalHTTPErr logs an unexpected non-database failure and returns
// the generic 500 response.
func BuildInternalHTTPErr(err error) *HTTPError {
	log.WithError(err).Error("internal error occurred")
	return &HTTPError{
		Status: http.StatusInternalServerError,
		Code:   "INTERNAL_ERROR",
	}
}

// BuildJSONBindHTTPErr wraps a body binding/validation failure. Validation
// detail is echoed back to the client.
func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_FAILED",
		Message: err.Error(),
	}
}

func ParseId(val string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, &HTTPError{
			Status: http.StatusBadRequest,
			Code:   "ID_MALFORMED",
		}
	}
	return id, nil
}

type errorRes struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// HandleHTTPErrorRes writes the response for an HTTP error. Break the route
// after calling this function.
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	c.JSON(err.Status, errorRes{
		Success: false,
		Code:    err.Code,
		Message: err.Message,
	})
}

type HandlerOpts struct {
	// SuccessStatus overrides the status written on success. Zero picks
	// 200 when the handler returns data and 204 when it returns nil.
	SuccessStatus int
}

// HandlerWrapper adapts a (data, *HTTPError) handler into a gin handler,
// funneling every outcome through the single responder.
func HandlerWrapper(handler func(c *gin.Context) (interface{}, *HTTPError), opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		status := opts.SuccessStatus
		if data == nil {
			if status == 0 {
				status = http.StatusNoContent
			}
			c.Status(status)
			return
		}
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, data)
	}
}
