// Package response is the single place where application errors become
// HTTP responses. Status code mapping lives here and nowhere else; inner
// error details are logged but never sent to clients.
package response

import (
	"net/http"

	"github.com/example/storefront/pkg/errors"
	"github.com/example/storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDKey is the gin context key carrying the request id.
const RequestIDKey = "request_id"

// Response is the uniform envelope. Fields carries per-field messages for
// validation failures and is empty otherwise.
type Response struct {
	Success   bool              `json:"success"`
	Data      interface{}       `json:"data,omitempty"`
	Error     string            `json:"error,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
}

var httpStatusMap = map[errors.ErrorCode]int{
	errors.CodeInternal:     http.StatusInternalServerError,
	errors.CodeBadRequest:   http.StatusBadRequest,
	errors.CodeUnauthorized: http.StatusUnauthorized,
	errors.CodeForbidden:    http.StatusForbidden,
	errors.CodeNotFound:     http.StatusNotFound,
	errors.CodeConflict:     http.StatusConflict,
	errors.CodeValidation:   http.StatusBadRequest,

	errors.CodeProductNotFound: http.StatusNotFound,
	errors.CodeOrderNotFound:   http.StatusNotFound,
	errors.CodeUserNotFound:    http.StatusNotFound,
	errors.CodeEmptyBasket:     http.StatusBadRequest,
	errors.CodeOrderState:      http.StatusConflict,
}

func mapErrorCodeToHTTPStatus(code errors.ErrorCode) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetRequestID returns the request id set by the middleware, if any.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// HandleError handles framework-level errors such as failed parameter
// binding. Always a client error, never logged at error level.
func HandleError(c *gin.Context, err error, message string, code int) {
	requestID := GetRequestID(c)

	logger.Warn(message,
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", code),
		zap.Error(err))

	c.JSON(code, &Response{
		Success:   false,
		Error:     string(errors.CodeBadRequest),
		Message:   message,
		Code:      code,
		RequestID: requestID,
	})
}

// HandleAppError maps an application error to its HTTP status. Internal
// errors are logged with the full chain but reach the client as a generic
// message.
func HandleAppError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	appErr := errors.AsAppError(err)
	httpStatus := mapErrorCodeToHTTPStatus(appErr.Code)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}
	if httpStatus >= http.StatusInternalServerError {
		logger.Error(appErr.Message, fields...)
	} else {
		logger.Warn(appErr.Message, fields...)
	}

	userMessage := appErr.Message
	if appErr.Code == errors.CodeInternal {
		userMessage = "internal server error"
	}

	c.JSON(httpStatus, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Fields:    appErr.Fields,
		Message:   userMessage,
		Code:      httpStatus,
		RequestID: requestID,
	})
}

// HandleSuccess writes a 200 envelope.
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: GetRequestID(c),
	})
}

// HandleCreated writes a 201 envelope.
func HandleCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: GetRequestID(c),
	})
}

// HandleNoContent writes 204.
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
