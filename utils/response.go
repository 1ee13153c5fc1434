package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiResponse is the envelope every endpoint returns, success or failure.
type ApiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ApiError carries an HTTP status code alongside the message so the
// request boundary can build the error envelope without guessing.
type ApiError struct {
	StatusCode int
	Message    string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(statusCode int, message string) *ApiError {
	return &ApiError{StatusCode: statusCode, Message: message}
}

func Respond(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	})
}

// RespondError converts any error into the error envelope. Unstructured
// errors default to 500.
func RespondError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "something went wrong"

	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		statusCode = apiErr.StatusCode
		message = apiErr.Message
	} else if err != nil {
		message = err.Error()
	}

	c.AbortWithStatusJSON(statusCode, ApiResponse{
		StatusCode: statusCode,
		Data:       nil,
		Message:    message,
		Success:    false,
	})
}
