package response

import (
	"github.com/gin-gonic/gin"

	"yatra/internal/shared/apperror"
)

// OK sends a success envelope.
func OK(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail sends an error envelope with an explicit status code.
func Fail(c *gin.Context, code int, errMsg string, details interface{}) {
	c.JSON(code, APIResponse{
		Success: false,
		Error:   errMsg,
		Errors:  details,
	})
}

// Error sends an error envelope, deriving the status code from the
// pipeline error taxonomy.
func Error(c *gin.Context, err error, errMsg string) {
	Fail(c, apperror.HTTPStatus(err), errMsg, nil)
}
