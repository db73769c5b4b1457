// internal/common/errors/handler.go
package errors

import (
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders application errors as API responses with
// standardized logging.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Respond writes the {ok:false, error} envelope for any error. Validation
// and constraint failures are expected traffic and logged at info;
// everything else is logged as an error with full details.
func (h *ErrorHandler) Respond(c *gin.Context, err error) {
	stdErr := AsStandardError(err)

	fields := map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"message":   stdErr.Message,
		"path":      c.FullPath(),
		"method":    c.Request.Method,
		"retryable": stdErr.Retryable,
	}

	if IsClientError(stdErr.Code) {
		h.logger.Info("Request rejected", fields)
	} else {
		fields["details"] = stdErr.Details
		h.logger.Error("Request failed", fields)
	}

	c.JSON(HTTPStatus(stdErr.Code), gin.H{
		"ok":    false,
		"error": stdErr.Message,
	})
}
