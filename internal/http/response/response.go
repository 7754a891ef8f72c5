package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondErr maps a service error onto the envelope. Errors outside the
// apierr taxonomy become an opaque 500; server-side failures are logged.
func RespondErr(c *gin.Context, log *logger.Logger, err error) {
	ae, ok := apierr.As(err)
	if !ok {
		if log != nil {
			log.Error("Unhandled request error", "path", c.FullPath(), "error", err)
		}
		RespondError(c, http.StatusInternalServerError, "internal_error", errors.New(http.StatusText(http.StatusInternalServerError)))
		return
	}
	status := ae.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("Request failed", "path", c.FullPath(), "kind", string(ae.Kind), "code", ae.Code, "error", ae.Err)
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: publicMessage(ae, status), Code: ae.Code}})
}

func publicMessage(ae *apierr.Error, status int) string {
	// Store and configuration details stay in the logs.
	if status >= http.StatusInternalServerError && ae.Kind != apierr.KindGeneration {
		return http.StatusText(status)
	}
	return ae.Error()
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
