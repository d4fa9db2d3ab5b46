package httpv1

import (
	"errors"
	"net/http"

	logginghelper "github.com/Egor213/LogiSense/internal/controller/common/logging"
	"github.com/labstack/echo/v4"
)

const msgInternal = "An internal server error occurred"

type errorResponse struct {
	Error string `json:"error"`
}

func newErrorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, errorResponse{Error: msg})
}

// ErrorHandler renders every error as {"error": "..."}. Details of
// unexpected failures are logged and never returned to the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := msgInternal

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code < http.StatusInternalServerError {
			msg = http.StatusText(code)
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}
	}

	if code >= http.StatusInternalServerError {
		logginghelper.LogError(c.Path(), err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = newErrorResponse(c, code, msg)
	}
	if writeErr != nil {
		logginghelper.LogError(c.Path(), writeErr)
	}
}
