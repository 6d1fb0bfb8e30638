package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/utils/logging"
)

// Handle logs the error with a message. It is used where an error must not
// fail the caller, such as notification side effects.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// HandleHTTP logs the error and writes a JSON error body with statusCode.
// Server side failures are logged with goerr values and stack, client side
// failures only with their message.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	if statusCode >= http.StatusInternalServerError {
		var ge *goerr.Error
		if errors.As(err, &ge) {
			logger.Error("HTTP error",
				"status", statusCode,
				"error", err.Error(),
				"values", ge.Values(),
				"stack", ge.Stacks(),
			)
		} else {
			logger.Error("HTTP error",
				"status", statusCode,
				"error", err.Error(),
			)
		}
	} else {
		logger.Info("HTTP client error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	detail := err.Error()
	if statusCode >= http.StatusInternalServerError {
		detail = http.StatusText(statusCode)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Detail: detail})
}
