package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/Dawichi/hexastats/external/riot"
	"github.com/Dawichi/hexastats/internal/domain/catalog"
	"github.com/Dawichi/hexastats/internal/domain/match"
	"github.com/Dawichi/hexastats/internal/usecase"
	"github.com/Dawichi/hexastats/internal/validation"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "hexastats"

	// nginx convention for a client that went away before the response
	statusClientClosedRequest = 499
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain   string `json:"domain"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)

	var upErr *riot.UpstreamError
	if errors.As(err, &upErr) && upErr.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(upErr.RetryAfter.Seconds())))
	}

	message := publicMessage(mapped, err)
	items := []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}}
	if violations := validation.Violations(err); len(violations) > 0 {
		items = items[:0]
		for _, v := range violations {
			items = append(items, googleErrorItem{
				Domain:   errorDomain,
				Reason:   mapped.Reason,
				Message:  v.Reason,
				Location: v.Path,
			})
		}
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  items,
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: "internalError", Message: msg}},
		},
	})
}

// publicMessage hides upstream urls and bodies; they stay in the logs.
func publicMessage(mapped mappedError, err error) string {
	var upErr *riot.UpstreamError
	if errors.As(err, &upErr) {
		if upErr.Status == 0 {
			return mapped.Reason + ": upstream unreachable"
		}
		return mapped.Reason + ": upstream responded with status " + strconv.Itoa(upErr.Status)
	}
	if mapped.HTTPStatus == http.StatusInternalServerError && mapped.Reason == "internalError" {
		return "internal server error"
	}
	return err.Error()
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrRateLimited):
		return mappedError{HTTPStatus: http.StatusTooManyRequests, Reason: "rateLimited", Status: "RESOURCE_EXHAUSTED"}
	case errors.Is(err, validation.ErrValidationFailed):
		return mappedError{HTTPStatus: http.StatusBadGateway, Reason: "upstreamContractViolation", Status: "UNAVAILABLE"}
	case errors.Is(err, match.ErrMalformedMatch):
		return mappedError{HTTPStatus: http.StatusBadGateway, Reason: "malformedMatch", Status: "UNAVAILABLE"}
	case errors.Is(err, catalog.ErrConfigurationGap):
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "configurationGap", Status: "INTERNAL"}
	case errors.Is(err, usecase.ErrTransient):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	case errors.Is(err, context.DeadlineExceeded):
		return mappedError{HTTPStatus: http.StatusGatewayTimeout, Reason: "deadlineExceeded", Status: "DEADLINE_EXCEEDED"}
	case errors.Is(err, context.Canceled):
		return mappedError{HTTPStatus: statusClientClosedRequest, Reason: "requestCancelled", Status: "CANCELLED"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}
}
