package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, guards, rate limiter).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return resolveAuthError(authErr, log)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusConflict, "cart is empty"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "session expired, please log in again"
	case errors.Is(err, domain.ErrTableNotFound):
		return http.StatusNotFound, "table not found"
	}

	// The event API answered with an error of its own.
	var remoteErr *domain.RemoteError
	if errors.As(err, &remoteErr) {
		log.Warn().
			Int("remote_status", remoteErr.StatusCode).
			Str("path", c.Path()).
			Msg("upstream error")
		msg := remoteErr.Message
		if msg == "" {
			msg = "upstream request failed"
		}
		return http.StatusBadGateway, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// resolveAuthError separates refused credentials from an auth service that
// could not answer. Only a 4xx answer or an explicit reason reads as refusal.
func resolveAuthError(authErr *domain.AuthError, log zerolog.Logger) (int, string) {
	var remoteErr *domain.RemoteError
	if errors.As(authErr.Err, &remoteErr) && remoteErr.StatusCode >= http.StatusInternalServerError {
		log.Warn().Int("remote_status", remoteErr.StatusCode).Msg("auth service error")
		msg := remoteErr.Message
		if msg == "" {
			msg = "authentication service unavailable"
		}
		return http.StatusBadGateway, msg
	}
	if authErr.Message != "" {
		return http.StatusUnauthorized, authErr.Message
	}
	if remoteErr != nil {
		return http.StatusUnauthorized, "invalid credentials"
	}
	if authErr.Err != nil {
		log.Warn().Err(authErr.Err).Msg("auth service unreachable")
		return http.StatusServiceUnavailable, "authentication service unavailable"
	}
	return http.StatusUnauthorized, "login failed"
}
