package controllers

import (
	"errors"

	"github.com/flowbaker/alloybridge/pkg/clients/bridge"
	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders every failure as {error, details}.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	response := bridge.ErrorResponse{Error: "Internal server error"}

	var fiberErr *fiber.Error

	if domainErr, ok := domain.AsError(err); ok {
		status = domainErr.StatusCode
		response.Error = domainErr.Message
		response.Details = domainErr.Details
	} else if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		response.Error = fiberErr.Message
	} else {
		response.Details = err.Error()
	}

	if status < 400 || status > 599 {
		status = fiber.StatusInternalServerError
	}

	event := log.Warn()
	if status >= fiber.StatusInternalServerError {
		event = log.Error()
	}

	event.
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", status).
		Msg("Request failed")

	return ctx.Status(status).JSON(response)
}

func MethodNotAllowed(ctx fiber.Ctx) error {
	return domain.NewMethodNotAllowedError()
}

func invalidBody() error {
	return domain.NewValidationError("Invalid request body")
}

// userIdentity reads the caller identity; older clients send it as email.
func userIdentity(ctx fiber.Ctx) string {
	if userID := ctx.Query("userId"); userID != "" {
		return userID
	}

	return ctx.Query("email")
}
