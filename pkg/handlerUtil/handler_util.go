package handlerUtil

import (
	"errors"

	"talksy/internal/api/messaging"
	"talksy/pkg/failure"
	"talksy/pkg/log"
	"talksy/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

var failureStatus = map[failure.Reason]int{
	failure.NotConfigured: fiber.StatusServiceUnavailable,
	failure.Unavailable:   fiber.StatusServiceUnavailable,
	failure.NotFound:      fiber.StatusNotFound,
	failure.InvalidInput:  fiber.StatusBadRequest,
	failure.Upstream:      fiber.StatusBadGateway,
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Collaborator failures carry a sentence meant for the user.
	var f *failure.Failure
	if errors.As(err, &f) {
		status, ok := failureStatus[f.Reason]
		if !ok {
			status = fiber.StatusBadGateway
		}
		fields["reason"] = f.Reason
		h.logger.WithFields(fields).Warn("Collaborator failed")
		return c.Status(status).JSON(ErrorResponse{
			Error: failure.Text(f),
			Code:  string(f.Reason),
		})
	}

	// Messaging replies keep the success/message shape even when sending fails.
	if errors.Is(err, messaging.ErrSendEmail) || errors.Is(err, messaging.ErrSendWhatsapp) {
		h.logger.WithFields(fields).Error("Message delivery failed")
		msg := messaging.ErrSendEmail.Error()
		if errors.Is(err, messaging.ErrSendWhatsapp) {
			msg = messaging.ErrSendWhatsapp.Error()
		}
		return c.Status(fiber.StatusBadGateway).JSON(messaging.SendResponse{
			Success: false,
			Message: msg,
		})
	}

	traceID := log.ErrorWithTraceID(fields, "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "An unexpected error occurred",
		Details: "trace_id: " + traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
