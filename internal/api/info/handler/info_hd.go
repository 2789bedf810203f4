package infoHandler

import (
	"context"
	"errors"
	"time"

	"talksy/internal/api/info"
	contextPkg "talksy/pkg/context"
	"talksy/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
)

type queryFunc func(ctx context.Context, query string) (*info.ResultResponse, error)

func (h *InfoHandler) Wikipedia(ctx *fiber.Ctx) error {
	return h.query(ctx, "wikipedia", h.infoService.Wikipedia)
}

func (h *InfoHandler) YouTube(ctx *fiber.Ctx) error {
	return h.query(ctx, "youtube", h.infoService.YouTube)
}

func (h *InfoHandler) Google(ctx *fiber.Ctx) error {
	return h.query(ctx, "google", h.infoService.Google)
}

func (h *InfoHandler) query(ctx *fiber.Ctx, operation string, run queryFunc) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req info.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, errors.New("invalid request body"), ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := run(c, req.Query)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), operation)
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *InfoHandler) Weather(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req info.WeatherRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, errors.New("invalid request body"), ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.infoService.Weather(c, req.City)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "weather")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}
