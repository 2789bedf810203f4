package infoHandler

import (
	infoService "talksy/internal/api/info/service"
	"talksy/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type InfoHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	infoService infoService.IInfoService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	is infoService.IInfoService,
) *InfoHandler {
	return &InfoHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		infoService: is,
	}
}

func (h *InfoHandler) Start(srv fiber.Router) {
	info := srv.Group("/info")

	info.Post("/wikipedia", h.middleware.NewRateLimiter, h.Wikipedia)
	info.Post("/youtube", h.middleware.NewRateLimiter, h.YouTube)
	info.Post("/google", h.middleware.NewRateLimiter, h.Google)
	info.Post("/weather", h.middleware.NewRateLimiter, h.Weather)
}
