package messagingHandler

import (
	messagingService "talksy/internal/api/messaging/service"
	"talksy/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MessagingHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	messagingService messagingService.IMessagingService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ms messagingService.IMessagingService,
) *MessagingHandler {
	return &MessagingHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		messagingService: ms,
	}
}

func (h *MessagingHandler) Start(srv fiber.Router) {
	messaging := srv.Group("/messaging", h.middleware.NewTokenMiddleware)

	messaging.Post("/email", h.middleware.NewRateLimiter, h.SendEmail)
	messaging.Post("/whatsapp", h.middleware.NewRateLimiter, h.SendWhatsapp)
}
