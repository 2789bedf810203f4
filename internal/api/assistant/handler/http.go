package assistantHandler

import (
	assistantService "talksy/internal/api/assistant/service"
	"talksy/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: as,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	assistant := srv.Group("/assistant")

	assistant.Get("/greet", h.Greet)
	assistant.Post("/process-text", h.middleware.NewRateLimiter, h.ProcessText)
	assistant.Post("/listen", h.middleware.NewRateLimiter, h.Listen)
	assistant.Post("/speak", h.middleware.NewRateLimiter, h.Speak)
	assistant.Get("/history", h.History)
	assistant.Get("/audio/:filename", h.ServeAudioFile)

	assistant.Use("/ws", h.upgradeOnly)
	assistant.Get("/ws", websocket.New(h.Socket))
}
