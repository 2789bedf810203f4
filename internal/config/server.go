package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"talksy/database/postgres"
	assistantHandler "talksy/internal/api/assistant/handler"
	assistantRepository "talksy/internal/api/assistant/repository"
	assistantService "talksy/internal/api/assistant/service"
	infoHandler "talksy/internal/api/info/handler"
	infoService "talksy/internal/api/info/service"
	messagingHandler "talksy/internal/api/messaging/handler"
	messagingService "talksy/internal/api/messaging/service"
	"talksy/internal/dispatcher"
	"talksy/internal/metrics"
	"talksy/internal/middleware"
	"talksy/pkg/audio"
	"talksy/pkg/gemini"
	"talksy/pkg/httpclient"
	"talksy/pkg/redis"
	"talksy/pkg/s3"
	"talksy/pkg/smtp"
	"talksy/pkg/utils"
	"talksy/pkg/whatsapp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	http           *httpclient.Client
	handlers       []handler
	redisServer    redis.IRedis
	smtpMailer     smtp.ItfSmtp
	whatsappClient whatsapp.IWhatsappSender
	geminiClient   gemini.IGemini
	s3Client       s3.ItfS3
	transcriber    audio.ITranscriber
	synthesizer    audio.ISpeechSynthesizer
	dispatcher     *dispatcher.Dispatcher
	scheduler      scheduler
	metricsEnabled bool
}

type handler interface {
	Start(srv fiber.Router)
}

type scheduler interface {
	Start() error
	Stop()
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects to Postgres and applies the schema. Without a
// database the assistant runs without history and reminders.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			s.warn("database", err)
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		s.db = db
		return nil
	}
}

func WithRedisServer() ServerOption {
	return func(s *Server) error {
		client, err := redis.New()
		if err != nil {
			s.warn("redis", err)
			return nil
		}
		s.redisServer = client
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			s.warn("s3", err)
			return nil
		}
		s.s3Client = client
		return nil
	}
}

// WithWhatsappClient pairs the WhatsApp device when WHATSAPP_ENABLED is set.
// The session is stored in Postgres next to the application tables.
func WithWhatsappClient(ctx context.Context) ServerOption {
	return func(s *Server) error {
		if !envEnabled("WHATSAPP_ENABLED") {
			return nil
		}

		client, err := whatsapp.New(ctx, s.log)
		if err != nil {
			s.warn("whatsapp", err)
			return nil
		}
		s.whatsappClient = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		if os.Getenv("GEMINI_API_KEY") == "" {
			return nil
		}

		client, err := gemini.NewGeminiClient()
		if err != nil {
			s.warn("gemini", err)
			return nil
		}
		s.geminiClient = client
		return nil
	}
}

// WithSpeech enables transcription (OpenAI Whisper) and speech synthesis
// (ElevenLabs) for whichever keys are present.
func WithSpeech() ServerOption {
	return func(s *Server) error {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			s.transcriber = audio.NewTranscriptionService(key)
		} else {
			s.warn("transcription", fmt.Errorf("OPENAI_API_KEY not set"))
		}

		if key := os.Getenv("ELEVENLABS_API_KEY"); key != "" {
			s.synthesizer = audio.NewTTSService(key, os.Getenv("ELEVENLABS_VOICE_ID"))
		} else {
			s.warn("speech synthesis", fmt.Errorf("ELEVENLABS_API_KEY not set"))
		}
		return nil
	}
}

func WithHTTPClient(timeout time.Duration) ServerOption {
	return func(s *Server) error {
		s.http = httpclient.New(timeout)
		return nil
	}
}

// WithMetrics exposes Prometheus metrics at /metrics.
func WithMetrics() ServerOption {
	return func(s *Server) error {
		s.metricsEnabled = true
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) warn(component string, err error) {
	if s.log == nil {
		return
	}
	s.log.WithFields(logrus.Fields{
		"component": component,
		"error":     err.Error(),
	}).Warn("Optional component disabled")
}

func (s *Server) RegisterHandler() error {
	if s.http == nil {
		s.http = httpclient.New(httpclient.TimeoutFromEnv())
	}
	if s.utils == nil {
		s.utils = utils.New()
	}

	var assistantRepo assistantRepository.Repository
	if s.db != nil {
		assistantRepo = assistantRepository.New(s.db, s.log)
	}

	skills := s.skills(assistantRepo)

	d, err := dispatcher.New(skills.dispatch, s.log, metrics.ObserveDispatch)
	if err != nil {
		return fmt.Errorf("failed to build dispatcher: %w", err)
	}
	s.dispatcher = d

	if skills.reminders != nil {
		s.scheduler = s.reminderScheduler(skills.reminders)
	}

	// Assistant Domain
	assistantServices := assistantService.New(s.log, d, skills.clock, s.utils, assistantService.Config{
		UserName:   envOr("USER", "Sir"),
		BotName:    envOr("BOTNAME", "Talksy"),
		Synthesize: s.synthesizer != nil,
	}, s.assistantOptions(assistantRepo)...)
	assistantHandlers := assistantHandler.New(s.log, s.validator, s.middleware, assistantServices)

	// Info Domain
	infoServices := infoService.New(s.log, skills.wikipedia, skills.search, skills.weather)
	infoHandlers := infoHandler.New(s.log, s.validator, s.middleware, infoServices)

	// Messaging Domain
	var wa messagingService.WhatsappSender
	if s.whatsappClient != nil {
		wa = s.whatsappClient
	}
	messagingServices := messagingService.New(s.log, s.smtpMailer, wa)
	messagingHandlers := messagingHandler.New(s.log, s.validator, s.middleware, messagingServices)

	s.handlers = append(s.handlers, assistantHandlers, infoHandlers, messagingHandlers)
	return nil
}

func (s *Server) assistantOptions(repo assistantRepository.Repository) []assistantService.Option {
	var opts []assistantService.Option

	if repo != nil {
		opts = append(opts, assistantService.WithRepository(repo))
	}
	if s.transcriber != nil {
		opts = append(opts, assistantService.WithTranscriber(s.transcriber))
	}
	if s.synthesizer != nil {
		var store assistantService.AudioStore
		if s.s3Client != nil {
			store = assistantService.NewS3AudioStore(s.s3Client)
		} else {
			store = assistantService.NewLocalAudioStore(envOr("AUDIO_DIR", "./storage/audio"), "/api/v1/assistant/audio/")
		}
		opts = append(opts, assistantService.WithSynthesizer(s.synthesizer, store))
	}

	return opts
}

func (s *Server) Run() error {
	s.mountRoutes()

	if s.scheduler != nil {
		if err := s.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start reminder scheduler: %w", err)
		}
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// mountRoutes registers the middleware chain ahead of every route, including
// the root health check and /metrics.
func (s *Server) mountRoutes() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware)
	if s.metricsEnabled {
		s.engine.Use(metrics.Middleware())
		s.engine.Get("/metrics", metrics.Handler())
	}

	s.setupHealthCheck()

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

// Shutdown stops the HTTP server and releases every collaborator.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.engine.ShutdownWithContext(ctx)

	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	if s.whatsappClient != nil {
		_ = s.whatsappClient.Disconnect()
	}
	if s.geminiClient != nil {
		s.geminiClient.Close()
	}
	if s.redisServer != nil {
		_ = s.redisServer.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Welcome to Talksy API. A virtual assistant that respects your privacy.",
		})
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envEnabled(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Dispatcher returns the dispatcher built by RegisterHandler.
func (s *Server) Dispatcher() *dispatcher.Dispatcher {
	return s.dispatcher
}
