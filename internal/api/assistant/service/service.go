package assistantService

import (
	"context"
	"math/rand"

	"talksy/internal/api/assistant"
	assistantRepository "talksy/internal/api/assistant/repository"
	"talksy/internal/dispatcher"
	"talksy/internal/entity"
	"talksy/pkg/audio"
	"talksy/pkg/clock"
	"talksy/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Acknowledgements are spoken back before a voice command is carried out.
var Acknowledgements = []string{
	"I'm ready to assist you.",
	"What can I help you with?",
	"How may I assist you today?",
	"I'm listening.",
	"Ready for your command.",
	"At your service.",
	"What would you like me to do?",
	"I'm here to help.",
}

type IAssistantService interface {
	Greet(ctx context.Context) (*assistant.GreetResponse, error)
	ProcessText(ctx context.Context, source entity.CommandSource, command string) (*assistant.ProcessTextResponse, error)
	Listen(ctx context.Context, req assistant.ListenRequest) (*assistant.ListenResponse, error)
	Speak(ctx context.Context, text string) (*assistant.SpeakResponse, error)
	History(ctx context.Context, page, limit int) (*assistant.HistoryResponse, error)
	AudioFile(ctx context.Context, name string) ([]byte, error)
}

type Resolver interface {
	Resolve(ctx context.Context, utterance string) dispatcher.Outcome
}

type Config struct {
	UserName string
	BotName  string
	// Synthesize attaches an audio_url to text replies when a synthesizer
	// is configured.
	Synthesize bool
}

type assistantService struct {
	log         *logrus.Logger
	dispatcher  Resolver
	clock       clock.IClock
	repo        assistantRepository.Repository
	transcriber audio.ITranscriber
	synthesizer audio.ISpeechSynthesizer
	audioStore  AudioStore
	utils       utils.IUtils
	config      Config
	pick        func(n int) int
}

type Option func(*assistantService)

func WithRepository(repo assistantRepository.Repository) Option {
	return func(s *assistantService) { s.repo = repo }
}

func WithTranscriber(t audio.ITranscriber) Option {
	return func(s *assistantService) { s.transcriber = t }
}

func WithSynthesizer(tts audio.ISpeechSynthesizer, store AudioStore) Option {
	return func(s *assistantService) {
		s.synthesizer = tts
		s.audioStore = store
	}
}

// WithPicker replaces the random acknowledgement choice.
func WithPicker(pick func(n int) int) Option {
	return func(s *assistantService) { s.pick = pick }
}

func New(
	log *logrus.Logger,
	d Resolver,
	c clock.IClock,
	u utils.IUtils,
	config Config,
	opts ...Option,
) IAssistantService {
	s := &assistantService{
		log:        log,
		dispatcher: d,
		clock:      c,
		utils:      u,
		config:     config,
		pick:       rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
