package config

import (
	"os"
	"strings"

	assistantRepository "talksy/internal/api/assistant/repository"
	assistantService "talksy/internal/api/assistant/service"
	"talksy/internal/dispatcher"
	"talksy/internal/metrics"
	"talksy/pkg/advice"
	"talksy/pkg/clock"
	"talksy/pkg/desktop"
	"talksy/pkg/joke"
	"talksy/pkg/news"
	"talksy/pkg/openai"
	"talksy/pkg/reminder"
	"talksy/pkg/search"
	"talksy/pkg/tmdb"
	"talksy/pkg/weather"
	"talksy/pkg/wikipedia"
	"talksy/pkg/wolfram"
)

type skillSet struct {
	dispatch  dispatcher.Skills
	clock     clock.IClock
	wikipedia wikipedia.IWikipedia
	search    search.ISearch
	weather   weather.IWeather
	reminders reminder.IReminder
}

// skills builds the collaborators the dispatcher routes to. A provider whose
// key is missing stays nil and its rules answer "not configured".
func (s *Server) skills(repo assistantRepository.Repository) skillSet {
	set := skillSet{
		clock:     clock.New(),
		wikipedia: wikipedia.New(s.http),
	}

	host := desktop.New(s.log, desktop.WithScreenshotDir(os.Getenv("SCREENSHOT_DIR")))

	var searchOpts []search.Option
	if envEnabled("OPEN_BROWSER") {
		searchOpts = append(searchOpts, search.WithOpener(host))
	}
	set.search = search.New(s.http, s.log, searchOpts...)

	set.dispatch = dispatcher.Skills{
		Clock:        set.clock,
		Encyclopedia: set.wikipedia,
		WebSearch:    set.search,
		Jokes:        joke.New(s.http),
		Advisor:      advice.New(s.http),
		Desktop:      host,
	}

	if key := os.Getenv("OPENWEATHER_APP_ID"); key != "" {
		var opts []weather.Option
		if s.redisServer != nil {
			opts = append(opts, weather.WithCache(s.redisServer))
		}
		set.weather = weather.New(key, s.http, s.log, opts...)
		set.dispatch.Weather = set.weather
	} else {
		s.warn("weather", errMissingKey("OPENWEATHER_APP_ID"))
	}

	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		var cache news.Cache
		if s.redisServer != nil {
			cache = s.redisServer
		}
		set.dispatch.Headlines = news.New(key, s.http, cache, s.log)
	} else {
		s.warn("news", errMissingKey("NEWS_API_KEY"))
	}

	if key := os.Getenv("TMDB_API_KEY"); key != "" {
		set.dispatch.Movies = tmdb.New(key, s.http)
	} else {
		s.warn("movies", errMissingKey("TMDB_API_KEY"))
	}

	if k := s.knowledge(); k != nil {
		set.dispatch.Knowledge = k
	}

	if repo != nil {
		var notifier reminder.Notifier
		number := os.Getenv("REMINDER_WHATSAPP_NUMBER")
		if s.whatsappClient != nil && number != "" {
			notifier = reminder.NewMessageNotifier(s.whatsappClient, number)
		} else {
			notifier = reminder.NewLogNotifier(s.log)
		}

		set.reminders = reminder.New(assistantService.NewReminderStore(repo), notifier, s.utils.NewULIDFromTimestamp, s.log)
		set.dispatch.Reminders = set.reminders
	}

	return set
}

// knowledge picks the general-knowledge provider. KNOWLEDGE_PROVIDER selects
// "wolfram", "gemini" or "openai"; unset tries them in that order.
func (s *Server) knowledge() dispatcher.Knowledge {
	appID := os.Getenv("WOLFRAM_ALPHA_ID")
	openaiKey := os.Getenv("OPENAI_API_KEY")

	switch strings.ToLower(os.Getenv("KNOWLEDGE_PROVIDER")) {
	case "gemini":
		if s.geminiClient != nil {
			return s.geminiClient
		}
		s.warn("knowledge", errMissingKey("GEMINI_API_KEY"))
		return nil
	case "wolfram":
		if appID != "" {
			return wolfram.New(appID, s.http)
		}
		s.warn("knowledge", errMissingKey("WOLFRAM_ALPHA_ID"))
		return nil
	case "openai":
		if openaiKey != "" {
			return openai.NewChatGPT(openaiKey)
		}
		s.warn("knowledge", errMissingKey("OPENAI_API_KEY"))
		return nil
	}

	if appID != "" {
		return wolfram.New(appID, s.http)
	}
	if s.geminiClient != nil {
		return s.geminiClient
	}
	if openaiKey != "" {
		return openai.NewChatGPT(openaiKey)
	}
	s.warn("knowledge", errMissingKey("WOLFRAM_ALPHA_ID"))
	return nil
}

func (s *Server) reminderScheduler(r reminder.IReminder) *reminder.Scheduler {
	return reminder.NewScheduler(r, s.log, os.Getenv("REMINDER_SCHEDULE")).
		OnDelivered(func(delivered int) {
			metrics.RemindersDelivered.Add(float64(delivered))
		})
}

type errMissingKey string

func (e errMissingKey) Error() string {
	return string(e) + " not set"
}
