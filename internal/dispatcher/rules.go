package dispatcher

import (
	"context"
	"strings"

	"talksy/pkg/failure"

	"github.com/sirupsen/logrus"
)

// Sentences read back from Wikipedia for a spoken summary.
const summarySentences = 3

var DefaultGreetings = []string{`hello\b`, `hi\b`, `hey\b`, `greetings\b`, `howdy\b`}

var DefaultExits = []string{`exit\b`, `quit\b`, `bye\b`, `goodbye\b`, `stop\b`, `end\b`, `terminate\b`}

// New builds the default dispatcher over skills.
func New(s Skills, log *logrus.Logger, observer Observer) (*Dispatcher, error) {
	return NewBuilder().
		WithLogger(log).
		Observe(observer).
		Greeting(DefaultGreetings...).
		Exit(DefaultExits...).
		Rules(DefaultRules(s)...).
		Fallback(KnowledgeFallback(s.Knowledge)).
		Build()
}

// KnowledgeFallback asks the general-knowledge collaborator about the whole
// utterance.
func KnowledgeFallback(k Knowledge) Fallback {
	return func(ctx context.Context, utterance string) (string, error) {
		if k == nil {
			return "", failure.New(failure.NotConfigured, "knowledge", nil)
		}
		return k.Ask(ctx, utterance)
	}
}

// DefaultRules is the ordered rule table. Narrow patterns come before the
// broad wh-question rule, which would otherwise shadow them.
func DefaultRules(s Skills) []Rule {
	timeOfDay := func(ctx context.Context, _ Match) (string, error) {
		if s.Clock == nil {
			return "", failure.New(failure.NotConfigured, "clock", nil)
		}
		return s.Clock.Time(), nil
	}
	date := func(ctx context.Context, _ Match) (string, error) {
		if s.Clock == nil {
			return "", failure.New(failure.NotConfigured, "clock", nil)
		}
		return s.Clock.Date(), nil
	}
	weather := func(ctx context.Context, m Match) (string, error) {
		if s.Weather == nil {
			return "", failure.New(failure.NotConfigured, "weather", nil)
		}
		return s.Weather.Describe(ctx, strings.TrimSpace(m.Group(1)))
	}
	wikipedia := func(ctx context.Context, m Match) (string, error) {
		if s.Encyclopedia == nil {
			return "", failure.New(failure.NotConfigured, "wikipedia", nil)
		}
		return s.Encyclopedia.Summary(ctx, m.Group(1), summarySentences)
	}
	webSearch := func(ctx context.Context, m Match) (string, error) {
		if s.WebSearch == nil {
			return "", failure.New(failure.NotConfigured, "web_search", nil)
		}
		return s.WebSearch.Search(ctx, m.Group(0))
	}
	youtube := func(ctx context.Context, m Match) (string, error) {
		if s.WebSearch == nil {
			return "", failure.New(failure.NotConfigured, "youtube", nil)
		}
		return s.WebSearch.YouTube(ctx, strings.TrimSpace(m.Group(1)))
	}
	news := func(ctx context.Context, _ Match) (string, error) {
		if s.Headlines == nil {
			return "", failure.New(failure.NotConfigured, "news", nil)
		}
		return s.Headlines.Headlines(ctx)
	}
	movie := func(group int) Handler {
		return func(ctx context.Context, m Match) (string, error) {
			if s.Movies == nil {
				return "", failure.New(failure.NotConfigured, "movie", nil)
			}
			return s.Movies.MovieInfo(ctx, strings.TrimSpace(m.Group(group)))
		}
	}
	joke := func(ctx context.Context, _ Match) (string, error) {
		if s.Jokes == nil {
			return "", failure.New(failure.NotConfigured, "joke", nil)
		}
		return s.Jokes.Joke(ctx)
	}
	advice := func(ctx context.Context, _ Match) (string, error) {
		if s.Advisor == nil {
			return "", failure.New(failure.NotConfigured, "advice", nil)
		}
		return s.Advisor.Advice(ctx)
	}
	publicIP := func(ctx context.Context, _ Match) (string, error) {
		if s.Advisor == nil {
			return "", failure.New(failure.NotConfigured, "ip", nil)
		}
		ip, err := s.Advisor.PublicIP(ctx)
		if err != nil {
			return "", err
		}
		return "Your IP Address is " + ip, nil
	}
	open := func(ctx context.Context, m Match) (string, error) {
		if s.Desktop == nil {
			return "", failure.New(failure.NotConfigured, "open_app", nil)
		}
		kind, target := ClassifyOpenTarget(m.Group(1))
		if kind == OpenWebsite {
			return s.Desktop.OpenWebsite(ctx, target)
		}
		return s.Desktop.OpenApplication(ctx, target)
	}
	closeApp := func(ctx context.Context, m Match) (string, error) {
		if s.Desktop == nil {
			return "", failure.New(failure.NotConfigured, "close_app", nil)
		}
		return s.Desktop.CloseApplication(ctx, m.Group(1))
	}
	screenshot := func(ctx context.Context, _ Match) (string, error) {
		if s.Desktop == nil {
			return "", failure.New(failure.NotConfigured, "screenshot", nil)
		}
		return s.Desktop.Screenshot(ctx)
	}
	systemInfo := func(ctx context.Context, _ Match) (string, error) {
		if s.Desktop == nil {
			return "", failure.New(failure.NotConfigured, "system_info", nil)
		}
		return s.Desktop.SystemInfo(ctx)
	}
	reminder := func(ctx context.Context, m Match) (string, error) {
		if s.Reminders == nil {
			return "", failure.New(failure.NotConfigured, "reminder", nil)
		}
		text, at := SplitTimeClause(m.Group(1))
		return s.Reminders.Create(ctx, text, at)
	}
	ask := func(group int) Handler {
		return func(ctx context.Context, m Match) (string, error) {
			if s.Knowledge == nil {
				return "", failure.New(failure.NotConfigured, "knowledge", nil)
			}
			return s.Knowledge.Ask(ctx, m.Group(group))
		}
	}

	return []Rule{
		MustRule("time", `what (time|is the time)`, timeOfDay),
		MustRule("date", `what (date|is the date|day is it)`, date),

		MustRule("weather", `weather in (.+)`, weather),
		MustRule("weather", `what's the weather in (.+)`, weather),
		MustRule("weather", `how's the weather in (.+)`, weather),

		MustRule("wikipedia", `search for (.+) on wikipedia`, wikipedia),
		MustRule("wikipedia", `wikipedia (.+)`, wikipedia),
		MustRule("web_search", `search for (.+) on (web|google)`, webSearch),
		MustRule("web_search", `search (web|google) for (.+)`, webSearch),
		MustRule("youtube", `play (.+) on youtube`, youtube),

		MustRule("news", `(get|tell me|what's the) (news|headlines)`, news),

		MustRule("movie", `(tell me about|information about) the movie (.+)`, movie(2)),
		MustRule("movie", `movie info(?:rmation)? (?:on|about) (.+)`, movie(1)),

		MustRule("joke", `tell (me )?(a )?joke`, joke),
		MustRule("joke", `make me laugh`, joke),
		MustRule("joke", `(say|tell) something funny`, joke),

		MustRule("advice", `(give me|any) (some )?advice`, advice),
		MustRule("ip", `what(?:'s| is) my ip(?: address)?`, publicIP),

		MustRule("open", `\bopen (.+)`, open),
		MustRule("close", `\bclose (.+)`, closeApp),
		MustRule("screenshot", `take (a )?screenshot`, screenshot),
		MustRule("system_info", `(system|computer) information`, systemInfo),
		MustRule("system_info", `what are my (system|computer) specs`, systemInfo),

		MustRule("reminder", `remind me to (.+)`, reminder),
		MustRule("reminder", `set a reminder for (.+)`, reminder),

		MustRule("question", `(who|what|when|where|why|how) (.+)`, ask(0)),
		MustRule("calculate", `calculate (.+)`, ask(1)),
		MustRule("calculate", `compute (.+)`, ask(1)),
	}
}

// SplitTimeClause splits "<text> at <time>" at the last " at ", so the text
// itself may mention places ("meet anna at the station at 5 pm").
func SplitTimeClause(s string) (text, at string) {
	for i := len(s) - len(" at "); i >= 0; i-- {
		if strings.EqualFold(s[i:i+len(" at ")], " at ") {
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(" at "):])
		}
	}
	return strings.TrimSpace(s), ""
}
