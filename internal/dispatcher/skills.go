package dispatcher

import "context"

type Clock interface {
	Time() string
	Date() string
}

type Weather interface {
	Describe(ctx context.Context, city string) (string, error)
}

type Encyclopedia interface {
	Summary(ctx context.Context, topic string, sentences int) (string, error)
}

type WebSearch interface {
	Search(ctx context.Context, query string) (string, error)
	YouTube(ctx context.Context, query string) (string, error)
}

type Headlines interface {
	Headlines(ctx context.Context) (string, error)
}

type Movies interface {
	MovieInfo(ctx context.Context, title string) (string, error)
}

type Jokes interface {
	Joke(ctx context.Context) (string, error)
}

type Advisor interface {
	Advice(ctx context.Context) (string, error)
	PublicIP(ctx context.Context) (string, error)
}

type Knowledge interface {
	Ask(ctx context.Context, query string) (string, error)
}

type Desktop interface {
	OpenApplication(ctx context.Context, name string) (string, error)
	CloseApplication(ctx context.Context, name string) (string, error)
	OpenWebsite(ctx context.Context, url string) (string, error)
	Screenshot(ctx context.Context) (string, error)
	SystemInfo(ctx context.Context) (string, error)
}

type Reminders interface {
	Create(ctx context.Context, text, timeText string) (string, error)
}

// Skills are the collaborators the default rule table routes to. A nil
// collaborator makes its rules answer with a not-configured failure.
type Skills struct {
	Clock        Clock
	Weather      Weather
	Encyclopedia Encyclopedia
	WebSearch    WebSearch
	Headlines    Headlines
	Movies       Movies
	Jokes        Jokes
	Advisor      Advisor
	Knowledge    Knowledge
	Desktop      Desktop
	Reminders    Reminders
}
