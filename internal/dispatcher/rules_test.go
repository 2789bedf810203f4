package dispatcher

import (
	"context"
	"errors"
	"testing"

	"talksy/pkg/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSkills records every collaborator call as "method:arg".
type stubSkills struct {
	calls []string
}

func (s *stubSkills) record(call string) { s.calls = append(s.calls, call) }

func (s *stubSkills) Time() string { s.record("time"); return "The current time is 03:04 PM" }
func (s *stubSkills) Date() string { s.record("date"); return "Today is Monday, January 02, 2006" }

func (s *stubSkills) Describe(_ context.Context, city string) (string, error) {
	s.record("weather:" + city)
	return "The weather in " + city + " is clear sky.", nil
}

func (s *stubSkills) Summary(_ context.Context, topic string, sentences int) (string, error) {
	s.record("wikipedia:" + topic)
	return "summary of " + topic, nil
}

func (s *stubSkills) Search(_ context.Context, query string) (string, error) {
	s.record("search:" + query)
	return "results", nil
}

func (s *stubSkills) YouTube(_ context.Context, query string) (string, error) {
	s.record("youtube:" + query)
	return "Playing " + query + " on YouTube", nil
}

func (s *stubSkills) Headlines(context.Context) (string, error) {
	s.record("news")
	return "Here are the top headlines:", nil
}

func (s *stubSkills) MovieInfo(_ context.Context, title string) (string, error) {
	s.record("movie:" + title)
	return "Title: " + title, nil
}

func (s *stubSkills) Joke(context.Context) (string, error) {
	s.record("joke")
	return "a joke", nil
}

func (s *stubSkills) Advice(context.Context) (string, error) {
	s.record("advice")
	return "Drink water.", nil
}

func (s *stubSkills) PublicIP(context.Context) (string, error) {
	s.record("ip")
	return "203.0.113.7", nil
}

func (s *stubSkills) Ask(_ context.Context, query string) (string, error) {
	s.record("ask:" + query)
	return "answer", nil
}

func (s *stubSkills) OpenApplication(_ context.Context, name string) (string, error) {
	s.record("open_app:" + name)
	return "Opening " + name, nil
}

func (s *stubSkills) CloseApplication(_ context.Context, name string) (string, error) {
	s.record("close_app:" + name)
	return "Closed " + name, nil
}

func (s *stubSkills) OpenWebsite(_ context.Context, url string) (string, error) {
	s.record("open_site:" + url)
	return "Opening " + url, nil
}

func (s *stubSkills) Screenshot(context.Context) (string, error) {
	s.record("screenshot")
	return "Screenshot saved", nil
}

func (s *stubSkills) SystemInfo(context.Context) (string, error) {
	s.record("system_info")
	return "System: linux", nil
}

func (s *stubSkills) Create(_ context.Context, text, timeText string) (string, error) {
	s.record("reminder:" + text + "|" + timeText)
	if timeText == "" {
		return "I've noted your reminder: '" + text + "'", nil
	}
	return "I'll remind you: '" + text + "' at " + timeText, nil
}

func (s *stubSkills) skills() Skills {
	return Skills{
		Clock:        s,
		Weather:      s,
		Encyclopedia: s,
		WebSearch:    s,
		Headlines:    s,
		Movies:       s,
		Jokes:        s,
		Advisor:      s,
		Knowledge:    s,
		Desktop:      s,
		Reminders:    s,
	}
}

func TestDefaultRules_Routing(t *testing.T) {
	tests := []struct {
		in   string
		rule string
		call string
	}{
		{"what time is it", "time", "time"},
		{"What is the time?", "time", "time"},
		{"what day is it", "date", "date"},
		{"weather in Paris", "weather", "weather:Paris"},
		{"what's the weather in New Delhi", "weather", "weather:New Delhi"},
		{"search for Alan Turing on wikipedia", "wikipedia", "wikipedia:Alan Turing"},
		{"wikipedia black holes", "wikipedia", "wikipedia:black holes"},
		{"search for golang on google", "web_search", "search:search for golang on google"},
		{"search web for cheap flights", "web_search", "search:search web for cheap flights"},
		{"play Bohemian Rhapsody on youtube", "youtube", "youtube:Bohemian Rhapsody"},
		{"get news", "news", "news"},
		{"what's the headlines", "news", "news"},
		{"tell me about the movie Inception", "movie", "movie:Inception"},
		{"movie info on The Matrix", "movie", "movie:The Matrix"},
		{"tell me a joke", "joke", "joke"},
		{"make me laugh", "joke", "joke"},
		{"give me some advice", "advice", "advice"},
		{"what is my ip address", "ip", "ip"},
		{"open notepad", "open", "open_app:notepad"},
		{"open github.com", "open", "open_site:github.com"},
		{"close chrome", "close", "close_app:chrome"},
		{"take a screenshot", "screenshot", "screenshot"},
		{"show system information", "system_info", "system_info"},
		{"what are my computer specs", "system_info", "system_info"},
		{"remind me to call mom at 5 pm", "reminder", "reminder:call mom|5 pm"},
		{"remind me to water the plants", "reminder", "reminder:water the plants|"},
		{"set a reminder for the dentist at noon", "reminder", "reminder:the dentist|noon"},
		{"remind me to meet anna at the station at 5 pm", "reminder", "reminder:meet anna at the station|5 pm"},
		{"who wrote Hamlet", "question", "ask:who wrote Hamlet"},
		{"calculate 2 + 2", "calculate", "ask:2 + 2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			stub := &stubSkills{}
			d, err := New(stub.skills(), nil, nil)
			require.NoError(t, err)

			out := d.Resolve(context.Background(), tt.in)
			assert.Equal(t, KindRule, out.Kind)
			assert.Equal(t, tt.rule, out.Rule)
			require.Len(t, stub.calls, 1)
			assert.Equal(t, tt.call, stub.calls[0])
		})
	}
}

func TestDefaultRules_OpenCloseNeedWholeWord(t *testing.T) {
	for _, in := range []string{"disclose the budget", "reopen the file"} {
		t.Run(in, func(t *testing.T) {
			stub := &stubSkills{}
			d, err := New(stub.skills(), nil, nil)
			require.NoError(t, err)

			out := d.Resolve(context.Background(), in)
			assert.Equal(t, KindFallback, out.Kind)
			assert.Equal(t, []string{"ask:" + in}, stub.calls)
		})
	}
}

func TestDefaultRules_WeatherReturnedUnmodified(t *testing.T) {
	stub := &stubSkills{}
	d, err := New(stub.skills(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "The weather in Paris is clear sky.", d.Dispatch(context.Background(), "weather in Paris"))
}

func TestDefaultRules_Reminders(t *testing.T) {
	stub := &stubSkills{}
	d, err := New(stub.skills(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "I'll remind you: 'call mom' at 5 pm", d.Dispatch(context.Background(), "remind me to call mom at 5 pm"))
	assert.Equal(t, "I've noted your reminder: 'stretch'", d.Dispatch(context.Background(), "remind me to stretch"))
}

func TestDefaultRules_FallbackUsesKnowledge(t *testing.T) {
	stub := &stubSkills{}
	d, err := New(stub.skills(), nil, nil)
	require.NoError(t, err)

	out := d.Resolve(context.Background(), "Xyzzy Plugh")
	assert.Equal(t, KindFallback, out.Kind)
	assert.Equal(t, "answer", out.Response)
	assert.Equal(t, []string{"ask:xyzzy plugh"}, stub.calls)
}

func TestDefaultRules_MissingSkills(t *testing.T) {
	d, err := New(Skills{}, nil, nil)
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"weather in Paris", failure.Text(failure.New(failure.NotConfigured, "weather", nil))},
		{"get news", "News API key is not configured."},
		{"tell me about the movie Heat", "TMDB API key is not configured."},
		{"what time is it", failure.Text(failure.New(failure.NotConfigured, "clock", nil))},
		{"xyzzy plugh", Apology("xyzzy plugh")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Dispatch(context.Background(), tt.in))
		})
	}
}

type failingKnowledge struct{ calls int }

func (f *failingKnowledge) Ask(context.Context, string) (string, error) {
	f.calls++
	return "", failure.New(failure.Unavailable, "knowledge", errors.New("503"))
}

func TestDefaultRules_FallbackFailure(t *testing.T) {
	k := &failingKnowledge{}
	d, err := New(Skills{Knowledge: k}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "I'm not sure how to help with 'xyzzy plugh'. Can you please try again?", d.Dispatch(context.Background(), "xyzzy plugh"))
	assert.Equal(t, 1, k.calls)
}

func TestDefaultRules_NarrowBeforeQuestion(t *testing.T) {
	rules := DefaultRules(Skills{})
	index := map[string]int{}
	for i, r := range rules {
		if _, ok := index[r.Name]; !ok {
			index[r.Name] = i
		}
	}

	for _, name := range []string{"time", "date", "weather", "movie", "ip", "reminder"} {
		assert.Less(t, index[name], index["question"], name)
	}
}

func TestSplitTimeClause(t *testing.T) {
	tests := []struct {
		in, text, at string
	}{
		{"call mom at 5 pm", "call mom", "5 pm"},
		{"meet Anna at the station at 5 pm", "meet Anna at the station", "5 pm"},
		{"look AT the stars", "look", "the stars"},
		{"water the plants", "water the plants", ""},
		{"eat", "eat", ""},
		{"at noon", "at noon", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			text, at := SplitTimeClause(tt.in)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.at, at)
		})
	}
}

func TestClassifyOpenTarget(t *testing.T) {
	tests := []struct {
		target string
		kind   OpenKind
		want   string
	}{
		{"notepad", OpenApplication, "notepad"},
		{"notepad.com", OpenWebsite, "notepad.com"},
		{"Visual Studio Code", OpenApplication, "visual studio code"},
		{"python.org", OpenWebsite, "python.org"},
		{"golang.io", OpenWebsite, "golang.io"},
		{"youtube website", OpenWebsite, "youtube"},
		{"the bbc site", OpenWebsite, "the bbc"},
		{"mit.edu", OpenWebsite, "mit.edu"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			kind, target := ClassifyOpenTarget(tt.target)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.want, target)
		})
	}
}
