// Package failure is the result type collaborators use to report why a lookup
// did not produce an answer. Reasons stay data until Text renders them.
package failure

import (
	"errors"
	"fmt"
	"strings"
)

type Reason string

const (
	NotConfigured Reason = "not_configured"
	Upstream      Reason = "upstream"
	NotFound      Reason = "not_found"
	Unavailable   Reason = "unavailable"
	InvalidInput  Reason = "invalid_input"
)

// Failure describes a collaborator failure. Op names the capability
// ("weather", "news", ...), Subject the thing that was looked up.
type Failure struct {
	Reason  Reason
	Op      string
	Subject string
	Err     error
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s: %s", f.Op, f.Reason)
	if f.Subject != "" {
		msg += fmt.Sprintf(" (%s)", f.Subject)
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func New(reason Reason, op string, err error) *Failure {
	return &Failure{Reason: reason, Op: op, Err: err}
}

func NewWithSubject(reason Reason, op, subject string, err error) *Failure {
	return &Failure{Reason: reason, Op: op, Subject: subject, Err: err}
}

func Is(err error, reason Reason) bool {
	var f *Failure
	if !errors.As(err, &f) {
		return false
	}
	return f.Reason == reason
}

var opLabels = map[string]string{
	"weather":     "weather data",
	"wikipedia":   "Wikipedia",
	"web_search":  "the web",
	"youtube":     "YouTube",
	"news":        "the news",
	"movie":       "movie information",
	"joke":        "a joke",
	"advice":      "advice",
	"ip":          "your IP address",
	"knowledge":   "an answer",
	"open_app":    "the application",
	"close_app":   "the application",
	"website":     "the website",
	"screenshot":  "a screenshot",
	"system_info": "system information",
	"reminder":    "the reminder",
}

var configLabels = map[string]string{
	"weather":   "Weather API key",
	"news":      "News API key",
	"movie":     "TMDB API key",
	"knowledge": "Knowledge API key",
}

// Host actions read as "I couldn't <action>" rather than as lookups.
var actionLabels = map[string]string{
	"open_app":   "open %s",
	"close_app":  "close %s",
	"website":    "open %s",
	"screenshot": "take a screenshot",
}

func actionText(f *Failure) (string, bool) {
	verb, ok := actionLabels[f.Op]
	if !ok {
		return "", false
	}
	if strings.Contains(verb, "%s") {
		verb = fmt.Sprintf(verb, f.Subject)
	}

	switch f.Reason {
	case NotFound:
		if f.Op == "close_app" {
			return fmt.Sprintf("Could not find %s running", f.Subject), true
		}
		return fmt.Sprintf("I couldn't find %s.", f.Subject), true
	case Upstream, Unavailable:
		if f.Err != nil {
			return fmt.Sprintf("I couldn't %s: %s", verb, f.Err.Error()), true
		}
		return fmt.Sprintf("I couldn't %s.", verb), true
	}
	return "", false
}

// Text renders err as the sentence a user hears.
func Text(err error) string {
	if err == nil {
		return ""
	}

	var f *Failure
	if !errors.As(err, &f) {
		return fmt.Sprintf("Something went wrong: %s", err.Error())
	}

	if text, ok := actionText(f); ok {
		return text
	}

	label, ok := opLabels[f.Op]
	if !ok {
		label = f.Op
	}

	switch f.Reason {
	case NotConfigured:
		if cfg, ok := configLabels[f.Op]; ok {
			return cfg + " is not configured."
		}
		return fmt.Sprintf("I'm not set up to get %s yet.", label)
	case NotFound:
		if f.Subject != "" {
			return fmt.Sprintf("No information found for '%s'.", f.Subject)
		}
		return fmt.Sprintf("I couldn't find %s.", label)
	case InvalidInput:
		if f.Subject != "" {
			return fmt.Sprintf("I couldn't understand '%s'.", f.Subject)
		}
		return "I couldn't understand that request."
	case Unavailable:
		return fmt.Sprintf("I couldn't get %s right now. Please try again later.", label)
	default:
		if f.Err != nil {
			return fmt.Sprintf("An error occurred while getting %s: %s", label, f.Err.Error())
		}
		return fmt.Sprintf("An error occurred while getting %s.", label)
	}
}
