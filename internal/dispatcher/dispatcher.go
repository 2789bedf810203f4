// Package dispatcher maps a free-text utterance to exactly one response.
//
// A Dispatcher owns two short-circuit pattern sets (greetings and exits) and an
// ordered rule table. The first rule whose pattern matches anywhere in the
// normalized utterance handles it; when nothing matches, the fallback answers.
// The table is immutable once built, so a Dispatcher is safe for concurrent use.
package dispatcher

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	contextPkg "talksy/pkg/context"
	"talksy/pkg/failure"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"
)

const (
	NoCommandReply = "I didn't receive a command."
	GreetingReply  = "Hello! How can I help you today?"
	FarewellReply  = "Goodbye! Have a nice day!"
)

// Kind tells how an utterance was resolved.
type Kind string

const (
	KindEmpty    Kind = "empty"
	KindGreeting Kind = "greeting"
	KindExit     Kind = "exit"
	KindRule     Kind = "rule"
	KindFallback Kind = "fallback"
	KindApology  Kind = "apology"
)

// Handler builds a response from a rule match. A returned error is rendered
// with failure.Text at the dispatch boundary.
type Handler func(ctx context.Context, m Match) (string, error)

// Fallback answers utterances no rule matched.
type Fallback func(ctx context.Context, utterance string) (string, error)

// Observer is notified once per resolved utterance.
type Observer func(o Outcome, elapsed time.Duration)

// Rule is one entry of the ordered table.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Handler Handler
}

// NewRule compiles pattern into a Rule.
func NewRule(name, pattern string, h Handler) (Rule, error) {
	if h == nil {
		return Rule{}, fmt.Errorf("rule %q: nil handler", name)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", name, err)
	}
	return Rule{Name: name, Pattern: re, Handler: h}, nil
}

// MustRule is NewRule that panics on an invalid pattern.
func MustRule(name, pattern string, h Handler) Rule {
	r, err := NewRule(name, pattern, h)
	if err != nil {
		panic(err)
	}
	return r
}

// Match carries the captures of a rule pattern. Captures come from the
// original casing of the utterance whenever lowercasing kept byte offsets.
type Match struct {
	Utterance string
	Text      string
	groups    []string
	present   []bool
}

// Group returns capture i (0 is the whole match). Missing groups are "".
func (m Match) Group(i int) string {
	if i == 0 {
		return m.Text
	}
	if i < 1 || i > len(m.groups) {
		return ""
	}
	return m.groups[i-1]
}

// Has reports whether capture i participated in the match.
func (m Match) Has(i int) bool {
	if i == 0 {
		return true
	}
	if i < 1 || i > len(m.present) {
		return false
	}
	return m.present[i-1]
}

// NumGroups is the number of capture groups of the pattern.
func (m Match) NumGroups() int {
	return len(m.groups)
}

// Outcome is the full result of resolving one utterance.
type Outcome struct {
	Utterance string
	Response  string
	Kind      Kind
	Rule      string
}

type Dispatcher struct {
	greetings []*regexp.Regexp
	exits     []*regexp.Regexp
	rules     []Rule
	fallback  Fallback
	observer  Observer
	log       *logrus.Logger
}

// Dispatch returns the response for utterance. It never fails.
func (d *Dispatcher) Dispatch(ctx context.Context, utterance string) string {
	return d.Resolve(ctx, utterance).Response
}

// Resolve is Dispatch with the resolution details kept.
func (d *Dispatcher) Resolve(ctx context.Context, utterance string) Outcome {
	start := time.Now()
	out := d.resolve(ctx, utterance)

	d.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"kind":       out.Kind,
		"rule":       out.Rule,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("Utterance dispatched")

	if d.observer != nil {
		d.observer(out, time.Since(start))
	}
	return out
}

// Rules returns a copy of the rule table in priority order.
func (d *Dispatcher) Rules() []Rule {
	rules := make([]Rule, len(d.rules))
	copy(rules, d.rules)
	return rules
}

func (d *Dispatcher) resolve(ctx context.Context, utterance string) Outcome {
	if strings.TrimSpace(utterance) == "" {
		return Outcome{Response: NoCommandReply, Kind: KindEmpty}
	}

	original, normalized := Normalize(utterance)

	for _, re := range d.greetings {
		if re.MatchString(normalized) {
			return Outcome{Utterance: normalized, Response: GreetingReply, Kind: KindGreeting}
		}
	}

	for _, re := range d.exits {
		if re.MatchString(normalized) {
			return Outcome{Utterance: normalized, Response: FarewellReply, Kind: KindExit}
		}
	}

	for _, rule := range d.rules {
		loc := rule.Pattern.FindStringSubmatchIndex(normalized)
		if loc == nil {
			continue
		}

		m := newMatch(original, normalized, loc)
		resp := d.runHandler(ctx, rule, m)
		return Outcome{Utterance: normalized, Response: resp, Kind: KindRule, Rule: rule.Name}
	}

	if resp, ok := d.runFallback(ctx, normalized); ok {
		return Outcome{Utterance: normalized, Response: resp, Kind: KindFallback}
	}

	return Outcome{Utterance: normalized, Response: Apology(normalized), Kind: KindApology}
}

func (d *Dispatcher) runHandler(ctx context.Context, rule Rule, m Match) (resp string) {
	defer func() {
		if r := recover(); r != nil {
			d.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"rule":       rule.Name,
				"panic":      fmt.Sprint(r),
			}).Error("Rule handler panicked")
			resp = Apology(m.Utterance)
		}
	}()

	resp, err := rule.Handler(ctx, m)
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"rule":       rule.Name,
			"error":      err.Error(),
		}).Warn("Rule handler failed")
		return failure.Text(err)
	}
	if strings.TrimSpace(resp) == "" {
		return Apology(m.Utterance)
	}
	return resp
}

func (d *Dispatcher) runFallback(ctx context.Context, utterance string) (resp string, ok bool) {
	if d.fallback == nil {
		return "", false
	}

	defer func() {
		if r := recover(); r != nil {
			d.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"panic":      fmt.Sprint(r),
			}).Error("Fallback panicked")
			resp, ok = "", false
		}
	}()

	resp, err := d.fallback(ctx, utterance)
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Fallback failed")
		return "", false
	}
	if strings.TrimSpace(resp) == "" {
		return "", false
	}
	return resp, true
}

// Apology is the reply for an utterance nothing could answer.
func Apology(utterance string) string {
	return fmt.Sprintf("I'm not sure how to help with '%s'. Can you please try again?", utterance)
}

// Normalize returns the trimmed original text and its lowercased form.
func Normalize(utterance string) (original, normalized string) {
	original = strings.TrimSpace(norm.NFC.String(utterance))
	normalized = strings.ToLower(original)
	return original, normalized
}

func newMatch(original, normalized string, loc []int) Match {
	source := normalized
	if sameRuneWidths(original, normalized) {
		source = original
	}

	n := len(loc)/2 - 1
	m := Match{
		Utterance: normalized,
		Text:      source[loc[0]:loc[1]],
		groups:    make([]string, n),
		present:   make([]bool, n),
	}
	for i := 0; i < n; i++ {
		start, end := loc[2*(i+1)], loc[2*(i+1)+1]
		if start < 0 {
			continue
		}
		m.groups[i] = source[start:end]
		m.present[i] = true
	}
	return m
}

// sameRuneWidths reports whether a and b encode rune for rune in the same
// number of bytes, so byte offsets found in one are valid in the other.
func sameRuneWidths(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for len(a) > 0 {
		_, na := utf8.DecodeRuneInString(a)
		_, nb := utf8.DecodeRuneInString(b)
		if na != nb {
			return false
		}
		a, b = a[na:], b[nb:]
	}
	return true
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
