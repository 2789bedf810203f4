package dispatcher

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
)

// Builder assembles a Dispatcher. Rules keep the order they were added in.
type Builder struct {
	greetings []*regexp.Regexp
	exits     []*regexp.Regexp
	rules     []Rule
	fallback  Fallback
	observer  Observer
	log       *logrus.Logger
	errs      []error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Greeting adds short-circuit patterns matched at the start of the utterance.
func (b *Builder) Greeting(patterns ...string) *Builder {
	b.greetings = append(b.greetings, b.compileAnchored("greeting", patterns)...)
	return b
}

// Exit adds farewell patterns matched at the start of the utterance.
func (b *Builder) Exit(patterns ...string) *Builder {
	b.exits = append(b.exits, b.compileAnchored("exit", patterns)...)
	return b
}

// Rule appends a rule after the ones already added.
func (b *Builder) Rule(name, pattern string, h Handler) *Builder {
	r, err := NewRule(name, pattern, h)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.rules = append(b.rules, r)
	return b
}

// Rules appends precompiled rules in order.
func (b *Builder) Rules(rules ...Rule) *Builder {
	for _, r := range rules {
		if r.Pattern == nil || r.Handler == nil {
			b.errs = append(b.errs, fmt.Errorf("rule %q: missing pattern or handler", r.Name))
			continue
		}
		b.rules = append(b.rules, r)
	}
	return b
}

func (b *Builder) Fallback(f Fallback) *Builder {
	b.fallback = f
	return b
}

func (b *Builder) Observe(o Observer) *Builder {
	b.observer = o
	return b
}

func (b *Builder) WithLogger(l *logrus.Logger) *Builder {
	b.log = l
	return b
}

func (b *Builder) Build() (*Dispatcher, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("failed to build dispatcher: %w", errors.Join(b.errs...))
	}

	logger := b.log
	if logger == nil {
		logger = discardLogger()
	}

	d := &Dispatcher{
		greetings: append([]*regexp.Regexp(nil), b.greetings...),
		exits:     append([]*regexp.Regexp(nil), b.exits...),
		rules:     append([]Rule(nil), b.rules...),
		fallback:  b.fallback,
		observer:  b.observer,
		log:       logger,
	}
	return d, nil
}

func (b *Builder) compileAnchored(kind string, patterns []string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)`)
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("%s pattern %q: %w", kind, p, err))
			continue
		}
		out = append(out, re)
	}
	return out
}
