package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"talksy/internal/dispatcher"
	jwtPkg "talksy/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(seen *[]string) answerFunc {
	return func(_ context.Context, u string) (string, bool, error) {
		*seen = append(*seen, u)
		return "you said " + u, u == "bye", nil
	}
}

func TestRunREPL_StopsOnExit(t *testing.T) {
	var seen []string
	out := &bytes.Buffer{}

	err := runREPL(context.Background(), strings.NewReader("hello\n\n  what time is it \nbye\nnever read\n"), out, echo(&seen))
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "what time is it", "bye"}, seen)
	assert.Contains(t, out.String(), "you said what time is it\n")
}

func TestRunREPL_EndOfInput(t *testing.T) {
	var seen []string
	err := runREPL(context.Background(), strings.NewReader("hello"), &bytes.Buffer{}, echo(&seen))
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, seen)
}

func TestRunREPL_AnswerError(t *testing.T) {
	boom := errors.New("connection closed")
	err := runREPL(context.Background(), strings.NewReader("hello\n"), &bytes.Buffer{}, func(context.Context, string) (string, bool, error) {
		return "", false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestLocalAnswer(t *testing.T) {
	d, err := dispatcher.New(dispatcher.Skills{}, nil, nil)
	require.NoError(t, err)
	answer := localAnswer(d)

	reply, done, err := answer(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, dispatcher.GreetingReply, reply)
	assert.False(t, done)

	reply, done, err = answer(context.Background(), "goodbye")
	require.NoError(t, err)
	assert.Equal(t, dispatcher.FarewellReply, reply)
	assert.True(t, done)
}

func TestTokenCmd(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")

	cmd := newTokenCmd()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--username", "ops", "--ttl", time.Hour.String()})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 3, len(strings.Split(strings.TrimSpace(out.String()), ".")))
	assert.Contains(t, errOut.String(), "expires at")
}
