package smtp

import (
	"errors"
	smtpPkg "net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	addr string
	from string
	to   []string
	msg  string
	err  error
}

func (c *capture) send(addr string, _ smtpPkg.Auth, from string, to []string, msg []byte) error {
	c.addr, c.from, c.to, c.msg = addr, from, to, string(msg)
	return c.err
}

func TestSend(t *testing.T) {
	c := &capture{}
	s := &smtp{mail: "bot@example.com", addr: "smtp.example.com:587", send: c.send}

	err := s.Send("Jane <jane@example.com>", "Hello\r\nBcc: evil@example.com", "Dinner at eight.")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", c.addr)
	assert.Equal(t, "bot@example.com", c.from)
	assert.Equal(t, []string{"jane@example.com"}, c.to)
	assert.Contains(t, c.msg, "To: jane@example.com\r\n")
	assert.Contains(t, c.msg, "Subject: Hello  Bcc: evil@example.com\r\n")
	assert.Contains(t, c.msg, "\r\n\r\nDinner at eight.")
}

func TestSend_Errors(t *testing.T) {
	s := &smtp{send: (&capture{}).send}
	assert.ErrorIs(t, s.Send("jane@example.com", "s", "b"), ErrNotConfigured)

	s = &smtp{mail: "bot@example.com", send: (&capture{}).send}
	assert.Error(t, s.Send("not an address", "s", "b"))

	boom := errors.New("connection refused")
	s = &smtp{mail: "bot@example.com", send: (&capture{err: boom}).send}
	assert.ErrorIs(t, s.Send("jane@example.com", "s", "b"), boom)
}
