package websocketPkg

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"talksy/internal/api/assistant"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var ErrNotConnected = errors.New("not connected to assistant websocket")

// IWebsocket is a client for the assistant websocket. Ask sends one command
// and waits for its reply; a dropped connection is re-dialed on the next Ask.
type IWebsocket interface {
	Ask(ctx context.Context, command string) (*assistant.SocketReply, error)
	IsConnected() bool
	Reconnect() error
	CloseConnections()
}

type webSocketClient struct {
	url          string
	log          *logrus.Logger
	conn         *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewAssistantClient(url string, log *logrus.Logger) IWebsocket {
	return &webSocketClient{
		url:          url,
		log:          log,
		pingInterval: 30 * time.Second,
		readTimeout:  45 * time.Second,
		writeTimeout: 5 * time.Second,
	}
}

func (c *webSocketClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *webSocketClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dial()
}

// dial replaces the current connection. c.mu must be held.
func (c *webSocketClient) dial() error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	if c.url == "" {
		return fmt.Errorf("assistant websocket URL not configured")
	}

	c.log.WithField("url", c.url).Debug("Connecting to assistant websocket")

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.WithError(err).Warn("Error sending pong")
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *webSocketClient) CloseConnections() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(c.writeTimeout),
		)
		c.conn.Close()
		c.conn = nil
	}
}

func (c *webSocketClient) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.WithError(err).Warn("Ping failed, marking assistant connection as dead")
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

func (c *webSocketClient) Ask(ctx context.Context, command string) (*assistant.SocketReply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		if err := c.dial(); err != nil {
			return nil, errors.Join(ErrNotConnected, err)
		}
	}
	conn := c.conn

	deadline := time.Now().Add(c.readTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return nil, c.drop(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(command)); err != nil {
		return nil, c.drop(fmt.Errorf("failed to send command: %w", err))
	}

	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, c.drop(err)
	}

	var reply assistant.SocketReply
	if err := conn.ReadJSON(&reply); err != nil {
		return nil, c.drop(fmt.Errorf("failed to read reply: %w", err))
	}

	if reply.Exit {
		c.conn = nil
		conn.Close()
	}

	return &reply, nil
}

// drop discards a broken connection. c.mu must be held.
func (c *webSocketClient) drop(err error) error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	return err
}
