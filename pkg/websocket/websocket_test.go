package websocketPkg

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talksy/internal/api/assistant"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistantServer(t *testing.T) string {
	t.Helper()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			command := string(msg)
			reply := assistant.SocketReply{Command: command, Response: "reply to " + command, Exit: command == "bye"}
			if err := conn.WriteJSON(reply); err != nil || reply.Exit {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestAsk(t *testing.T) {
	client := NewAssistantClient(newAssistantServer(t), quietLogger())
	defer client.CloseConnections()

	assert.False(t, client.IsConnected())

	reply, err := client.Ask(context.Background(), "what time is it")
	require.NoError(t, err)
	assert.Equal(t, "reply to what time is it", reply.Response)
	assert.True(t, client.IsConnected())

	reply, err = client.Ask(context.Background(), "bye")
	require.NoError(t, err)
	assert.True(t, reply.Exit)
	assert.False(t, client.IsConnected())

	reply, err = client.Ask(context.Background(), "hello again")
	require.NoError(t, err)
	assert.Equal(t, "reply to hello again", reply.Response)
}

func TestAsk_Unreachable(t *testing.T) {
	client := NewAssistantClient("ws://127.0.0.1:1/assistant/ws", quietLogger())

	_, err := client.Ask(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConnected)

	assert.Error(t, NewAssistantClient("", quietLogger()).Reconnect())
}
