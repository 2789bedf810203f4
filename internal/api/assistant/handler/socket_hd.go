package assistantHandler

import (
	"context"
	"strings"
	"time"

	"talksy/internal/api/assistant"
	"talksy/internal/dispatcher"
	"talksy/internal/entity"
	"talksy/internal/metrics"
	contextPkg "talksy/pkg/context"
	"talksy/pkg/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func (h *AssistantHandler) upgradeOnly(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		ctx.Locals("request_id", h.middleware.GetRequestID(ctx))
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Socket handles one websocket conversation. Each text frame is one command;
// frames are answered in order. An exit command closes the connection after
// the farewell is sent.
func (h *AssistantHandler) Socket(conn *websocket.Conn) {
	requestID, _ := conn.Locals("request_id").(string)
	base := contextPkg.WithRequestID(context.Background(), requestID)

	metrics.ActiveSockets.Inc()
	defer metrics.ActiveSockets.Dec()

	h.log.WithFields(log.Fields{"request_id": requestID}).Info("Assistant websocket opened")
	defer h.log.WithFields(log.Fields{"request_id": requestID}).Info("Assistant websocket closed")

	for {
		messageType, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		command := strings.TrimSpace(string(msg))
		c, cancel := context.WithTimeout(base, 30*time.Second)
		res, err := h.assistantService.ProcessText(c, entity.CommandSourceSocket, command)
		cancel()

		reply := assistant.SocketReply{Command: command}
		if err != nil {
			reply.Response = dispatcher.Apology(command)
		} else {
			reply.Response = res.Response
			reply.Exit = res.Response == dispatcher.FarewellReply
		}

		if err := conn.WriteJSON(reply); err != nil {
			return
		}
		if reply.Exit {
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "goodbye"))
			return
		}
	}
}
