package ws

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"notifyhub_backend/internal/logger"
)

// IncomingMessage is the frame clients send: a join/leave action plus its
// payload.
type IncomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type roomPayload struct {
	UserID uint `json:"user_id"`
}

type Client struct {
	ID      string
	Conn    *websocket.Conn
	Send    chan any
	Manager *RoomManager
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.Disconnect(c)
		c.Conn.Close()
	}()

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", "client", c.ID, "error", err)
			}
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.Warn("Failed to parse ws message", "client", c.ID, "error", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	for msg := range c.Send {
		if err := c.Conn.WriteJSON(msg); err != nil {
			logger.Warn("WebSocket write error", "client", c.ID, "error", err)
			break
		}
	}
}

func (c *Client) handleMessage(msg IncomingMessage) {
	switch msg.Action {

	case "join":
		var payload roomPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.UserID == 0 {
			logger.Warn("Invalid join payload", "client", c.ID)
			return
		}
		c.Manager.JoinRoom(c, payload.UserID)

	case "leave":
		var payload roomPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.UserID == 0 {
			logger.Warn("Invalid leave payload", "client", c.ID)
			return
		}
		c.Manager.LeaveRoom(c, payload.UserID)

	default:
		logger.Debug("Unhandled ws action", "client", c.ID, "action", msg.Action)
	}
}
