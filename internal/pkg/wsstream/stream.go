// Package wsstream pushes a reactive read model to a websocket client.
package wsstream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"moviehub/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Event is one message sent to the client.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Serve upgrades the request and sends one Event of eventType for every
// value of the stream opened by subscribe. It returns when the client goes
// away; when the stream ends the connection is closed.
func Serve[T any](c *gin.Context, eventType string, subscribe func(ctx context.Context) <-chan T, payload func(T) any) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "path", c.FullPath(), "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	go writePump(ctx, cancel, conn, eventType, subscribe(ctx), payload)
	readPump(cancel, conn)
}

// readPump only watches for the client going away; incoming messages are
// ignored.
func readPump(cancel context.CancelFunc, conn *websocket.Conn) {
	defer cancel()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump[T any](ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, eventType string, updates <-chan T, payload func(T) any) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		conn.Close()
	}()

	for {
		select {
		case v, ok := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			msg, err := json.Marshal(Event{Type: eventType, Payload: payload(v)})
			if err != nil {
				logger.Error("websocket encode failed", "event", eventType, "error", err)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
