package realtime

import (
	"time"

	"github.com/gofiber/websocket/v2"
)

const writeWait = 10 * time.Second

// WebSocketConn is the write side of a panel connection.
type WebSocketConn struct {
	Conn *websocket.Conn
}

func NewWebSocketConn(c *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}

func (w *WebSocketConn) WriteText(msg []byte) error {
	_ = w.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.Conn.WriteMessage(websocket.TextMessage, msg)
}

func (w *WebSocketConn) Ping() error {
	return w.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Pump writes everything queued on client.Send and pings every interval until
// the channel is closed or a write fails.
func Pump(client *Client, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return nil
			}
			if err := client.Conn.WriteText(msg); err != nil {
				return err
			}
		case <-ticker.C:
			if err := client.Conn.Ping(); err != nil {
				return err
			}
		}
	}
}
