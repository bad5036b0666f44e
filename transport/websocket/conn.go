package websocket

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// connection serializes writes to one websocket; gorilla allows a single concurrent writer.
type connection struct {
	id           string
	ws           *websocket.Conn
	writeTimeout time.Duration

	writeMu sync.Mutex
}

func newConnection(ws *websocket.Conn, writeTimeout time.Duration) *connection {
	return &connection{
		id:           uuid.NewString(),
		ws:           ws,
		writeTimeout: writeTimeout,
	}
}

func (that *connection) ID() string {
	return that.id
}

// Send - writes one text frame.
func (that *connection) Send(text []byte) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.ws.SetWriteDeadline(time.Now().Add(that.writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.ws.WriteMessage(websocket.TextMessage, text); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

// Close - sends a normal close frame and closes the socket.
func (that *connection) Close() error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	closeFrame := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	deadline := time.Now().Add(that.writeTimeout)

	if err := that.ws.WriteControl(websocket.CloseMessage, closeFrame, deadline); err != nil {
		_ = that.ws.Close()
		return fmt.Errorf("failed to write close frame: %w", err)
	}

	if err := that.ws.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}
