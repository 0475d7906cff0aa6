package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/coder/websocket"
)

// outboundBuffer bounds the frames queued per session. A client that stops
// reading loses frames instead of stalling the rest of the process.
const outboundBuffer = 64

// session owns one live WebSocket connection: a buffered outbound channel
// drained by a single writer goroutine, so frames pushed by one sender are
// written in push order.
type session struct {
	id   string
	conn *websocket.Conn
	out  chan any
	log  *slog.Logger
}

func newSession(id string, conn *websocket.Conn, log *slog.Logger) *session {
	return &session{
		id:   id,
		conn: conn,
		out:  make(chan any, outboundBuffer),
		log:  log,
	}
}

// Deliver queues a frame for the writer goroutine. Delivery is
// fire-and-forget: when the session's buffer is full the frame is dropped
// and an error returned for the caller's log, nothing is retried.
func (s *session) Deliver(ctx context.Context, frame any) error {
	select {
	case s.out <- frame:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("session %s outbound buffer full, frame dropped", s.id)
	}
}

// writeLoop serializes queued frames onto the wire until the context ends
// or a write fails. It is the only goroutine writing to the connection.
func (s *session) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-s.out:
			data, err := json.Marshal(frame)
			if err != nil {
				s.log.Error("Outbound frame serialization failed", "session_id", s.id, "error", err)
				continue
			}
			if err := s.conn.Write(ctx, websocket.MessageText, data); err != nil {
				if ctx.Err() == nil {
					s.log.Debug("WebSocket write error", "session_id", s.id, "error", err)
				}
				return
			}
		}
	}
}
