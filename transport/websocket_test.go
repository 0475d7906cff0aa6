package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"devconnect/domain"
	"devconnect/mocks"
	"devconnect/runtime"
	"devconnect/services"
)

func newSocketServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := slog.Default()
	registry := runtime.NewRegistry()

	repo := mocks.NewMockIMessageRepository(ctrl)
	buffer := mocks.NewMockMessageBuffer(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)
	cache := mocks.NewMockPresenceCache(ctrl)

	// Durable store accepts everything, cache and broker stay quiet
	repo.EXPECT().StoreMessage(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	buffer.EXPECT().RecentMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, false).AnyTimes()
	buffer.EXPECT().SetRecentMessages(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true).AnyTimes()
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true).AnyTimes()
	cache.EXPECT().SetPresence(gomock.Any(), gomock.Any(), gomock.Any()).Return(true).AnyTimes()
	cache.EXPECT().DeletePresence(gomock.Any(), gomock.Any()).Return(true).AnyTimes()
	cache.EXPECT().HasPresence(gomock.Any(), gomock.Any()).Return(false).AnyTimes()

	messaging := services.NewMessagingService(repo, buffer, publisher, registry, log, time.Second)
	presence := services.NewPresenceService(registry, cache, publisher, log)
	counter := mocks.NewMockRateCounter(ctrl)
	connections := services.NewConnectionService(counter, publisher, nil, log)
	ws := NewWebSocketHandler(presence, messaging, registry, log)

	server := httptest.NewServer(Routes(NewHandler(messaging, connections), ws))
	t.Cleanup(server.Close)
	return server
}

func dialSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "test done") })
	return conn
}

func sendFrame(t *testing.T, conn *websocket.Conn, frame map[string]any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	data, err := json.Marshal(frame)
	require.NoError(t, err)
	require.NoError(t, conn.Write(ctx, websocket.MessageText, data))
}

// readFrameOfType skips unrelated frames (presence broadcasts interleave
// with everything) until one of the wanted type arrives.
func readFrameOfType(t *testing.T, conn *websocket.Conn, frameType string) map[string]any {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	for {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		var frame map[string]any
		require.NoError(t, json.Unmarshal(data, &frame))
		if frame["type"] == frameType {
			return frame
		}
	}
}

func TestWebSocket_Register_Broadcasts_Presence(t *testing.T) {
	req := require.New(t)
	server := newSocketServer(t)
	conn := dialSocket(t, server)

	sendFrame(t, conn, map[string]any{"type": "register", "userId": "alice"})

	frame := readFrameOfType(t, conn, "presence")
	req.Equal("alice", frame["userId"])
	req.Equal(true, frame["online"])
}

func TestWebSocket_Private_Message_Reaches_Both_Parties(t *testing.T) {
	req := require.New(t)
	server := newSocketServer(t)
	alice := dialSocket(t, server)
	bob := dialSocket(t, server)

	sendFrame(t, alice, map[string]any{"type": "register", "userId": "alice"})
	readFrameOfType(t, alice, "presence")
	sendFrame(t, bob, map[string]any{"type": "register", "userId": "bob"})
	readFrameOfType(t, bob, "presence")

	sendFrame(t, alice, map[string]any{
		"type":       "private-message",
		"fromUserId": "alice",
		"toUserId":   "bob",
		"message":    "hello bob",
	})

	got := readFrameOfType(t, bob, "private-message")
	req.Equal("hello bob", got["message"])
	req.Equal("alice", got["fromUserId"])

	echo := readFrameOfType(t, alice, "private-message")
	req.Equal("hello bob", echo["message"])
}

func TestWebSocket_Presence_Query(t *testing.T) {
	req := require.New(t)
	server := newSocketServer(t)
	alice := dialSocket(t, server)
	watcher := dialSocket(t, server)

	sendFrame(t, alice, map[string]any{"type": "register", "userId": "alice"})
	readFrameOfType(t, alice, "presence")

	sendFrame(t, watcher, map[string]any{"type": "presence:query", "userId": "alice"})
	state := readFrameOfType(t, watcher, "presence:state")
	req.Equal("alice", state["userId"])
	req.Equal(true, state["online"])

	sendFrame(t, watcher, map[string]any{"type": "presence:query", "userId": "nobody"})
	state = readFrameOfType(t, watcher, "presence:state")
	req.Equal(false, state["online"])
}

func TestWebSocket_Invalid_Message_Returns_Error_Frame(t *testing.T) {
	req := require.New(t)
	server := newSocketServer(t)
	conn := dialSocket(t, server)

	sendFrame(t, conn, map[string]any{"type": "register", "userId": "alice"})
	readFrameOfType(t, conn, "presence")

	// Self messages are rejected by the domain
	sendFrame(t, conn, map[string]any{
		"type":       "private-message",
		"fromUserId": "alice",
		"toUserId":   "alice",
		"message":    "note to self",
	})
	frame := readFrameOfType(t, conn, "error")
	req.NotEmpty(frame["reason"])
}

// sendRawFrame writes a pre-built JSON payload as one text frame, for
// inputs a client would send with \uXXXX escaping.
func sendRawFrame(t *testing.T, conn *websocket.Conn, payload string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(payload)))
}

func escapedMessageFrame(from, to string, runes int) string {
	// One astral-plane rune is 12 bytes on the wire when escaped, so a
	// maximum-length message far exceeds the library's default read limit.
	return `{"type":"private-message","fromUserId":"` + from +
		`","toUserId":"` + to +
		`","message":"` + strings.Repeat(`𝄞`, runes) + `"}`
}

func TestWebSocket_Heavily_Escaped_Oversized_Text_Gets_Error_Frame(t *testing.T) {
	req := require.New(t)
	server := newSocketServer(t)
	conn := dialSocket(t, server)

	sendFrame(t, conn, map[string]any{"type": "register", "userId": "alice"})
	readFrameOfType(t, conn, "presence")

	// One rune past the text limit, about 60 KB on the wire
	sendRawFrame(t, conn, escapedMessageFrame("alice", "bob", domain.MaxTextLength+1))

	// The connection survives and the sender gets a validation error back
	frame := readFrameOfType(t, conn, "error")
	req.NotEmpty(frame["reason"])

	sendFrame(t, conn, map[string]any{"type": "ping"})
	readFrameOfType(t, conn, "pong")
}

func TestWebSocket_Heavily_Escaped_Max_Length_Text_Is_Delivered(t *testing.T) {
	req := require.New(t)
	server := newSocketServer(t)
	conn := dialSocket(t, server)

	sendFrame(t, conn, map[string]any{"type": "register", "userId": "alice"})
	readFrameOfType(t, conn, "presence")

	sendRawFrame(t, conn, escapedMessageFrame("alice", "bob", domain.MaxTextLength))

	// The sender's echo proves the frame cleared the read limit
	echo := readFrameOfType(t, conn, "private-message")
	req.Len([]rune(echo["message"].(string)), domain.MaxTextLength)
}

func TestWebSocket_Ping_Pong(t *testing.T) {
	server := newSocketServer(t)
	conn := dialSocket(t, server)

	sendFrame(t, conn, map[string]any{"type": "ping"})
	readFrameOfType(t, conn, "pong")
}

func TestWebSocket_Register_Without_User_Is_Rejected(t *testing.T) {
	req := require.New(t)
	server := newSocketServer(t)
	conn := dialSocket(t, server)

	sendFrame(t, conn, map[string]any{"type": "register"})
	frame := readFrameOfType(t, conn, "error")
	req.Equal("userId required", frame["reason"])
}

func TestSession_Deliver_Drops_When_Buffer_Full(t *testing.T) {
	req := require.New(t)
	sess := newSession("s1", nil, slog.Default())
	ctx := context.Background()

	// No writer goroutine is draining, so the buffer fills up
	for i := 0; i < outboundBuffer; i++ {
		req.NoError(sess.Deliver(ctx, domain.Message{}))
	}
	req.Error(sess.Deliver(ctx, domain.Message{}))
}
