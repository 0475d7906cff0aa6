package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"devconnect/domain"
	"devconnect/mocks"
	"devconnect/runtime"
	"devconnect/services"
)

type httpFixture struct {
	repo    *mocks.MockIMessageRepository
	counter *mocks.MockRateCounter
	server  *httptest.Server
}

func newHTTPFixture(t *testing.T) httpFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := slog.Default()
	registry := runtime.NewRegistry()

	repo := mocks.NewMockIMessageRepository(ctrl)
	buffer := mocks.NewMockMessageBuffer(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)
	counter := mocks.NewMockRateCounter(ctrl)
	cache := mocks.NewMockPresenceCache(ctrl)

	// Handlers tolerate a quiet publisher and buffer
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true).AnyTimes()
	buffer.EXPECT().RecentMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, false).AnyTimes()
	buffer.EXPECT().SetRecentMessages(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true).AnyTimes()

	messaging := services.NewMessagingService(repo, buffer, publisher, registry, log, time.Second)
	presence := services.NewPresenceService(registry, cache, publisher, log)
	connections := services.NewConnectionService(counter, publisher, nil, log)
	ws := NewWebSocketHandler(presence, messaging, registry, log)

	server := httptest.NewServer(Routes(NewHandler(messaging, connections), ws))
	t.Cleanup(server.Close)
	return httpFixture{repo: repo, counter: counter, server: server}
}

func TestHTTP_Healthz(t *testing.T) {
	req := require.New(t)
	f := newHTTPFixture(t)

	resp, err := http.Get(f.server.URL + "/healthz")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
}

func TestHTTP_History_Returns_Oldest_First(t *testing.T) {
	req := require.New(t)
	f := newHTTPFixture(t)

	newer, err := domain.NewMessage("alice", "bob", "newer", time.Now())
	req.NoError(err)
	older, err := domain.NewMessage("bob", "alice", "older", time.Now().Add(-time.Minute))
	req.NoError(err)

	// The repository answers newest first
	f.repo.EXPECT().
		History(gomock.Any(), "alice", "bob", services.DefaultHistoryLimit).
		Return([]domain.Message{newer, older}, nil)

	request, err := http.NewRequest(http.MethodGet, f.server.URL+"/chat/bob/history", nil)
	req.NoError(err)
	request.Header.Set("X-User-ID", "alice")

	resp, err := http.DefaultClient.Do(request)
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Data []domain.Message `json:"data"`
	}
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Len(body.Data, 2)
	req.Equal("older", body.Data[0].Text)
	req.Equal("newer", body.Data[1].Text)
}

func TestHTTP_History_Requires_Caller_Identity(t *testing.T) {
	req := require.New(t)
	f := newHTTPFixture(t)

	resp, err := http.Get(f.server.URL + "/chat/bob/history")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestHTTP_History_Rejects_Malformed_Limit(t *testing.T) {
	req := require.New(t)
	f := newHTTPFixture(t)

	request, err := http.NewRequest(http.MethodGet, f.server.URL+"/chat/bob/history?limit=lots", nil)
	req.NoError(err)
	request.Header.Set("X-User-ID", "alice")

	resp, err := http.DefaultClient.Do(request)
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestHTTP_Connection_Request_Admitted(t *testing.T) {
	req := require.New(t)
	f := newHTTPFixture(t)

	f.counter.EXPECT().
		IncrementDailyCounter(gomock.Any(), gomock.Any(), "alice", gomock.Any()).
		Return(int64(1))

	request, err := http.NewRequest(http.MethodPost, f.server.URL+"/request/send/interested/bob", nil)
	req.NoError(err)
	request.Header.Set("X-User-ID", "alice")
	request.Header.Set("X-Membership-Tier", "Silver")

	resp, err := http.DefaultClient.Do(request)
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Equal(float64(100), body["limit"])
	req.Equal(float64(1), body["used"])
}

func TestHTTP_Connection_Request_Over_Limit(t *testing.T) {
	req := require.New(t)
	f := newHTTPFixture(t)

	f.counter.EXPECT().
		IncrementDailyCounter(gomock.Any(), gomock.Any(), "alice", gomock.Any()).
		Return(int64(11))

	request, err := http.NewRequest(http.MethodPost, f.server.URL+"/request/send/interested/bob", nil)
	req.NoError(err)
	request.Header.Set("X-User-ID", "alice")

	resp, err := http.DefaultClient.Do(request)
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusTooManyRequests, resp.StatusCode)

	var body map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Equal(float64(10), body["limit"])
	req.Equal(float64(11), body["used"])
}
