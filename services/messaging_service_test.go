package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"devconnect/domain"
	"devconnect/domain/event"
	"devconnect/domain/signal"
	appErrors "devconnect/errors"
	"devconnect/infrastructure/cache"
	"devconnect/mocks"
	"devconnect/runtime"
)

type messagingFixture struct {
	repo      *mocks.MockIMessageRepository
	buffer    *mocks.MockMessageBuffer
	publisher *mocks.MockEventPublisher
	registry  *runtime.Registry
	svc       *MessagingService
}

func newMessagingFixture(t *testing.T) messagingFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIMessageRepository(ctrl)
	buffer := mocks.NewMockMessageBuffer(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)
	registry := runtime.NewRegistry()
	svc := NewMessagingService(repo, buffer, publisher, registry, slog.Default(), time.Second)
	return messagingFixture{repo: repo, buffer: buffer, publisher: publisher, registry: registry, svc: svc}
}

func TestMessagingService_Send_Persists_Then_Enriches(t *testing.T) {
	req := require.New(t)
	f := newMessagingFixture(t)
	ctx := context.Background()
	sentAt := time.Now().UTC()

	// Given both parties have a live session on this instance
	aliceSink := &recordingSink{}
	bobSink := &recordingSink{}
	aliceSession := uuid.NewString()
	bobSession := uuid.NewString()
	f.registry.Attach(aliceSession, aliceSink)
	f.registry.Attach(bobSession, bobSink)
	_, _ = f.registry.Bind("alice", aliceSession)
	_, _ = f.registry.Bind("bob", bobSession)

	f.repo.EXPECT().StoreMessage(gomock.Any(), gomock.Any()).Return(nil)
	f.buffer.EXPECT().RecentMessages(gomock.Any(), "alice", "bob").Return(nil, false)
	f.buffer.EXPECT().
		SetRecentMessages(gomock.Any(), "alice", "bob", gomock.Any()).
		DoAndReturn(func(ctx context.Context, a, b string, messages []domain.Message) bool {
			require.Len(t, messages, 1)
			require.Equal(t, "hello bob", messages[0].Text)
			return true
		})
	f.publisher.EXPECT().
		Publish(gomock.Any(), event.TopicMessage, "alice", gomock.Any()).
		DoAndReturn(func(ctx context.Context, topic, key string, e event.DomainEvent) bool {
			require.Equal(t, event.MessageSent, e.Type)
			require.Equal(t, "alice", e.Data["fromUserId"])
			require.Equal(t, "bob", e.Data["toUserId"])
			return true
		})

	// When sending
	msg, err := f.svc.Send(ctx, domain.SendMessageCommand{
		FromUserID: "alice",
		ToUserID:   "bob",
		Text:       "  hello bob  ",
		SentAt:     sentAt,
	})

	// Then the message is trimmed, persisted and pushed to both sessions
	req.NoError(err)
	req.Equal("hello bob", msg.Text)
	req.NotEqual(uuid.Nil, msg.ID)

	expected := []any{signal.NewPrivateMessage("hello bob", "alice", msg.SentAt)}
	req.Equal(expected, aliceSink.all())
	req.Equal(expected, bobSink.all())
}

func TestMessagingService_Send_Rejects_Invalid_Before_Any_IO(t *testing.T) {
	req := require.New(t)
	f := newMessagingFixture(t)
	ctx := context.Background()

	// No repo, buffer or publisher expectation: invalid input never reaches them
	cases := []struct {
		name string
		cmd  domain.SendMessageCommand
		want error
	}{
		{"missing recipient", domain.SendMessageCommand{FromUserID: "alice", Text: "hi"}, nil},
		{"self message", domain.SendMessageCommand{FromUserID: "alice", ToUserID: "alice", Text: "hi"}, appErrors.ErrSelfMessage},
		{"blank text", domain.SendMessageCommand{FromUserID: "alice", ToUserID: "bob", Text: "   "}, appErrors.ErrEmptyMessage},
		{"oversized text", domain.SendMessageCommand{FromUserID: "alice", ToUserID: "bob", Text: strings.Repeat("x", domain.MaxTextLength+1)}, appErrors.ErrMessageTooLong},
	}

	for _, tc := range cases {
		_, err := f.svc.Send(ctx, tc.cmd)
		req.Error(err, tc.name)
		if tc.want != nil {
			req.ErrorIs(err, tc.want, tc.name)
		}
	}
}

func TestMessagingService_Send_Accepts_Max_Length_Text(t *testing.T) {
	req := require.New(t)
	f := newMessagingFixture(t)

	f.repo.EXPECT().StoreMessage(gomock.Any(), gomock.Any()).Return(nil)
	f.buffer.EXPECT().RecentMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, false)
	f.buffer.EXPECT().SetRecentMessages(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)
	f.publisher.EXPECT().Publish(gomock.Any(), event.TopicMessage, "alice", gomock.Any()).Return(true)

	msg, err := f.svc.Send(context.Background(), domain.SendMessageCommand{
		FromUserID: "alice",
		ToUserID:   "bob",
		Text:       strings.Repeat("x", domain.MaxTextLength),
		SentAt:     time.Now(),
	})
	req.NoError(err)
	req.Len([]rune(msg.Text), domain.MaxTextLength)
}

func TestMessagingService_Send_Store_Failure_Short_Circuits(t *testing.T) {
	req := require.New(t)
	f := newMessagingFixture(t)

	// Given the durable store is down
	f.repo.EXPECT().StoreMessage(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

	// When sending, then the error surfaces and no later stage ran
	_, err := f.svc.Send(context.Background(), domain.SendMessageCommand{
		FromUserID: "alice",
		ToUserID:   "bob",
		Text:       "hello",
		SentAt:     time.Now(),
	})
	req.ErrorIs(err, context.DeadlineExceeded)
	req.ErrorContains(err, "store message")
}

func TestMessagingService_Send_Prepends_To_Recent_Buffer(t *testing.T) {
	req := require.New(t)
	f := newMessagingFixture(t)
	older, err := domain.NewMessage("bob", "alice", "older", time.Now().Add(-time.Minute))
	req.NoError(err)

	f.repo.EXPECT().StoreMessage(gomock.Any(), gomock.Any()).Return(nil)
	f.buffer.EXPECT().RecentMessages(gomock.Any(), "alice", "bob").Return([]domain.Message{older}, true)
	f.buffer.EXPECT().
		SetRecentMessages(gomock.Any(), "alice", "bob", gomock.Any()).
		DoAndReturn(func(ctx context.Context, a, b string, messages []domain.Message) bool {
			require.Len(t, messages, 2)
			require.Equal(t, "newer", messages[0].Text)
			require.Equal(t, older.ID, messages[1].ID)
			return true
		})
	f.publisher.EXPECT().Publish(gomock.Any(), event.TopicMessage, "alice", gomock.Any()).Return(true)

	_, err = f.svc.Send(context.Background(), domain.SendMessageCommand{
		FromUserID: "alice",
		ToUserID:   "bob",
		Text:       "newer",
		SentAt:     time.Now(),
	})
	req.NoError(err)
}

func TestMessagingService_Recent_Buffer_Holds_At_Most_The_Cap(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIMessageRepository(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)
	repo.EXPECT().StoreMessage(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true).AnyTimes()

	// Given a real cache-backed buffer instead of a mock
	srv := miniredis.RunT(t)
	buffer := cache.New(context.Background(), "redis://"+srv.Addr(), time.Second, slog.Default())
	req.True(buffer.Enabled())
	t.Cleanup(func() { _ = buffer.Close() })

	svc := NewMessagingService(repo, buffer, publisher, runtime.NewRegistry(), slog.Default(), time.Second)
	ctx := context.Background()

	// When one more message than the buffer holds goes through
	total := cache.RecentMessagesCap + 1
	for i := 0; i < total; i++ {
		_, err := svc.Send(ctx, domain.SendMessageCommand{
			FromUserID: "alice",
			ToUserID:   "bob",
			Text:       fmt.Sprintf("message-%d", i),
			SentAt:     time.Now(),
		})
		req.NoError(err)
	}

	// Then the buffer holds the cap, newest first, and the first message fell off
	recent, ok := buffer.RecentMessages(ctx, "alice", "bob")
	req.True(ok)
	req.Len(recent, cache.RecentMessagesCap)
	req.Equal(fmt.Sprintf("message-%d", total-1), recent[0].Text)
	req.Equal("message-1", recent[cache.RecentMessagesCap-1].Text)
}

func TestMessagingService_History_Clamps_Limit(t *testing.T) {
	req := require.New(t)
	f := newMessagingFixture(t)
	ctx := context.Background()

	// A zero limit becomes the default, an excessive one is capped
	f.repo.EXPECT().History(gomock.Any(), "alice", "bob", DefaultHistoryLimit).Return(nil, nil)
	_, err := f.svc.History(ctx, domain.HistoryCommand{UserID: "alice", TargetUserID: "bob"})
	req.NoError(err)

	f.repo.EXPECT().History(gomock.Any(), "alice", "bob", MaxHistoryLimit).Return(nil, nil)
	_, err = f.svc.History(ctx, domain.HistoryCommand{UserID: "alice", TargetUserID: "bob", Limit: 9999})
	req.NoError(err)
}

func TestMessagingService_History_Rejects_Missing_Target(t *testing.T) {
	req := require.New(t)
	f := newMessagingFixture(t)

	_, err := f.svc.History(context.Background(), domain.HistoryCommand{UserID: "alice"})
	req.Error(err)
}
