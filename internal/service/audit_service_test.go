package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/credential-gateway/internal/config"
	"github.com/spec-kit/credential-gateway/internal/events"
)

type fakeStream struct {
	err     error
	streams []string
	maxLens []int64
	entries []map[string]interface{}
}

func (f *fakeStream) AppendStream(_ context.Context, stream string, maxLen int64, values map[string]interface{}) error {
	f.streams = append(f.streams, stream)
	f.maxLens = append(f.maxLens, maxLen)
	f.entries = append(f.entries, values)
	return f.err
}

func TestAuditService_AppendsToStream(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	stream := &fakeStream{}
	audit := NewAuditService(dispatcher, zap.NewNop(), stream, config.AuditConfig{StreamKey: "audit", StreamMaxLen: 50})
	audit.RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventUserRegistered, "user1", nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventLoginFailed, "user1",
		events.LoginFailedPayload{Reason: events.ReasonWrongPassword})))

	require.Len(t, stream.entries, 2)
	assert.Equal(t, []string{"audit", "audit"}, stream.streams)
	assert.Equal(t, []int64{50, 50}, stream.maxLens)
	assert.Equal(t, "user_registered", stream.entries[0]["type"])
	assert.Equal(t, "user1", stream.entries[0]["subject"])
	assert.NotContains(t, stream.entries[0], "payload")
	assert.JSONEq(t, `{"reason":"wrong_password"}`, stream.entries[1]["payload"].(string))
}

func TestAuditService_StreamErrorIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	dispatcher := events.NewInMemoryDispatcher()
	stream := &fakeStream{err: errors.New("redis down")}
	NewAuditService(dispatcher, zap.New(core), stream, config.AuditConfig{StreamKey: "audit"}).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.NewEvent(events.EventUserLoggedIn, "user1", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("append audit stream").Len())
}

func TestAuditService_NoStream(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core), nil, config.AuditConfig{StreamKey: "audit"}).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.NewEvent(events.EventUserRegistered, "user1", nil)))
	require.Equal(t, 1, logs.FilterMessage("UserRegistered").Len())
	assert.Equal(t, "user1", logs.All()[0].ContextMap()["subject"])
}

func TestAuditService_NilDispatcher(t *testing.T) {
	assert.NotPanics(t, func() {
		NewAuditService(nil, zap.NewNop(), nil, config.AuditConfig{}).RegisterHandlers()
	})
}
