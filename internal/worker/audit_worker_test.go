package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/credential-gateway/internal/config"
	"github.com/spec-kit/credential-gateway/internal/events"
	"github.com/spec-kit/credential-gateway/internal/service"
)

func TestStartAuditWorker(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()

	StartAuditWorker(service.NewAuditService(dispatcher, zap.New(core), nil, config.AuditConfig{}))

	require.NoError(t, dispatcher.Publish(context.Background(), events.NewEvent(events.EventUserLoggedIn, "user1", nil)))
	assert.Equal(t, 1, logs.FilterMessage("UserLoggedIn").Len())
}

func TestStartAuditWorker_Nil(t *testing.T) {
	assert.NotPanics(t, func() { StartAuditWorker(nil) })
}
