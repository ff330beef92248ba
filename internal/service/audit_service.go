package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/credential-gateway/internal/config"
	"github.com/spec-kit/credential-gateway/internal/events"
)

// StreamWriter appends entries to an append-only stream (Redis XADD).
type StreamWriter interface {
	AppendStream(ctx context.Context, stream string, maxLen int64, values map[string]interface{}) error
}

// AuditService records auth events to the log and, if configured, a stream.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	stream     StreamWriter
	cfg        config.AuditConfig
}

// NewAuditService creates the service. stream may be nil.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, stream StreamWriter, cfg config.AuditConfig) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		stream:     stream,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleUserRegistered)
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.handleUserLoggedIn)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
}

func (a *AuditService) handleUserRegistered(ctx context.Context, event events.Event) error {
	a.logger.Info("UserRegistered", zap.String("subject", event.Subject), zap.String("event_id", event.ID))
	a.appendToStream(ctx, event)
	return nil
}

func (a *AuditService) handleUserLoggedIn(ctx context.Context, event events.Event) error {
	a.logger.Info("UserLoggedIn", zap.String("subject", event.Subject), zap.String("event_id", event.ID))
	a.appendToStream(ctx, event)
	return nil
}

func (a *AuditService) handleLoginFailed(ctx context.Context, event events.Event) error {
	a.logger.Warn("LoginFailed", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	a.appendToStream(ctx, event)
	return nil
}

// appendToStream never fails the caller; sink errors are only logged.
func (a *AuditService) appendToStream(ctx context.Context, event events.Event) {
	if a.stream == nil || a.cfg.StreamKey == "" {
		return
	}

	values := map[string]interface{}{
		"id":        event.ID,
		"type":      string(event.Type),
		"subject":   event.Subject,
		"timestamp": event.Timestamp.Format(time.RFC3339Nano),
	}
	if event.Payload != nil {
		payload, err := json.Marshal(event.Payload)
		if err != nil {
			a.logger.Warn("marshal audit payload", zap.String("event_id", event.ID), zap.Error(err))
		} else {
			values["payload"] = string(payload)
		}
	}

	if err := a.stream.AppendStream(ctx, a.cfg.StreamKey, a.cfg.StreamMaxLen, values); err != nil {
		a.logger.Warn("append audit stream",
			zap.String("stream", a.cfg.StreamKey),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
