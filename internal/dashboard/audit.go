package dashboard

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/user-dashboard/internal/core/events"
)

// AuditHandler writes every applied directory change and every failure to
// the audit log.
type AuditHandler struct {
	logger *slog.Logger
}

func NewAuditHandler(logger *slog.Logger) *AuditHandler {
	return &AuditHandler{logger: logger.With("component", "audit")}
}

func (h *AuditHandler) Handle(ctx context.Context, event events.Event) error {
	attrs := []any{
		"event_id", event.EventID(),
		"event_type", event.EventType(),
		"occurred_at", event.OccurredAt(),
	}

	switch e := event.(type) {
	case *events.UsersLoadedEvent:
		attrs = append(attrs, "operator_id", e.OperatorID, "count", e.Count)
	case *events.UserChangedEvent:
		attrs = append(attrs, "operator_id", e.OperatorID, "user_id", e.UserID, "email", e.Email)
	case *events.FailureEvent:
		attrs = append(attrs, "operator_id", e.OperatorID, "user_id", e.UserID, "message", e.Message)
		h.logger.WarnContext(ctx, "directory operation failed", attrs...)
		return nil
	default:
		attrs = append(attrs, "payload", event.Payload())
	}

	h.logger.InfoContext(ctx, "directory change", attrs...)
	return nil
}

// RegisterEventHandlers subscribes inline, so a session's audit lines are
// written in the order its changes were applied.
func (h *AuditHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	for _, eventType := range events.AuditTypes {
		eventBus.SubscribeInline(eventType, h.Handle)
	}

	h.logger.Info("audit event handlers registered", "handlers", events.AuditTypes)
}
