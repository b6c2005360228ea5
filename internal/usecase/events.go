package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/epalau/patrimonio"
)

// publish sends a change event and logs on failure. The realtime bridge is
// a convenience, so a failed publish never fails the mutation itself.
func publish(ctx context.Context, publisher EventPublisher, table, action, recordID string) {
	if publisher == nil {
		return
	}
	event := patrimonio.Event{
		Table:     table,
		Action:    action,
		RecordID:  recordID,
		Timestamp: time.Now().UTC(),
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(
			ctx, "Failed to publish change event",
			slog.String("table", table),
			slog.String("action", action),
			slog.String("error", err.Error()),
			slog.String("module", "usecase"),
		)
	}
}
