package eventsource

import (
	"go.uber.org/zap"
)

// LogEvent logs a single journaled page with its decoded payload.
func LogEvent(logger *zap.Logger, book *Book, page *Page) {
	if logger == nil || page == nil {
		return
	}
	fields := []zap.Field{
		zap.String("root", book.Root.String()),
		zap.Uint32("seq", page.Sequence),
		zap.String("event", page.Type()),
	}
	if page.CreatedAt != nil {
		fields = append(fields, zap.Time("created_at", page.CreatedAt.AsTime()))
	}
	if payload, err := UnpackPayload(page.Event); err == nil {
		fields = append(fields, zap.Any("payload", payload.AsMap()))
	}
	logger.Debug("event recorded", fields...)
}
