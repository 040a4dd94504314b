// file: internal/events/log_subscriber.go
package events

import (
	"context"

	"go.uber.org/zap"
)

// SubscribeActivityLog attaches a structured-log subscriber for the
// learner activity events. It is the default consumer until an
// analytics sink exists.
func SubscribeActivityLog(bus *Bus, logger *zap.Logger) {
	bus.Subscribe(UserRegistered{}.EventType(), func(_ context.Context, e Event) {
		ev := e.(UserRegistered)
		logger.Info("user registered",
			zap.String("user_id", ev.UserID.String()),
			zap.String("email", ev.Email),
		)
	})

	bus.Subscribe(CompletionRecorded{}.EventType(), func(_ context.Context, e Event) {
		ev := e.(CompletionRecorded)
		logger.Info("completion recorded",
			zap.String("user_id", ev.UserID.String()),
			zap.String("unit_id", ev.UnitID),
			zap.Int("points", ev.Points),
		)
	})

	bus.Subscribe(BadgeEarned{}.EventType(), func(_ context.Context, e Event) {
		ev := e.(BadgeEarned)
		logger.Info("badge earned",
			zap.String("user_id", ev.UserID.String()),
			zap.String("badge_id", ev.BadgeID),
		)
	})

	bus.Subscribe(RankChanged{}.EventType(), func(_ context.Context, e Event) {
		ev := e.(RankChanged)
		logger.Info("rank changed",
			zap.String("user_id", ev.UserID.String()),
			zap.String("from", ev.From),
			zap.String("to", ev.To),
		)
	})
}
