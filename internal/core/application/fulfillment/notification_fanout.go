package fulfillment

import (
	"context"
	"log/slog"
	"sync"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// DispatchResult records the outcome of one channel's delivery attempt.
type DispatchResult struct {
	Channel string
	Kind    ports.NotificationKind
	Err     error
}

// Ok reports whether the channel delivered the notification.
func (r DispatchResult) Ok() bool {
	return r.Err == nil
}

// NotificationFanout dispatches order notifications to every configured
// channel. Channels are independent: each one's failure is caught, logged
// and reported in its DispatchResult, and never prevents another channel's
// attempt or propagates to the caller.
type NotificationFanout struct {
	channels []ports.NotificationChannel
	logger   *slog.Logger
}

// NewNotificationFanout creates a fan-out over the given channels.
// An empty channel list is valid; Dispatch then does nothing.
func NewNotificationFanout(channels []ports.NotificationChannel, logger *slog.Logger) *NotificationFanout {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationFanout{channels: channels, logger: logger}
}

// Dispatch sends the notification to all channels concurrently and returns
// one result per channel, in channel order. It never returns an error:
// notification delivery is best effort from the caller's point of view.
func (f *NotificationFanout) Dispatch(
	ctx context.Context,
	kind ports.NotificationKind,
	o *order.Order,
) []DispatchResult {
	results := make([]DispatchResult, len(f.channels))

	var wg sync.WaitGroup
	for i, channel := range f.channels {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = DispatchResult{
				Channel: channel.Name(),
				Kind:    kind,
				Err:     channel.Notify(ctx, kind, o),
			}
		}()
	}
	wg.Wait()

	for _, result := range results {
		if result.Ok() {
			f.logger.InfoContext(ctx, "notification sent",
				slog.String("channel", result.Channel),
				slog.String("kind", string(result.Kind)),
				slog.String("orderId", o.ID().String()),
			)
			continue
		}
		f.logger.WarnContext(ctx, "notification failed",
			slog.String("channel", result.Channel),
			slog.String("kind", string(result.Kind)),
			slog.String("orderId", o.ID().String()),
			slog.Any("error", result.Err),
		)
	}

	return results
}
