package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/epalau/patrimonio"
)

// SignalService fans row change events out through Redis pub/sub. One
// channel per table keeps subscriptions selective.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event patrimonio.Event) error {
	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, patrimonio.ChangeChannel(event.Table), jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime pumps change events for the requested tables into output until
// the context is canceled. Table lists arriving on input are additive.
func (s *SignalService) Realtime(ctx context.Context, input <-chan []string, output chan<- patrimonio.Event) {
	pubsub := s.rdb.Subscribe(ctx)
	defer pubsub.Close()

	messages := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case tables, ok := <-input:
			if !ok {
				return
			}
			channels := make([]string, 0, len(tables))
			for _, table := range tables {
				channels = append(channels, patrimonio.ChangeChannel(table))
			}
			if err := pubsub.Subscribe(ctx, channels...); err != nil {
				slog.ErrorContext(
					ctx, "Failed to subscribe to change channels",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				return
			}
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event patrimonio.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.WarnContext(
					ctx, "Dropping malformed change event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
