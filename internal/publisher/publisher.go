package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ysugihara/inventory-scraper/internal/models"
)

// Publisher fans scrape results out to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, rows []models.Row) error
	Close() error
}

// RedisPublisher pushes each result row onto a pub/sub channel as JSON.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewRedisPublisher(ctx context.Context, addr, channel string) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  slog.Default().With("component", "publisher"),
	}, nil
}

type rowMessage struct {
	SourceURL string `json:"sourceUrl"`
	Price     int    `json:"price"`
	Stock     string `json:"stock"`
	Timestamp string `json:"timestamp"`
}

func (p *RedisPublisher) Publish(ctx context.Context, rows []models.Row) error {
	published := 0
	for _, row := range rows {
		msg := rowMessage{
			SourceURL: row.SourceURL,
			Price:     row.Price,
			Stock:     row.Stock.String(),
			Timestamp: row.Timestamp,
		}
		payload, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal row for %s: %w", row.SourceURL, err)
		}
		if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
			return fmt.Errorf("failed to publish row for %s: %w", row.SourceURL, err)
		}
		published++
	}
	p.logger.Info("published results", "channel", p.channel, "rows", published)
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
