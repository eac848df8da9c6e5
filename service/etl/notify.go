package etl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"retail.GO/core/cache"
)

// Notifier is told about every finished pass.
type Notifier interface {
	Notify(ctx context.Context, s *Summary) error
}

// LastRunKey holds the JSON summary of the latest pass in Redis.
const LastRunKey = "retail:etl:last_run"

// RedisNotifier stores the latest summary under LastRunKey.
type RedisNotifier struct {
	Client *redis.Client
}

func (n *RedisNotifier) Notify(ctx context.Context, s *Summary) error {
	if n.Client == nil {
		return nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return n.Client.Set(ctx, LastRunKey, b, 0).Err()
}

// LastSummary reads the summary written by RedisNotifier. ok is false on a miss.
func LastSummary(ctx context.Context, client *redis.Client) (*Summary, bool, error) {
	if client == nil {
		return nil, false, nil
	}
	b, err := client.Get(ctx, LastRunKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var s Summary
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, false, err
	}
	return &s, true, nil
}

// WrittenResources are the /api list resources a pass can add rows to.
var WrittenResources = []string{"categories", "stores", "suppliers", "products", "inventory", "supplies"}

// CacheNotifier drops cached list responses for Resources after a pass that loaded rows.
type CacheNotifier struct {
	Cache     cache.ListCache
	Resources []string
}

func (n *CacheNotifier) Notify(ctx context.Context, s *Summary) error {
	if n.Cache == nil || s.Loaded == 0 {
		return nil
	}
	for _, r := range n.Resources {
		n.Cache.Invalidate(ctx, r)
	}
	return nil
}

// AMQPNotifier publishes each summary as a persistent JSON message to Queue.
// A connection is opened per notification; passes are rare.
type AMQPNotifier struct {
	URL   string
	Queue string
}

func (n *AMQPNotifier) Notify(ctx context.Context, s *Summary) error {
	body, err := json.Marshal(s)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(n.URL)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(n.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("amqp declare %s: %w", n.Queue, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return ch.PublishWithContext(ctx, "", q.Name, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		CorrelationId: s.RunID,
		Timestamp:     s.FinishedAt,
		Body:          body,
	})
}
