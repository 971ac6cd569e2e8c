package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"timeblessed/logger"
)

const DefaultChannel = "timeblessed:events"

type Kind string

const (
	AppAvailable        Kind = "app_available"
	RestrictionsChanged Kind = "restrictions_changed"
)

type Event struct {
	Kind      Kind   `json:"kind"`
	Package   string `json:"package,omitempty"`
	Title     string `json:"title,omitempty"`
	Body      string `json:"body,omitempty"`
	DedupeKey string `json:"dedupe_key,omitempty"`
}

// Publisher is the write side used by the service layer and the notifier.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Options struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// Bus is a redis pub/sub channel. A nil *Bus publishes nothing and yields
// closed subscriptions, so callers need no "redis configured" checks.
type Bus struct {
	rdb     *redis.Client
	channel string
}

// New returns nil when no address is configured.
func New(opts Options) *Bus {
	if opts.Addr == "" {
		return nil
	}
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), opts.Channel)
}

func NewWithClient(rdb *redis.Client, channel string) *Bus {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Bus{rdb: rdb, channel: channel}
}

func (b *Bus) Ping(ctx context.Context) error {
	if b == nil {
		return nil
	}
	return b.rdb.Ping(ctx).Err()
}

func (b *Bus) Publish(ctx context.Context, e Event) error {
	if b == nil {
		return nil
	}
	payload, err := Encode(e)
	if err != nil {
		return err
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", e.Kind, err)
	}
	return nil
}

// Subscribe streams events until ctx is done or the returned close func runs.
// Malformed payloads are logged and skipped.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Event, func() error) {
	out := make(chan Event, 16)
	if b == nil {
		close(out)
		return out, func() error { return nil }
	}
	sub := b.rdb.Subscribe(ctx, b.channel)
	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				e, err := Decode(msg.Payload)
				if err != nil {
					logger.Warnf("events: drop malformed payload: %v", err)
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, sub.Close
}

func (b *Bus) Close() error {
	if b == nil {
		return nil
	}
	return b.rdb.Close()
}

func Encode(e Event) (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode event: %w", err)
	}
	return string(raw), nil
}

func Decode(payload string) (Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Kind == "" {
		return Event{}, fmt.Errorf("decode event: missing kind")
	}
	return e, nil
}
