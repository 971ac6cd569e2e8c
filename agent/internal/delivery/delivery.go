package delivery

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"timeblessed/logger"
)

// namespace scopes dedupe keys so they never collide with other SHA-1 UUIDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("timeblessed.local"))

// Notification is one user-facing "app available" message.
type Notification struct {
	Title     string
	Body      string
	Target    string // package to open when the notification is activated
	DedupeKey string
	Sound     bool
	Vibrate   bool
}

// DedupeKey is stable per package, so a newer notification for the same app
// replaces the older one on the receiving side.
func DedupeKey(pkg string) string {
	return uuid.NewSHA1(namespace, []byte("app_available:"+pkg)).String()
}

type Sink interface {
	Deliver(ctx context.Context, n Notification) error
}

// Multi delivers to every sink and joins their errors.
type Multi []Sink

func (m Multi) Deliver(ctx context.Context, n Notification) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Deliver(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogSink writes the notification as a structured log line.
type LogSink struct{}

func (LogSink) Deliver(_ context.Context, n Notification) error {
	logger.L.Info().
		Str("package", n.Target).
		Str("title", n.Title).
		Str("dedupe_key", n.DedupeKey).
		Bool("sound", n.Sound).
		Bool("vibrate", n.Vibrate).
		Msg(n.Body)
	return nil
}
