package delivery

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"timeblessed/logger"
)

var vibratePattern = []int64{0, 250, 250, 250}

type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMSink pushes notifications to registered devices through Firebase Cloud Messaging.
type FCMSink struct {
	client messageSender
	tokens []string
}

func NewFCMSink(ctx context.Context, credentialsFile string, tokens []string) (*FCMSink, error) {
	if credentialsFile == "" {
		return nil, errors.New("fcm: credentials file not set")
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing FCM client: %w", err)
	}
	return &FCMSink{client: client, tokens: tokens}, nil
}

func (s *FCMSink) Deliver(ctx context.Context, n Notification) error {
	var errs []error
	for _, token := range s.tokens {
		if token == "" {
			continue
		}
		id, err := s.client.Send(ctx, Message(token, n))
		if err != nil {
			errs = append(errs, fmt.Errorf("fcm send: %w", err))
			continue
		}
		logger.L.Debug().Str("package", n.Target).Str("message_id", id).Msg("fcm delivered")
	}
	return errors.Join(errs...)
}

// Message builds the FCM payload for one device token.
func Message(token string, n Notification) *messaging.Message {
	an := &messaging.AndroidNotification{
		Title: n.Title,
		Body:  n.Body,
		Tag:   n.DedupeKey,
	}
	if n.Sound {
		an.DefaultSound = true
	}
	if n.Vibrate {
		an.VibrateTimingMillis = vibratePattern
	}
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: map[string]string{
			"package":    n.Target,
			"dedupe_key": n.DedupeKey,
		},
		Android: &messaging.AndroidConfig{
			CollapseKey:  n.DedupeKey,
			Notification: an,
		},
	}
}
