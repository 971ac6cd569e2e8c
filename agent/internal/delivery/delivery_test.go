package delivery

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeblessed/events"
)

type fakeSink struct {
	got []Notification
	err error
}

func (f *fakeSink) Deliver(_ context.Context, n Notification) error {
	f.got = append(f.got, n)
	return f.err
}

type fakePublisher struct{ got []events.Event }

func (f *fakePublisher) Publish(_ context.Context, e events.Event) error {
	f.got = append(f.got, e)
	return nil
}

type fakeSender struct {
	sent []*messaging.Message
	fail map[string]bool
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if f.fail[m.Token] {
		return "", errors.New("unregistered")
	}
	f.sent = append(f.sent, m)
	return "projects/x/messages/1", nil
}

func TestDedupeKeyIsStablePerPackage(t *testing.T) {
	assert.Equal(t, DedupeKey("org.example.chat"), DedupeKey("org.example.chat"))
	assert.NotEqual(t, DedupeKey("org.example.chat"), DedupeKey("org.example.mail"))
}

func TestMultiDeliversToAllAndJoinsErrors(t *testing.T) {
	ok := &fakeSink{}
	bad := &fakeSink{err: errors.New("down")}
	m := Multi{bad, nil, ok, LogSink{}}

	err := m.Deliver(context.Background(), Notification{Target: "p"})
	assert.Error(t, err)
	assert.Len(t, ok.got, 1)
	assert.Len(t, bad.got, 1)
}

func TestBusSink(t *testing.T) {
	pub := &fakePublisher{}
	n := Notification{Title: "Chat is now available!", Body: "b", Target: "chat", DedupeKey: DedupeKey("chat")}
	require.NoError(t, BusSink{Bus: pub}.Deliver(context.Background(), n))
	require.Len(t, pub.got, 1)
	assert.Equal(t, events.AppAvailable, pub.got[0].Kind)
	assert.Equal(t, "chat", pub.got[0].Package)
	assert.Equal(t, n.DedupeKey, pub.got[0].DedupeKey)

	assert.NoError(t, BusSink{}.Deliver(context.Background(), n))
}

func TestFCMSink(t *testing.T) {
	sender := &fakeSender{fail: map[string]bool{"stale": true}}
	s := &FCMSink{client: sender, tokens: []string{"t1", "", "stale", "t2"}}
	n := Notification{Title: "T", Body: "B", Target: "chat", DedupeKey: "k", Vibrate: true}

	err := s.Deliver(context.Background(), n)
	assert.Error(t, err)
	require.Len(t, sender.sent, 2)

	m := sender.sent[0]
	assert.Equal(t, "t1", m.Token)
	assert.Equal(t, "k", m.Android.Notification.Tag)
	assert.Equal(t, "k", m.Android.CollapseKey)
	assert.False(t, m.Android.Notification.DefaultSound)
	assert.NotEmpty(t, m.Android.Notification.VibrateTimingMillis)
	assert.Equal(t, "chat", m.Data["package"])
}

func TestNewFCMSinkNeedsCredentials(t *testing.T) {
	_, err := NewFCMSink(context.Background(), "", nil)
	assert.Error(t, err)
}
