package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"timeblessed/agent/internal/delivery"
	"timeblessed/logger"
	"timeblessed/store"
)

const (
	DefaultInterval = time.Minute
	Body            = "Your restricted app is ready to use"
)

type RestrictionSource interface {
	ListRestricted() ([]store.AppRestriction, error)
}

// FlagStore keeps the last restricted state seen per package. Unknown
// packages must read as restricted.
type FlagStore interface {
	Flag(pkg string) (bool, error)
	SetFlag(pkg string, restricted bool) error
}

type PreferenceSource interface {
	Load() (store.NotificationPreferences, error)
}

// Notifier announces apps whose restriction window has just opened.
type Notifier struct {
	rules    RestrictionSource
	flags    FlagStore
	prefs    PreferenceSource
	sink     delivery.Sink
	interval time.Duration
	now      func() time.Time
	failures int
}

type Option func(*Notifier)

func WithInterval(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.interval = d
		}
	}
}

func WithClock(now func() time.Time) Option { return func(n *Notifier) { n.now = now } }

func New(rules RestrictionSource, flags FlagStore, prefs PreferenceSource, sink delivery.Sink, opts ...Option) *Notifier {
	n := &Notifier{
		rules:    rules,
		flags:    flags,
		prefs:    prefs,
		sink:     sink,
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// NewFromRepos wires the notifier to the gorm repositories.
func NewFromRepos(repos *store.Repos, sink delivery.Sink, opts ...Option) *Notifier {
	return New(repos.Restrictions, repos.Settings, repos.Preferences, sink, opts...)
}

// Check runs one cycle. A failure on one package does not stop the others;
// all failures come back joined.
func (n *Notifier) Check(ctx context.Context) error {
	rows, err := n.rules.ListRestricted()
	if err != nil {
		return fmt.Errorf("list restrictions: %w", err)
	}
	var errs []error
	prefs, err := n.prefs.Load()
	if err != nil {
		errs = append(errs, fmt.Errorf("load preferences: %w", err))
		prefs = store.DefaultPreferences()
	}

	now := n.now()
	suppressed := prefs.Suppressed(now)
	for _, row := range rows {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := n.checkOne(ctx, row, prefs, suppressed, now); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", row.PackageName, err))
		}
	}
	return errors.Join(errs...)
}

func (n *Notifier) checkOne(ctx context.Context, row store.AppRestriction, prefs store.NotificationPreferences, suppressed bool, now time.Time) error {
	was, err := n.flags.Flag(row.PackageName)
	if err != nil {
		return err
	}
	restricted := row.Rule().RestrictedAt(now)

	var deliverErr error
	if was && !restricted {
		if suppressed {
			logger.L.Debug().Str("package", row.PackageName).Msg("availability notification suppressed")
		} else {
			deliverErr = n.sink.Deliver(ctx, Build(row, prefs))
		}
	}
	if restricted != was {
		if err := n.flags.SetFlag(row.PackageName, restricted); err != nil {
			return errors.Join(deliverErr, err)
		}
	}
	return deliverErr
}

// Build renders the notification for a package that just became available.
func Build(row store.AppRestriction, prefs store.NotificationPreferences) delivery.Notification {
	return delivery.Notification{
		Title:     row.DisplayName() + " is now available!",
		Body:      Body,
		Target:    row.PackageName,
		DedupeKey: delivery.DedupeKey(row.PackageName),
		Sound:     prefs.Sound,
		Vibrate:   prefs.Vibration,
	}
}

// Run checks once immediately, then every interval until ctx is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	logger.Infof("notifier started, interval %s", n.interval)
	n.cycle(ctx)

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("notifier stopped")
			return
		case <-ticker.C:
			n.cycle(ctx)
		}
	}
}

// failureAlert is how many failing cycles in a row escalate to an error log.
const failureAlert = 5

// cycle never stops the loop; a failing cycle is retried on the next tick.
func (n *Notifier) cycle(ctx context.Context) {
	err := n.Check(ctx)
	if err == nil || ctx.Err() != nil {
		n.failures = 0
		return
	}
	n.failures++
	if n.failures%failureAlert == 0 {
		logger.Errorf("availability check failed %d cycles in a row: %v", n.failures, err)
		return
	}
	logger.Warnf("availability check: %v", err)
}

// Failures reports consecutive failed cycles.
func (n *Notifier) Failures() int { return n.failures }
