package store

import (
	"errors"
	"time"

	"timeblessed/restriction"
)

const (
	KeyNotificationsEnabled = "notifications_enabled"
	KeyNotificationSound    = "notification_sound"
	KeyNotificationVibrate  = "notification_vibration"
	KeyQuietHoursEnabled    = "quiet_hours_enabled"
	KeyQuietHoursStart      = "quiet_hours_start"
	KeyQuietHoursEnd        = "quiet_hours_end"
)

type NotificationPreferences struct {
	Enabled           bool `json:"notifications_enabled"`
	Sound             bool `json:"notification_sound"`
	Vibration         bool `json:"notification_vibration"`
	QuietHoursEnabled bool `json:"quiet_hours_enabled"`
	QuietHoursStart   int  `json:"quiet_hours_start"`
	QuietHoursEnd     int  `json:"quiet_hours_end"`
}

func DefaultPreferences() NotificationPreferences {
	return NotificationPreferences{
		Enabled:         true,
		Vibration:       true,
		QuietHoursStart: 22,
		QuietHoursEnd:   7,
	}
}

func (p NotificationPreferences) QuietHours() restriction.QuietHours {
	return restriction.QuietHours{Enabled: p.QuietHoursEnabled, Start: p.QuietHoursStart, End: p.QuietHoursEnd}
}

func (p NotificationPreferences) InQuietHours(t time.Time) bool { return p.QuietHours().Active(t) }

// Suppressed reports whether a notification due at t must not be shown.
func (p NotificationPreferences) Suppressed(t time.Time) bool {
	return !p.Enabled || p.InQuietHours(t)
}

func (p NotificationPreferences) Validate() error {
	if p.QuietHoursStart < 0 || p.QuietHoursStart > 23 || p.QuietHoursEnd < 0 || p.QuietHoursEnd > 23 {
		return restriction.ErrInvalidHour
	}
	return nil
}

type PreferenceRepository struct{ settings *SettingRepository }

func NewPreferenceRepository(settings *SettingRepository) *PreferenceRepository {
	return &PreferenceRepository{settings: settings}
}

func (r *PreferenceRepository) Load() (NotificationPreferences, error) {
	d := DefaultPreferences()
	var p NotificationPreferences
	var errs []error
	get := func(key string, def bool) bool {
		v, err := r.settings.GetBool(key, def)
		errs = append(errs, err)
		return v
	}
	getInt := func(key string, def int) int {
		v, err := r.settings.GetInt(key, def)
		errs = append(errs, err)
		return v
	}
	p.Enabled = get(KeyNotificationsEnabled, d.Enabled)
	p.Sound = get(KeyNotificationSound, d.Sound)
	p.Vibration = get(KeyNotificationVibrate, d.Vibration)
	p.QuietHoursEnabled = get(KeyQuietHoursEnabled, d.QuietHoursEnabled)
	p.QuietHoursStart = getInt(KeyQuietHoursStart, d.QuietHoursStart)
	p.QuietHoursEnd = getInt(KeyQuietHoursEnd, d.QuietHoursEnd)
	if err := errors.Join(errs...); err != nil {
		return d, err
	}
	return p, nil
}

func (r *PreferenceRepository) Save(p NotificationPreferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return errors.Join(
		r.settings.SetBool(KeyNotificationsEnabled, p.Enabled),
		r.settings.SetBool(KeyNotificationSound, p.Sound),
		r.settings.SetBool(KeyNotificationVibrate, p.Vibration),
		r.settings.SetBool(KeyQuietHoursEnabled, p.QuietHoursEnabled),
		r.settings.SetInt(KeyQuietHoursStart, p.QuietHoursStart),
		r.settings.SetInt(KeyQuietHoursEnd, p.QuietHoursEnd),
	)
}
