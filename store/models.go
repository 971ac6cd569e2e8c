package store

import (
	"time"

	"timeblessed/restriction"
)

// AppRestriction is the persisted restriction for one package. Only whole
// hours are stored; the window runs from ShowFromHour:00 to ShowUntilHour:00.
type AppRestriction struct {
	PackageName   string  `gorm:"primaryKey;size:191"`
	AppName       string  `gorm:"size:255"`
	IsRestricted  bool    `gorm:"not null;default:false"`
	ShowFromHour  int     `gorm:"not null;default:0"`
	ShowUntilHour int     `gorm:"not null;default:23"`
	CustomLabel   *string `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (AppRestriction) TableName() string { return "app_restrictions" }

func (a AppRestriction) Window() restriction.TimeRange {
	return restriction.HourRange(a.ShowFromHour, a.ShowUntilHour)
}

func (a AppRestriction) Rule() restriction.Rule {
	return restriction.Rule{Package: a.PackageName, Restricted: a.IsRestricted, Window: a.Window()}
}

// DisplayName prefers the custom label over the app name.
func (a AppRestriction) DisplayName() string {
	if a.CustomLabel != nil && *a.CustomLabel != "" {
		return *a.CustomLabel
	}
	if a.AppName != "" {
		return a.AppName
	}
	return a.PackageName
}

type FavoriteApp struct {
	PackageName string    `gorm:"primaryKey;size:191"`
	AppName     string    `gorm:"size:255"`
	AddedAt     time.Time `gorm:"index"`
}

func (FavoriteApp) TableName() string { return "favorite_apps" }

type Setting struct {
	Key       string `gorm:"column:setting_key;primaryKey;size:191"`
	Value     string `gorm:"size:1024"`
	UpdatedAt time.Time
}

func (Setting) TableName() string { return "settings" }

// Rules converts stored rows to an evaluation set.
func Rules(rows []AppRestriction) restriction.Set {
	rules := make([]restriction.Rule, 0, len(rows))
	for _, r := range rows {
		rules = append(rules, r.Rule())
	}
	return restriction.NewSet(rules)
}
