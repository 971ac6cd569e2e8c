package dto

import (
	"time"

	"timeblessed/restriction"
	"timeblessed/store"
)

type RestrictionRequest struct {
	AppName    string  `json:"app_name"`
	FromHour   *int    `json:"from_hour" binding:"required"`
	FromMinute int     `json:"from_minute"`
	ToHour     *int    `json:"to_hour" binding:"required"`
	ToMinute   int     `json:"to_minute"`
	Label      *string `json:"label"`
}

func (r RestrictionRequest) Window() restriction.TimeRange {
	return restriction.TimeRange{FromHour: *r.FromHour, FromMinute: r.FromMinute, ToHour: *r.ToHour, ToMinute: r.ToMinute}
}

type RestrictionResponse struct {
	Package       string  `json:"package"`
	AppName       string  `json:"app_name"`
	Label         *string `json:"label,omitempty"`
	IsRestricted  bool    `json:"is_restricted"`
	FromHour      int     `json:"from_hour"`
	ToHour        int     `json:"to_hour"`
	Window        string  `json:"window"`
	DurationHours float64 `json:"duration_hours"`
	Visible       bool    `json:"visible"`
	Status        string  `json:"status"`
}

func NewRestrictionResponse(a store.AppRestriction, now time.Time) RestrictionResponse {
	w := a.Window()
	rule := a.Rule()
	return RestrictionResponse{
		Package:       a.PackageName,
		AppName:       a.AppName,
		Label:         a.CustomLabel,
		IsRestricted:  a.IsRestricted,
		FromHour:      a.ShowFromHour,
		ToHour:        a.ShowUntilHour,
		Window:        w.String(),
		DurationHours: w.DurationHours(),
		Visible:       rule.VisibleAt(now),
		Status:        rule.Describe(now),
	}
}
