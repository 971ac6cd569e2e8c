package ui

import (
	"timeblessed/catalog"
	"timeblessed/restriction"
	"timeblessed/store"
	"timeblessed/unrestrict"
)

// Screens report what the user asked for; RootModel performs it.

type launchMsg struct{ pkg string }

type toggleFavoriteMsg struct{ app catalog.App }

type openPickerMsg struct{ app catalog.App }

type pickerSavedMsg struct {
	app    catalog.App
	window restriction.TimeRange
}

type requestUnrestrictMsg struct {
	pkg  string
	name string
}

type unrestrictResolvedMsg struct {
	pkg     string
	name    string
	outcome unrestrict.Outcome
}

type clearAllMsg struct{}

type savePrefsMsg struct{ prefs store.NotificationPreferences }

type navigateMsg struct{ to state }

type backMsg struct{}
