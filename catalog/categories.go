package catalog

import "strings"

type Category string

const (
	Essential     Category = "essential"
	Social        Category = "social"
	Work          Category = "work"
	Entertainment Category = "entertainment"
	Gaming        Category = "gaming"
	News          Category = "news"
	Shopping      Category = "shopping"
	Other         Category = "other"
)

// Categories lists the categories in matching order.
var Categories = []Category{Essential, Social, Work, Entertainment, Gaming, News, Shopping, Other}

// CategoryKeywords are matched against the lower-cased package identifier.
var CategoryKeywords = map[Category][]string{
	Essential: {
		"phone", "contacts", "messages", "camera", "maps", "calendar",
		"clock", "calculator", "settings", "whatsapp", "telegram",
	},
	Social:        {"instagram", "facebook", "twitter", "tiktok", "snapchat", "discord"},
	Work:          {"gmail", "outlook", "slack", "teams", "zoom", "office"},
	Entertainment: {"netflix", "youtube", "spotify", "prime", "disney", "music"},
	Gaming:        {"game"},
	News:          {"news", "reddit", "medium"},
	Shopping:      {"amazon", "flipkart", "shop", "store"},
}

// Categorize picks the first category whose keyword occurs in pkg. Gaming
// also matches on the display name.
func Categorize(pkg, name string) Category {
	pkg = strings.ToLower(pkg)
	name = strings.ToLower(name)
	for _, c := range Categories {
		for _, kw := range CategoryKeywords[c] {
			if strings.Contains(pkg, kw) {
				return c
			}
			if c == Gaming && strings.Contains(name, kw) {
				return c
			}
		}
	}
	return Other
}

func (c Category) Title() string {
	if c == "" {
		return "Other"
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}
