package tracking

import (
	"strings"

	"github.com/ManuelReschke/PageFox/app/models"
)

// uaRule maps a case-insensitive user-agent substring to a label.
// Rules are evaluated in order, first match wins, so precedence lives in the
// slice layout instead of a conditional cascade.
type uaRule struct {
	substr string
	label  string
}

var deviceRules = []uaRule{
	{"mobile", models.DEVICE_MOBILE},
	{"android", models.DEVICE_MOBILE},
	{"tablet", models.DEVICE_TABLET},
	{"ipad", models.DEVICE_TABLET},
}

var browserRules = []uaRule{
	{"chrome", "Chrome"},
	{"firefox", "Firefox"},
	{"safari", "Safari"},
	{"edge", "Edge"},
}

func matchRules(rules []uaRule, userAgent, fallback string) string {
	ua := strings.ToLower(userAgent)
	for _, rule := range rules {
		if strings.Contains(ua, rule.substr) {
			return rule.label
		}
	}
	return fallback
}

// DetectDevice classifies a user-agent string as desktop, mobile or tablet.
// Anything unrecognized falls back to desktop, never an error.
func DetectDevice(userAgent string) string {
	return matchRules(deviceRules, userAgent, models.DEVICE_DESKTOP)
}

// DetectBrowser returns a coarse browser label for a user-agent string.
func DetectBrowser(userAgent string) string {
	return matchRules(browserRules, userAgent, "Unknown")
}
