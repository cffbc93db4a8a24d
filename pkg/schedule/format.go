package schedule

import (
	"fmt"
	"time"

	"github.com/borgmon/prayer-bar/pkg/models"
)

// SplitRemaining floors d to whole hours and minutes. Seconds are dropped,
// never rounded, so 3599s reads as 0h 59m.
func SplitRemaining(d time.Duration) (hours, minutes int) {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return int(secs / 3600), int((secs % 3600) / 60)
}

// FormatRemaining renders d as "3h 33m"
func FormatRemaining(d time.Duration) string {
	h, m := SplitRemaining(d)
	return fmt.Sprintf("%dh %dm", h, m)
}

type labels struct {
	prefix       string
	next         string
	left         string
	congregation string
	unavailable  string
	prayers      map[models.Prayer]string
}

var labelTable = map[string]labels{
	models.LanguageEnglish: {
		prefix:       "Prayer Time",
		next:         "Next",
		left:         "left",
		congregation: "congregation",
		unavailable:  "N/A",
		prayers: map[models.Prayer]string{
			models.Fajr: "Fajr", models.Dhuhr: "Dhuhr", models.Asr: "Asr",
			models.Maghrib: "Maghrib", models.Isha: "Isha",
		},
	},
	models.LanguageBangla: {
		prefix:       "নামাজের সময়",
		next:         "পরবর্তী",
		left:         "বাকি",
		congregation: "জামাত",
		unavailable:  "প্রযোজ্য নয়",
		prayers: map[models.Prayer]string{
			models.Fajr: "ফজর", models.Dhuhr: "যোহর", models.Asr: "আসর",
			models.Maghrib: "মাগরিব", models.Isha: "এশা",
		},
	},
}

func labelsFor(lang string) labels {
	if l, ok := labelTable[lang]; ok {
		return l
	}
	return labelTable[models.LanguageEnglish]
}

// PrayerLabel returns the localized prayer name
func PrayerLabel(lang string, p models.Prayer) string {
	return labelsFor(lang).prayers[p]
}

// DisplayName returns the localized name of the classified window
func DisplayName(lang string, c Classification) string {
	l := labelsFor(lang)
	switch c.State {
	case StateActive:
		name := l.prayers[c.Prayer]
		if c.Kind == models.WindowCongregation {
			name += " " + l.congregation
		}
		return name
	case StateUpcoming:
		return l.next + ": " + l.prayers[c.Prayer]
	default:
		return l.unavailable
	}
}

// StatusText renders the status indicator line, e.g. "Prayer Time: Dhuhr (3h 33m left)"
func StatusText(lang string, c Classification) string {
	if c.State == StateUnknown {
		return UnavailableLine(lang)
	}
	return StatusLine(lang, DisplayName(lang, c), FormatRemaining(c.Remaining))
}

// StatusLine joins an already localized name and remaining time into the indicator text
func StatusLine(lang, name, remaining string) string {
	l := labelsFor(lang)
	return fmt.Sprintf("%s: %s (%s %s)", l.prefix, name, remaining, l.left)
}

// UnavailableLine is the indicator text when no window applies
func UnavailableLine(lang string) string {
	l := labelsFor(lang)
	return fmt.Sprintf("%s: %s", l.prefix, l.unavailable)
}
