package schedule

import (
	"strings"
	"time"

	"github.com/borgmon/prayer-bar/pkg/models"
)

// ClockFormat is how instants are shown in the full listing
const ClockFormat = "3:04 PM"

// ListingRow is one line of the "all prayer times" view
type ListingRow struct {
	Label string
	Value string
}

// Listing returns the location name and the day's instants in the order the
// full view shows them. Rows whose instants were not reported are left out.
func Listing(raw models.RawSchedule) (location string, rows []ListingRow) {
	location = raw.Location
	if location == "" {
		location = raw.Timezone
	}
	if location == "" {
		location = "Unknown Location"
	}

	t := raw.Times
	loc := time.Local
	if raw.Timezone != "" {
		if l, err := time.LoadLocation(raw.Timezone); err == nil {
			loc = l
		}
	}
	clock := func(at time.Time) string {
		if at.IsZero() {
			return ""
		}
		return at.In(loc).Format(ClockFormat)
	}
	add := func(label string, value string) {
		if value != "" {
			rows = append(rows, ListingRow{Label: label, Value: value})
		}
	}
	join := func(sep string, values ...string) string {
		kept := []string{}
		for _, v := range values {
			if v != "" {
				kept = append(kept, v)
			}
		}
		return strings.Join(kept, sep)
	}

	add("Sehri", clock(t.Sehri))
	add("Fajr", clock(t.Fajr))
	add("Ishraq", clock(t.Ishraq))
	add("Rise", clock(t.Sunrise))
	add("Dhuhr", clock(t.Noon))
	add("Asr", join(" - ", clock(t.Asr1), clock(t.Asr2)))
	if m := clock(t.Maghrib); m != "" {
		if end := clock(t.Isha); end != "" {
			m += " (End: " + end + ")"
		}
		add("Maghrib", m)
	}
	add("Isha", clock(t.Isha))
	add("Tahajjud", join(" & ", clock(t.Night2), clock(t.Night6)))
	add("Set", clock(t.Sunset))

	return location, rows
}
