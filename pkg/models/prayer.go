package models

import (
	"fmt"
	"time"
)

// Prayer identifies one of the five daily prayers
type Prayer int

const (
	Fajr Prayer = iota
	Dhuhr
	Asr
	Maghrib
	Isha
)

// Prayers lists the daily prayers in chronological order
var Prayers = []Prayer{Fajr, Dhuhr, Asr, Maghrib, Isha}

var prayerNames = map[Prayer]string{
	Fajr:    "Fajr",
	Dhuhr:   "Dhuhr",
	Asr:     "Asr",
	Maghrib: "Maghrib",
	Isha:    "Isha",
}

func (p Prayer) String() string {
	if name, ok := prayerNames[p]; ok {
		return name
	}
	return "Unknown"
}

// ParsePrayer maps a prayer name (case-sensitive, as returned by String) back to a Prayer
func ParsePrayer(name string) (Prayer, bool) {
	for p, n := range prayerNames {
		if n == name {
			return p, true
		}
	}
	return 0, false
}

// PrayerPoint is a named instant of the day
type PrayerPoint struct {
	Name string
	At   time.Time
}

// RawTimes holds the instants returned by the time-table service for one day.
// Sehri, Ishraq, Night2 and Night6 are optional and stay zero when absent.
type RawTimes struct {
	Sehri   time.Time `json:"sehri"`
	Fajr    time.Time `json:"fajr"`
	Sunrise time.Time `json:"sunrise"`
	Ishraq  time.Time `json:"ishraq"`
	Noon    time.Time `json:"noon"`
	Asr1    time.Time `json:"asr1"`
	Asr2    time.Time `json:"asr2"`
	Sunset  time.Time `json:"sunset"`
	Maghrib time.Time `json:"maghrib"`
	Isha    time.Time `json:"isha"`
	Night2  time.Time `json:"night2"`
	Night6  time.Time `json:"night6"`
}

// Points returns every non-zero instant in declaration order
func (r RawTimes) Points() []PrayerPoint {
	all := []PrayerPoint{
		{Name: "Sehri", At: r.Sehri},
		{Name: "Fajr", At: r.Fajr},
		{Name: "Sunrise", At: r.Sunrise},
		{Name: "Ishraq", At: r.Ishraq},
		{Name: "Noon", At: r.Noon},
		{Name: "Asr (Shafi)", At: r.Asr1},
		{Name: "Asr (Hanafi)", At: r.Asr2},
		{Name: "Sunset", At: r.Sunset},
		{Name: "Maghrib", At: r.Maghrib},
		{Name: "Isha", At: r.Isha},
		{Name: "Tahajjud (1/2)", At: r.Night2},
		{Name: "Tahajjud (1/6)", At: r.Night6},
	}

	points := make([]PrayerPoint, 0, len(all))
	for _, p := range all {
		if !p.At.IsZero() {
			points = append(points, p)
		}
	}
	return points
}

// RawSchedule is a validated fetch payload for one calendar day
type RawSchedule struct {
	Date     string   `json:"date"`     // YYYY-MM-DD in the configured timezone
	Location string   `json:"location"` // display name reported by the service
	Timezone string   `json:"timezone"` // IANA name
	Times    RawTimes `json:"times"`
}

// WindowKind distinguishes a prayer's own window from its congregation sub-window
type WindowKind string

const (
	WindowBase         WindowKind = "base"
	WindowCongregation WindowKind = "congregation"
)

// PrayerWindow is a named half-open interval [Start, End)
type PrayerWindow struct {
	Prayer Prayer
	Name   string
	Kind   WindowKind
	Start  time.Time
	End    time.Time
}

// Contains reports whether t falls in [Start, End)
func (w PrayerWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Empty reports whether offsets collapsed the window
func (w PrayerWindow) Empty() bool {
	return !w.Start.Before(w.End)
}

func (w PrayerWindow) Duration() time.Duration {
	if w.Empty() {
		return 0
	}
	return w.End.Sub(w.Start)
}

// ScheduleDay is an immutable snapshot of one day's schedule and its derived windows.
// A new ScheduleDay replaces the previous one; it is never mutated in place.
type ScheduleDay struct {
	Raw          RawSchedule
	Windows      []PrayerWindow
	Offsets      CongregationOffsets
	Congregation bool
	FetchedAt    time.Time
}

// BaseWindow returns the base window of the given prayer
func (d *ScheduleDay) BaseWindow(p Prayer) (PrayerWindow, bool) {
	for _, w := range d.Windows {
		if w.Prayer == p && w.Kind == WindowBase {
			return w, true
		}
	}
	return PrayerWindow{}, false
}

// MarshalText lets Prayer be used as a JSON object key
func (p Prayer) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Prayer) UnmarshalText(text []byte) error {
	parsed, ok := ParsePrayer(string(text))
	if !ok {
		return fmt.Errorf("unknown prayer %q", string(text))
	}
	*p = parsed
	return nil
}
