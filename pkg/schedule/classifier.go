package schedule

import (
	"time"

	"github.com/borgmon/prayer-bar/pkg/models"
)

// State is the outcome of classifying an instant
type State int

const (
	// StateUnknown means no window or gap matched; the schedule is stale or incomplete
	StateUnknown State = iota
	// StateActive means the instant lies inside a window
	StateActive
	// StateUpcoming means the instant lies in a gap before the next prayer
	StateUpcoming
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateUpcoming:
		return "upcoming"
	default:
		return "unknown"
	}
}

// Classification describes what is happening at a given instant
type Classification struct {
	State       State
	Prayer      models.Prayer
	Kind        models.WindowKind
	Name        string        // window name, or "Next: <prayer>" when upcoming
	WindowStart time.Time     // start of the active window, or of the next prayer
	Remaining   time.Duration // until the window ends, or until the next prayer starts
}

// Classify finds the window containing now. Windows are checked in declaration
// order and the first match wins, so a base window shadows its congregation
// sub-window. Gaps between consecutive base windows project the next prayer.
// Before the first window, the last base window carried back one day covers
// the small hours.
func Classify(now time.Time, windows []models.PrayerWindow) Classification {
	for _, w := range windows {
		if w.Contains(now) {
			return active(w, now)
		}
	}

	for _, gap := range Gaps(windows) {
		if gap.Contains(now) {
			return Classification{
				State:       StateUpcoming,
				Prayer:      gap.Prayer,
				Kind:        models.WindowBase,
				Name:        gap.Name,
				WindowStart: gap.End,
				Remaining:   gap.End.Sub(now),
			}
		}
	}

	bases := baseWindows(windows)
	if len(bases) > 0 {
		last := bases[len(bases)-1]
		carried := last
		carried.Start = last.Start.Add(-dayLength)
		carried.End = last.End.Add(-dayLength)
		if carried.Contains(now) {
			return active(carried, now)
		}
	}

	return Classification{State: StateUnknown, Name: "N/A"}
}

func active(w models.PrayerWindow, now time.Time) Classification {
	return Classification{
		State:       StateActive,
		Prayer:      w.Prayer,
		Kind:        w.Kind,
		Name:        w.Name,
		WindowStart: w.Start,
		Remaining:   w.End.Sub(now),
	}
}

func baseWindows(windows []models.PrayerWindow) []models.PrayerWindow {
	bases := make([]models.PrayerWindow, 0, len(windows))
	for _, w := range windows {
		if w.Kind == models.WindowBase {
			bases = append(bases, w)
		}
	}
	return bases
}

// Gaps returns the intervals between consecutive base windows that no base window covers
func Gaps(windows []models.PrayerWindow) []models.PrayerWindow {
	bases := baseWindows(windows)
	gaps := []models.PrayerWindow{}
	for i := 0; i+1 < len(bases); i++ {
		prev, next := bases[i], bases[i+1]
		if prev.End.Before(next.Start) {
			gaps = append(gaps, models.PrayerWindow{
				Prayer: next.Prayer,
				Name:   "Next: " + next.Name,
				Kind:   models.WindowBase,
				Start:  prev.End,
				End:    next.Start,
			})
		}
	}
	return gaps
}
