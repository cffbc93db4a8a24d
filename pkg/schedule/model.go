// Package schedule turns a day's raw prayer instants into ordered prayer
// windows and classifies an instant against them.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/borgmon/prayer-bar/pkg/models"
)

const (
	// NoonBuffer keeps Dhuhr from starting until this long after solar noon
	NoonBuffer = 2 * time.Minute
	// SunsetBuffer ends Asr this long before sunset
	SunsetBuffer = 5 * time.Minute

	dayLength = 24 * time.Hour
)

// ErrMalformedSchedule is matched by every *MalformedScheduleError
var ErrMalformedSchedule = errors.New("malformed schedule")

// MalformedScheduleError names the raw field that made a schedule unusable
type MalformedScheduleError struct {
	Field  string
	Reason string
}

func (e *MalformedScheduleError) Error() string {
	return fmt.Sprintf("malformed schedule: %s %s", e.Field, e.Reason)
}

func (e *MalformedScheduleError) Is(target error) bool {
	return target == ErrMalformedSchedule
}

// WindowOptions controls how windows are derived from raw instants
type WindowOptions struct {
	AsrConvention string // models.AsrHanafi (default) or models.AsrStandard
	Congregation  bool
	Offsets       models.CongregationOffsets
}

// OptionsFromConfig picks the window options out of the app configuration
func OptionsFromConfig(cfg *models.Config) WindowOptions {
	return WindowOptions{
		AsrConvention: cfg.AsrConvention,
		Congregation:  cfg.CongregationEnabled,
		Offsets:       cfg.CongregationOffsets.Clone(),
	}
}

type boundary struct {
	field  string
	at     func(models.RawTimes) time.Time
	offset time.Duration
}

func (b boundary) resolve(r models.RawTimes) time.Time {
	return b.at(r).Add(b.offset)
}

type windowDef struct {
	prayer models.Prayer
	start  boundary
	end    boundary
}

func asrBoundary(convention string) boundary {
	if convention == models.AsrStandard {
		return boundary{field: "asr1", at: func(r models.RawTimes) time.Time { return r.Asr1 }}
	}
	return boundary{field: "asr2", at: func(r models.RawTimes) time.Time { return r.Asr2 }}
}

func windowTable(convention string) []windowDef {
	fajr := boundary{field: "fajr", at: func(r models.RawTimes) time.Time { return r.Fajr }}
	sunrise := boundary{field: "sunrise", at: func(r models.RawTimes) time.Time { return r.Sunrise }}
	noon := boundary{field: "noon", at: func(r models.RawTimes) time.Time { return r.Noon }, offset: NoonBuffer}
	asr := asrBoundary(convention)
	sunset := boundary{field: "sunset", at: func(r models.RawTimes) time.Time { return r.Sunset }, offset: -SunsetBuffer}
	maghrib := boundary{field: "maghrib", at: func(r models.RawTimes) time.Time { return r.Maghrib }}
	isha := boundary{field: "isha", at: func(r models.RawTimes) time.Time { return r.Isha }}
	nextFajr := fajr
	nextFajr.offset = dayLength

	return []windowDef{
		{prayer: models.Fajr, start: fajr, end: sunrise},
		{prayer: models.Dhuhr, start: noon, end: asr},
		{prayer: models.Asr, start: asr, end: sunset},
		{prayer: models.Maghrib, start: maghrib, end: isha},
		{prayer: models.Isha, start: isha, end: nextFajr},
	}
}

// Validate checks that every required instant is present, ordered and within one day
func Validate(raw models.RawSchedule, convention string) error {
	asr := asrBoundary(convention)
	ordered := []struct {
		field string
		at    time.Time
	}{
		{"fajr", raw.Times.Fajr},
		{"sunrise", raw.Times.Sunrise},
		{"noon", raw.Times.Noon},
		{asr.field, asr.at(raw.Times)},
		{"sunset", raw.Times.Sunset},
		{"maghrib", raw.Times.Maghrib},
		{"isha", raw.Times.Isha},
	}

	for _, f := range ordered {
		if f.at.IsZero() {
			return &MalformedScheduleError{Field: f.field, Reason: "is missing"}
		}
	}

	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		// maghrib may coincide with sunset
		if cur.field == "maghrib" {
			if cur.at.Before(prev.at) {
				return &MalformedScheduleError{Field: cur.field, Reason: "is before " + prev.field}
			}
			continue
		}
		if !cur.at.After(prev.at) {
			return &MalformedScheduleError{Field: cur.field, Reason: "is not after " + prev.field}
		}
	}

	if raw.Times.Isha.Sub(raw.Times.Fajr) >= dayLength {
		return &MalformedScheduleError{Field: "isha", Reason: "is more than a day after fajr"}
	}

	// optional instants are not ordered but must still belong to this day
	for _, p := range raw.Times.Points() {
		if d := p.At.Sub(raw.Times.Fajr); d >= dayLength || d <= -dayLength {
			return &MalformedScheduleError{Field: p.Name, Reason: "is more than a day away from fajr"}
		}
	}

	return nil
}

// BuildWindows derives the ordered window list for a day. Each base window is
// followed by its congregation sub-window when congregation is enabled.
func BuildWindows(raw models.RawSchedule, opts WindowOptions) ([]models.PrayerWindow, error) {
	if err := Validate(raw, opts.AsrConvention); err != nil {
		return nil, err
	}

	for p, m := range opts.Offsets {
		if m < 0 {
			return nil, &MalformedScheduleError{Field: p.String() + " congregation offset", Reason: "is negative"}
		}
	}

	table := windowTable(opts.AsrConvention)
	windows := make([]models.PrayerWindow, 0, len(table)*2)

	for _, def := range table {
		base := models.PrayerWindow{
			Prayer: def.prayer,
			Name:   def.prayer.String(),
			Kind:   models.WindowBase,
			Start:  def.start.resolve(raw.Times),
			End:    def.end.resolve(raw.Times),
		}
		windows = append(windows, base)

		if opts.Congregation {
			offset := time.Duration(opts.Offsets.Get(def.prayer)) * time.Minute
			windows = append(windows, models.PrayerWindow{
				Prayer: def.prayer,
				Name:   def.prayer.String() + " congregation",
				Kind:   models.WindowCongregation,
				Start:  base.Start.Add(offset),
				End:    base.End,
			})
		}
	}

	return windows, nil
}

// BuildDay validates raw and returns a new immutable ScheduleDay
func BuildDay(raw models.RawSchedule, opts WindowOptions, fetchedAt time.Time) (*models.ScheduleDay, error) {
	windows, err := BuildWindows(raw, opts)
	if err != nil {
		return nil, err
	}

	return &models.ScheduleDay{
		Raw:          raw,
		Windows:      windows,
		Offsets:      opts.Offsets.Clone(),
		Congregation: opts.Congregation,
		FetchedAt:    fetchedAt,
	}, nil
}
