package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	PositionTop    = "top"
	PositionBottom = "bottom"

	AsrHanafi   = "hanafi"
	AsrStandard = "standard"

	LanguageEnglish = "en"
	LanguageBangla  = "bn"
)

// CongregationOffsets holds minutes after onset at which the congregation is held
type CongregationOffsets map[Prayer]int

// DefaultCongregationOffsets returns Fajr 30, Dhuhr 30, Asr 45, Maghrib 30, Isha 60
func DefaultCongregationOffsets() CongregationOffsets {
	return CongregationOffsets{
		Fajr:    30,
		Dhuhr:   30,
		Asr:     45,
		Maghrib: 30,
		Isha:    60,
	}
}

// Get returns the offset for p, falling back to the default
func (o CongregationOffsets) Get(p Prayer) int {
	if m, ok := o[p]; ok {
		return m
	}
	return DefaultCongregationOffsets()[p]
}

// Clone returns a copy safe to hand to a new ScheduleDay
func (o CongregationOffsets) Clone() CongregationOffsets {
	c := make(CongregationOffsets, len(Prayers))
	for _, p := range Prayers {
		c[p] = o.Get(p)
	}
	return c
}

// Config holds application configuration
type Config struct {
	AutoStart           bool                `json:"auto_start"`
	Latitude            float64             `json:"lat"`
	Longitude           float64             `json:"lng"`
	Timezone            string              `json:"tzname"`
	Position            string              `json:"position"` // status item placement in the tray menu
	Active              bool                `json:"active"`
	Language            string              `json:"language"`
	CongregationEnabled bool                `json:"congregation_enabled"`
	CongregationOffsets CongregationOffsets `json:"congregation_offsets"` // minutes
	QuoteReminders      bool                `json:"quote_reminders"`
	Chime               bool                `json:"chime"`
	AsrConvention       string              `json:"asr_convention"`
}

// DefaultConfig returns the configuration used on first launch (Dhaka)
func DefaultConfig() *Config {
	return &Config{
		AutoStart:           false,
		Latitude:            23.8103,
		Longitude:           90.4125,
		Timezone:            "Asia/Dhaka",
		Position:            PositionTop,
		Active:              true,
		Language:            LanguageEnglish,
		CongregationEnabled: true,
		CongregationOffsets: DefaultCongregationOffsets(),
		QuoteReminders:      false,
		Chime:               true,
		AsrConvention:       AsrHanafi,
	}
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180, 180]", c.Longitude)
	}
	if strings.TrimSpace(c.Timezone) == "" {
		return fmt.Errorf("timezone is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	if c.Position != PositionTop && c.Position != PositionBottom {
		return fmt.Errorf("position must be %q or %q, got %q", PositionTop, PositionBottom, c.Position)
	}
	if c.Language != LanguageEnglish && c.Language != LanguageBangla {
		return fmt.Errorf("unsupported language %q", c.Language)
	}
	if c.AsrConvention != AsrHanafi && c.AsrConvention != AsrStandard {
		return fmt.Errorf("asr convention must be %q or %q, got %q", AsrHanafi, AsrStandard, c.AsrConvention)
	}
	for p, m := range c.CongregationOffsets {
		if m < 0 || m > 180 {
			return fmt.Errorf("congregation offset for %s must be within 0-180 minutes, got %d", p, m)
		}
	}
	return nil
}

// FetchKey identifies the settings a fetched schedule depends on
func (c *Config) FetchKey() string {
	return fmt.Sprintf("%.4f,%.4f,%s,%s", c.Latitude, c.Longitude, c.Timezone, c.Language)
}

// Location loads the configured timezone, falling back to local time
func (c *Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		return loc
	}
	return time.Local
}

// ChangeKind tells the pump how much work a settings change needs
type ChangeKind int

const (
	ChangeNone   ChangeKind = iota // nothing schedule related changed
	ChangeRearm                    // rebuild windows from the current raw schedule and re-arm
	ChangeReload                   // drop the cached schedule and fetch again
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeRearm:
		return "rearm"
	case ChangeReload:
		return "reload"
	default:
		return "none"
	}
}

// Diff classifies the change from prev to next
func Diff(prev, next *Config) ChangeKind {
	if prev == nil {
		return ChangeReload
	}

	if prev.FetchKey() != next.FetchKey() ||
		prev.Position != next.Position ||
		prev.Active != next.Active {
		return ChangeReload
	}

	if prev.CongregationEnabled != next.CongregationEnabled ||
		prev.QuoteReminders != next.QuoteReminders ||
		prev.AsrConvention != next.AsrConvention {
		return ChangeRearm
	}

	for _, p := range Prayers {
		if prev.CongregationOffsets.Get(p) != next.CongregationOffsets.Get(p) {
			return ChangeRearm
		}
	}

	return ChangeNone
}
