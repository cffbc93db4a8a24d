package calendar

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/emersion/go-ical"
	"github.com/rs/zerolog/log"
)

// ReadWindows decodes every VEVENT written by Write back into prayer windows.
// Events without a recognisable prayer or without times are skipped.
func ReadWindows(r io.Reader) ([]models.PrayerWindow, error) {
	decoder := ical.NewDecoder(r)
	windows := []models.PrayerWindow{}

	for {
		cal, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			w, err := parseWindow(comp)
			if err != nil {
				log.Debug().Err(err).Msg("Skipping calendar event")
				continue
			}
			windows = append(windows, w)
		}
	}

	return windows, nil
}

func parseWindow(comp *ical.Component) (models.PrayerWindow, error) {
	w := models.PrayerWindow{Kind: models.WindowBase}

	if prop := comp.Props.Get(ical.PropSummary); prop != nil {
		w.Name = prop.Value
	}

	prop := comp.Props.Get(propPrayer)
	if prop == nil {
		return w, fmt.Errorf("event %q has no %s", w.Name, propPrayer)
	}
	p, ok := models.ParsePrayer(prop.Value)
	if !ok {
		return w, fmt.Errorf("event %q has unknown prayer %q", w.Name, prop.Value)
	}
	w.Prayer = p

	if prop := comp.Props.Get(propKind); prop != nil && prop.Value == string(models.WindowCongregation) {
		w.Kind = models.WindowCongregation
	}

	var err error
	if w.Start, err = parseDateTime(comp, ical.PropDateTimeStart); err != nil {
		return w, err
	}
	if w.End, err = parseDateTime(comp, ical.PropDateTimeEnd); err != nil {
		return w, err
	}

	return w, nil
}

func parseDateTime(comp *ical.Component, name string) (time.Time, error) {
	prop := comp.Props.Get(name)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing %s", name)
	}

	t, err := prop.DateTime(time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse %s value %q: %w", name, prop.Value, err)
	}
	return t, nil
}
