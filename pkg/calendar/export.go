// Package calendar exports a day's prayer windows as an iCalendar feed and reads such feeds back.
package calendar

import (
	"errors"
	"fmt"
	"io"

	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const (
	productID = "-//borgmon//prayer-bar//EN"

	propPrayer = "X-PRAYER"
	propKind   = "X-PRAYER-KIND"
)

// uidNamespace makes event UIDs stable across exports of the same day
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/borgmon/prayer-bar"))

// NewCalendar builds a VCALENDAR with one VEVENT per non-empty window of day.
// Congregation windows are only included when withCongregation is set.
func NewCalendar(day *models.ScheduleDay, withCongregation bool) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	if day == nil {
		return cal
	}

	stamp := day.FetchedAt
	for _, w := range day.Windows {
		if w.Empty() {
			continue
		}
		if w.Kind == models.WindowCongregation && !withCongregation {
			continue
		}
		if stamp.IsZero() {
			stamp = w.Start
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, uuid.NewSHA1(uidNamespace, []byte(day.Raw.Date+"/"+w.Name)).String())
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, w.Start.UTC())
		event.Props.SetDateTime(ical.PropDateTimeEnd, w.End.UTC())
		event.Props.SetText(ical.PropSummary, w.Name)
		event.Props.SetText(ical.PropTransparency, "TRANSPARENT")
		if day.Raw.Location != "" {
			event.Props.SetText(ical.PropLocation, day.Raw.Location)
		}
		event.Props.SetText(propPrayer, w.Prayer.String())
		event.Props.SetText(propKind, string(w.Kind))

		cal.Children = append(cal.Children, event.Component)
	}

	return cal
}

// ErrNothingToExport is returned by Write when the day has no window to write
var ErrNothingToExport = errors.New("no prayer windows to export")

// Write encodes the day's windows to w. Nothing is written for a missing day
// or a day without windows.
func Write(w io.Writer, day *models.ScheduleDay, withCongregation bool) error {
	cal := NewCalendar(day, withCongregation)
	if len(cal.Children) == 0 {
		return ErrNothingToExport
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}
