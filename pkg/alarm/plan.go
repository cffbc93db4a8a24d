package alarm

import (
	"fmt"
	"sort"
	"time"

	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/google/uuid"
)

// PreReminderLead is how long before onset the quotation reminder fires
const PreReminderLead = 5 * time.Minute

// Options selects which alarm kinds are derived for each prayer
type Options struct {
	Congregation bool
	PreReminders bool
}

// OptionsFromConfig picks the alarm options out of the app configuration
func OptionsFromConfig(cfg *models.Config) Options {
	return Options{
		Congregation: cfg.CongregationEnabled,
		PreReminders: cfg.QuoteReminders,
	}
}

// Plan derives the alarms still ahead of now for a ScheduleDay, sorted by fire time.
// Anything at or before now is dropped; missed alarms are never caught up.
func Plan(day *models.ScheduleDay, opts Options, now time.Time) []models.ArmedAlarm {
	if day == nil {
		return nil
	}

	planned := []models.ArmedAlarm{}
	add := func(kind models.AlarmKind, p models.Prayer, fireAt time.Time, message string) {
		if !fireAt.After(now) {
			return
		}
		planned = append(planned, models.ArmedAlarm{
			ID:      uuid.New().String(),
			Kind:    kind,
			Prayer:  p,
			FireAt:  fireAt,
			Message: message,
		})
	}

	for _, p := range models.Prayers {
		w, ok := day.BaseWindow(p)
		if !ok {
			continue
		}
		onset := w.Start

		add(models.AlarmPrayerOnset, p, onset,
			fmt.Sprintf("It's time for prayer! (%s %s)", p, onset.Format("15:04")))

		if opts.Congregation {
			congregation := onset.Add(time.Duration(day.Offsets.Get(p)) * time.Minute)
			add(models.AlarmCongregationOnset, p, congregation,
				fmt.Sprintf("%s congregation is starting (%s)", p, congregation.Format("15:04")))
		}

		if opts.PreReminders {
			add(models.AlarmPreReminder, p, onset.Add(-PreReminderLead),
				fmt.Sprintf("%s begins in %d minutes", p, int(PreReminderLead/time.Minute)))
		}
	}

	sort.SliceStable(planned, func(i, j int) bool {
		return planned[i].FireAt.Before(planned[j].FireAt)
	})
	return planned
}
