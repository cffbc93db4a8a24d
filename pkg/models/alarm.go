package models

import "time"

// AlarmKind tells what a one-shot alarm announces
type AlarmKind string

const (
	AlarmPrayerOnset       AlarmKind = "PrayerOnset"       // prayer window begins
	AlarmCongregationOnset AlarmKind = "CongregationOnset" // congregation offset reached
	AlarmPreReminder       AlarmKind = "PreReminder"       // a few minutes before onset, carries a quotation
)

// ArmedAlarm represents a pre-computed one-shot alarm for a ScheduleDay
type ArmedAlarm struct {
	ID      string    // Unique identifier for the alarm (UUID)
	Kind    AlarmKind // What the alarm announces
	Prayer  Prayer    // Prayer the alarm belongs to
	FireAt  time.Time // When this alarm should fire
	Message string    // Notification text
}
