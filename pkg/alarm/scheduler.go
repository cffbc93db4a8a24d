// Package alarm derives one-shot prayer alarms from a ScheduleDay and keeps
// at most one armed set alive at a time.
package alarm

import (
	"sort"
	"sync"
	"time"

	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/rs/zerolog/log"
)

type armedTimer struct {
	alarm models.ArmedAlarm
	timer Timer
}

// Scheduler owns the currently armed alarm set
type Scheduler struct {
	mu sync.Mutex

	clock  Clock
	onFire func(models.ArmedAlarm)

	// generation is bumped on every rearm or cancel; callbacks from an older
	// generation are ignored even if their timer could not be stopped in time
	generation uint64

	// Map of alarm ID to its pending timer
	pending map[string]*armedTimer
}

// New creates a Scheduler that calls onFire for every alarm that comes due
func New(clock Clock, onFire func(models.ArmedAlarm)) *Scheduler {
	if clock == nil {
		clock = RealClock()
	}
	return &Scheduler{
		clock:   clock,
		onFire:  onFire,
		pending: make(map[string]*armedTimer),
	}
}

// Rearm cancels every pending alarm and arms the set planned for day at now.
// Both steps happen under one lock, so no old and new alarm for the same
// event are ever pending together. A nil day only cancels.
func (s *Scheduler) Rearm(day *models.ScheduleDay, opts Options, now time.Time) []models.ArmedAlarm {
	planned := Plan(day, opts, now)

	s.mu.Lock()
	defer s.mu.Unlock()

	cancelled := s.cancelLocked()
	gen := s.generation

	for _, a := range planned {
		a := a
		timer := s.clock.AfterFunc(a.FireAt.Sub(now), func() {
			s.fire(gen, a.ID)
		})
		s.pending[a.ID] = &armedTimer{alarm: a, timer: timer}
	}

	log.Info().
		Int("cancelled", cancelled).
		Int("armed", len(planned)).
		Msg("Alarms re-armed")

	return planned
}

// Cancel stops every pending alarm
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := s.cancelLocked(); n > 0 {
		log.Info().Int("cancelled", n).Msg("Alarms cancelled")
	}
}

func (s *Scheduler) cancelLocked() int {
	n := len(s.pending)
	for id, entry := range s.pending {
		entry.timer.Stop()
		delete(s.pending, id)
	}
	s.generation++
	return n
}

func (s *Scheduler) fire(gen uint64, id string) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	entry, ok := s.pending[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	s.mu.Unlock()

	log.Info().
		Str("kind", string(entry.alarm.Kind)).
		Str("prayer", entry.alarm.Prayer.String()).
		Time("fire_at", entry.alarm.FireAt).
		Msg("Alarm fired")

	if s.onFire != nil {
		s.onFire(entry.alarm)
	}
}

// Pending returns the alarms that have not fired yet, sorted by fire time
func (s *Scheduler) Pending() []models.ArmedAlarm {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.ArmedAlarm, 0, len(s.pending))
	for _, entry := range s.pending {
		result = append(result, entry.alarm)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].FireAt.Before(result[j].FireAt)
	})
	return result
}
