// Package pump drives the status indicator and the prayer alarms: it keeps the
// current ScheduleDay, refreshes the display every minute and re-arms the
// alarm scheduler whenever a new day or new settings arrive.
package pump

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/borgmon/prayer-bar/pkg/alarm"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/borgmon/prayer-bar/pkg/quotes"
	"github.com/borgmon/prayer-bar/pkg/schedule"
	"github.com/borgmon/prayer-bar/pkg/store"
	"github.com/rs/zerolog/log"
)

// Fetcher retrieves the raw schedule of the current day for a location
type Fetcher interface {
	Fetch(ctx context.Context, lat, lng float64, tzname string) (*models.RawSchedule, error)
}

// Cache remembers the last fetched schedule between runs
type Cache = store.ScheduleCache

// Display is the persistent status indicator
type Display interface {
	ShowActive(name, start, remaining string)
	ShowUnavailable()
	Hide()
	ShowAllToday(day *models.ScheduleDay)
}

// Notifier shows transient messages to the user
type Notifier interface {
	Notify(message string)
	NotifyError(message string)
}

// QuoteSource supplies the quotations attached to pre-prayer reminders
type QuoteSource interface {
	PickRandom() (quotes.Quote, error)
}

// Chimer plays the onset sound. Optional.
type Chimer interface {
	PlayChime()
}

// Deps are the collaborators a Pump talks to. Fetcher, Display and Notifier are required.
type Deps struct {
	Fetcher  Fetcher
	Cache    Cache
	Display  Display
	Notifier Notifier
	Quotes   QuoteSource
	Chimer   Chimer
	Clock    alarm.Clock
}

// Pump owns the current schedule snapshot and the alarm scheduler
type Pump struct {
	deps      Deps
	clock     alarm.Clock
	scheduler *alarm.Scheduler

	// TickInterval is how often Run refreshes the display
	TickInterval time.Duration

	// loadMu serializes Load and ApplyConfig; readers never take it
	loadMu sync.Mutex

	config atomic.Pointer[models.Config]
	day    atomic.Pointer[models.ScheduleDay]

	// unknown is set while the classifier finds no window, so the defect is logged once
	unknown atomic.Bool

	// failing is set after a failed load so background retries stay quiet
	// until a load succeeds or the user asks again
	failing atomic.Bool
}

// New creates a Pump for cfg. Nothing is fetched until Load or Run.
func New(cfg *models.Config, deps Deps) *Pump {
	if deps.Clock == nil {
		deps.Clock = alarm.RealClock()
	}

	p := &Pump{
		deps:         deps,
		clock:        deps.Clock,
		TickInterval: time.Minute,
	}
	p.scheduler = alarm.New(deps.Clock, p.handleAlarm)
	p.config.Store(cfg)

	return p
}

// Config returns the configuration currently in effect
func (p *Pump) Config() *models.Config {
	return p.config.Load()
}

// Day returns the current schedule snapshot, or nil before the first successful load
func (p *Pump) Day() *models.ScheduleDay {
	return p.day.Load()
}

// Stop cancels every pending alarm. The pump can be loaded again afterwards.
func (p *Pump) Stop() {
	p.scheduler.Cancel()
}

// Pending returns the alarms still armed
func (p *Pump) Pending() []models.ArmedAlarm {
	return p.scheduler.Pending()
}

func (p *Pump) now() time.Time {
	return p.clock.Now().In(p.Config().Location())
}

// Load obtains today's schedule (cache first, then the fetcher), rebuilds the
// windows, re-arms the alarms and refreshes the display. On failure the
// previous day stays in place, nothing is re-armed and one error
// notification is sent.
func (p *Pump) Load(ctx context.Context) error {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	p.failing.Store(false)
	return p.loadLocked(ctx)
}

// retry is the reload Run performs on its own. Only the first of a run of
// failures is notified.
func (p *Pump) retry(ctx context.Context) error {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	return p.loadLocked(ctx)
}

func (p *Pump) notifyFailure(message string) {
	if p.failing.Swap(true) {
		log.Debug().Str("message", message).Msg("Repeated load failure, not notifying")
		return
	}
	p.deps.Notifier.NotifyError(message)
}

func (p *Pump) loadLocked(ctx context.Context) error {
	cfg := p.Config()
	if !cfg.Active {
		p.scheduler.Cancel()
		p.deps.Display.Hide()
		log.Info().Msg("Prayer bar inactive, alarms cancelled")
		return nil
	}

	now := p.now()
	raw, fetchedAt, fromCache, err := p.obtain(ctx, cfg, now)
	if err != nil {
		p.notifyFailure(fmt.Sprintf("Failed to fetch prayer times: %v", err))
		p.Refresh()
		return err
	}

	day, err := schedule.BuildDay(*raw, schedule.OptionsFromConfig(cfg), fetchedAt)
	if err != nil {
		log.Error().Err(err).Bool("cached", fromCache).Msg("Rejected malformed schedule")
		if fromCache && p.deps.Cache != nil {
			p.deps.Cache.Clear()
		}
		p.notifyFailure(fmt.Sprintf("Received invalid prayer times: %v", err))
		p.Refresh()
		return err
	}

	if !fromCache && p.deps.Cache != nil {
		entry := store.CachedSchedule{Key: cfg.FetchKey(), Raw: *raw, FetchedAt: fetchedAt}
		if err := p.deps.Cache.Save(entry); err != nil {
			log.Warn().Err(err).Msg("Failed to cache schedule")
		}
	}

	p.failing.Store(false)
	p.install(day, cfg, now)
	return nil
}

// obtain returns a usable cached schedule or fetches a fresh one
func (p *Pump) obtain(ctx context.Context, cfg *models.Config, now time.Time) (*models.RawSchedule, time.Time, bool, error) {
	key := cfg.FetchKey()
	date := now.Format("2006-01-02")

	if p.deps.Cache != nil {
		if entry, ok := p.deps.Cache.Load(); ok && entry.Usable(key, date, now) {
			log.Debug().Str("date", date).Msg("Using cached schedule")
			raw := entry.Raw
			return &raw, entry.FetchedAt, true, nil
		}
	}

	raw, err := p.deps.Fetcher.Fetch(ctx, cfg.Latitude, cfg.Longitude, cfg.Timezone)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch schedule")
		return nil, time.Time{}, false, err
	}

	return raw, now, false, nil
}

// install publishes day as the current snapshot and re-arms the alarms
func (p *Pump) install(day *models.ScheduleDay, cfg *models.Config, now time.Time) {
	p.day.Store(day)
	p.scheduler.Rearm(day, alarm.OptionsFromConfig(cfg), now)
	p.Refresh()

	log.Info().
		Str("date", day.Raw.Date).
		Str("location", day.Raw.Location).
		Int("windows", len(day.Windows)).
		Msg("Schedule installed")
}

// Refresh classifies the current instant and updates the display
func (p *Pump) Refresh() schedule.Classification {
	cfg := p.Config()
	if !cfg.Active {
		p.deps.Display.Hide()
		return schedule.Classification{}
	}

	day := p.day.Load()
	if day == nil {
		p.deps.Display.ShowUnavailable()
		return schedule.Classification{}
	}

	now := p.now()
	c := schedule.Classify(now, day.Windows)
	if c.State == schedule.StateUnknown {
		if !p.unknown.Swap(true) {
			log.Warn().
				Time("now", now).
				Str("date", day.Raw.Date).
				Msg("No prayer window covers the current time")
		}
		p.deps.Display.ShowUnavailable()
		return c
	}
	p.unknown.Store(false)

	p.deps.Display.ShowActive(
		schedule.DisplayName(cfg.Language, c),
		c.WindowStart.In(now.Location()).Format("15:04"),
		schedule.FormatRemaining(c.Remaining),
	)
	return c
}

// NeedsReload reports whether the current snapshot is missing, older than
// store.StaleAfter, or belongs to another local date
func (p *Pump) NeedsReload() bool {
	day := p.day.Load()
	if day == nil {
		return true
	}

	now := p.now()
	if now.Sub(day.FetchedAt) >= store.StaleAfter {
		return true
	}
	return day.Raw.Date != now.Format("2006-01-02")
}

// Run loads once and then refreshes every TickInterval, reloading when the
// schedule goes stale. It returns when ctx is done, cancelling all alarms.
func (p *Pump) Run(ctx context.Context) error {
	defer p.Stop()

	if err := p.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial load failed, will retry")
	}

	ticker := time.NewTicker(p.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Pump) tick(ctx context.Context) {
	if p.Config().Active && p.NeedsReload() {
		if err := p.retry(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("Scheduled reload failed")
		}
		return
	}
	p.Refresh()
}

// ApplyConfig switches to next and does the least work the change needs:
// a reload for location, language, position or activity changes, a rebuild
// and re-arm from the current raw schedule for alarm related changes.
func (p *Pump) ApplyConfig(ctx context.Context, next *models.Config) (models.ChangeKind, error) {
	if err := next.Validate(); err != nil {
		return models.ChangeNone, fmt.Errorf("invalid configuration: %w", err)
	}

	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	prev := p.config.Load()
	kind := models.Diff(prev, next)

	switch kind {
	case models.ChangeReload:
		p.config.Store(next)
		p.failing.Store(false)
		log.Info().Str("change", kind.String()).Msg("Configuration applied")
		return kind, p.loadLocked(ctx)
	case models.ChangeRearm:
		current := p.day.Load()
		if current == nil {
			p.config.Store(next)
			p.failing.Store(false)
			log.Info().Str("change", kind.String()).Msg("Configuration applied")
			return kind, p.loadLocked(ctx)
		}
		// the new settings only go live once the day rebuilds under them
		day, err := schedule.BuildDay(current.Raw, schedule.OptionsFromConfig(next), current.FetchedAt)
		if err != nil {
			log.Error().Err(err).Msg("Settings rejected, schedule does not support them")
			p.deps.Notifier.NotifyError(fmt.Sprintf("Received invalid prayer times: %v", err))
			return kind, err
		}
		p.config.Store(next)
		p.install(day, next, p.now())
	default:
		p.config.Store(next)
	}

	log.Info().Str("change", kind.String()).Msg("Configuration applied")

	return kind, nil
}

// ShowAllToday hands the current day to the display's full listing
func (p *Pump) ShowAllToday() {
	day := p.day.Load()
	if day == nil {
		p.deps.Notifier.NotifyError("Prayer times are not loaded yet")
		return
	}
	p.deps.Display.ShowAllToday(day)
}

// ShowQuote notifies a random quotation. An empty source is not an error for the user.
func (p *Pump) ShowQuote() (quotes.Quote, error) {
	q, err := p.pickQuote()
	if err != nil {
		return q, err
	}
	p.deps.Notifier.Notify(q.String())
	return q, nil
}

func (p *Pump) pickQuote() (quotes.Quote, error) {
	if p.deps.Quotes == nil {
		return quotes.Quote{}, quotes.ErrEmpty
	}
	q, err := p.deps.Quotes.PickRandom()
	if errors.Is(err, quotes.ErrEmpty) {
		log.Info().Msg("Quotation source is empty, skipping")
	}
	return q, err
}

// handleAlarm runs on the scheduler's timer goroutine
func (p *Pump) handleAlarm(a models.ArmedAlarm) {
	cfg := p.Config()

	switch a.Kind {
	case models.AlarmPreReminder:
		q, err := p.pickQuote()
		if err != nil {
			return
		}
		p.deps.Notifier.Notify(a.Message + "\n" + q.String())
	case models.AlarmPrayerOnset:
		p.deps.Notifier.Notify(a.Message)
		if cfg.Chime && p.deps.Chimer != nil {
			p.deps.Chimer.PlayChime()
		}
	default:
		p.deps.Notifier.Notify(a.Message)
	}

	p.Refresh()
}
