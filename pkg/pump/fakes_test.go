package pump

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/borgmon/prayer-bar/pkg/alarm"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/borgmon/prayer-bar/pkg/quotes"
	"github.com/borgmon/prayer-bar/pkg/store"
)

var dhaka = time.FixedZone("+06", 6*60*60)

func at(hh, mm int) time.Time {
	return time.Date(2025, 3, 10, hh, mm, 0, 0, dhaka)
}

func sampleRaw() *models.RawSchedule {
	return &models.RawSchedule{
		Date:     "2025-03-10",
		Location: "Dhaka",
		Timezone: "Asia/Dhaka",
		Times: models.RawTimes{
			Fajr:    at(5, 0),
			Sunrise: at(6, 20),
			Ishraq:  at(6, 35),
			Noon:    at(12, 5),
			Asr1:    at(15, 5),
			Asr2:    at(15, 40),
			Sunset:  at(18, 0),
			Maghrib: at(18, 2),
			Isha:    at(19, 20),
		},
	}
}

type fakeFetcher struct {
	mu    sync.Mutex
	raw   *models.RawSchedule
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, lat, lng float64, tzname string) (*models.RawSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	raw := *f.raw
	return &raw, nil
}

func (f *fakeFetcher) set(raw *models.RawSchedule, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raw, f.err = raw, err
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memCache struct {
	mu      sync.Mutex
	entry   *store.CachedSchedule
	cleared int
}

func (c *memCache) Load() (store.CachedSchedule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil {
		return store.CachedSchedule{}, false
	}
	return *c.entry, true
}

func (c *memCache) Save(entry store.CachedSchedule) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &entry
	return nil
}

func (c *memCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
	c.cleared++
	return nil
}

type displayCall struct {
	kind      string // active, unavailable, hidden
	name      string
	start     string
	remaining string
}

type fakeDisplay struct {
	mu    sync.Mutex
	calls []displayCall
	all   []*models.ScheduleDay
}

func (d *fakeDisplay) record(c displayCall) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, c)
}

func (d *fakeDisplay) ShowActive(name, start, remaining string) {
	d.record(displayCall{kind: "active", name: name, start: start, remaining: remaining})
}

func (d *fakeDisplay) ShowUnavailable() { d.record(displayCall{kind: "unavailable"}) }

func (d *fakeDisplay) Hide() { d.record(displayCall{kind: "hidden"}) }

func (d *fakeDisplay) ShowAllToday(day *models.ScheduleDay) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.all = append(d.all, day)
}

func (d *fakeDisplay) last() displayCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.calls) == 0 {
		return displayCall{}
	}
	return d.calls[len(d.calls)-1]
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	errors   []string
}

func (n *fakeNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *fakeNotifier) NotifyError(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func (n *fakeNotifier) snapshot() ([]string, []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...), append([]string(nil), n.errors...)
}

type countingChimer struct {
	mu sync.Mutex
	n  int
}

func (c *countingChimer) PlayChime() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

type fixedQuotes struct {
	quote quotes.Quote
	err   error
}

func (q fixedQuotes) PickRandom() (quotes.Quote, error) {
	return q.quote, q.err
}

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
	clock   *fakeClock
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) alarm.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{at: c.now.Add(d), f: f, clock: c}
	c.timers = append(c.timers, t)
	return t
}

// Set moves the clock without firing anything
func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// AdvanceTo moves the clock and fires every due timer in order
func (c *fakeClock) AdvanceTo(now time.Time) {
	c.mu.Lock()
	c.now = now
	due := []*fakeTimer{}
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

type harness struct {
	pump     *Pump
	fetcher  *fakeFetcher
	cache    *memCache
	display  *fakeDisplay
	notifier *fakeNotifier
	chimer   *countingChimer
	clock    *fakeClock
}

func newHarness(cfg *models.Config, now time.Time, q QuoteSource) *harness {
	h := &harness{
		fetcher:  &fakeFetcher{raw: sampleRaw()},
		cache:    &memCache{},
		display:  &fakeDisplay{},
		notifier: &fakeNotifier{},
		chimer:   &countingChimer{},
		clock:    &fakeClock{now: now},
	}
	h.pump = New(cfg, Deps{
		Fetcher:  h.fetcher,
		Cache:    h.cache,
		Display:  h.display,
		Notifier: h.notifier,
		Quotes:   q,
		Chimer:   h.chimer,
		Clock:    h.clock,
	})
	return h
}
