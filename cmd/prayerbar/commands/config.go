package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/borgmon/prayer-bar/pkg/alarm"
	"github.com/borgmon/prayer-bar/pkg/audio"
	"github.com/borgmon/prayer-bar/pkg/fetcher"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/borgmon/prayer-bar/pkg/pump"
	"github.com/borgmon/prayer-bar/pkg/quotes"
	"github.com/borgmon/prayer-bar/pkg/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig assembles a models.Config from flags, environment and the config file
func loadConfig() (*models.Config, error) {
	cfg := models.DefaultConfig()
	cfg.Latitude = viper.GetFloat64("lat")
	cfg.Longitude = viper.GetFloat64("lng")
	cfg.Timezone = viper.GetString("tz")
	cfg.Language = viper.GetString("lang")
	cfg.AsrConvention = strings.ToLower(viper.GetString("asr"))
	cfg.CongregationEnabled = viper.GetBool("congregation")
	cfg.QuoteReminders = viper.GetBool("quotes")
	cfg.Chime = viper.GetBool("chime")
	cfg.Active = true

	// offsets:
	//   fajr: 30
	for _, p := range models.Prayers {
		key := "offsets." + strings.ToLower(p.String())
		if viper.IsSet(key) {
			cfg.CongregationOffsets[p] = viper.GetInt(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func cachePath() string {
	if path := viper.GetString("cache"); path != "" {
		return path
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "prayerbar", "schedule.json")
}

// parseAt reads the --at flag. An empty value means the real clock.
func parseAt(value string, loc *time.Location, now time.Time) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true, nil
	}

	if hm, err := time.ParseInLocation("15:04", value, loc); err == nil {
		today := now.In(loc)
		return time.Date(today.Year(), today.Month(), today.Day(), hm.Hour(), hm.Minute(), 0, 0, loc), true, nil
	}

	return time.Time{}, false, fmt.Errorf("--at must be RFC3339 or HH:MM, got %q", value)
}

// fixedClock pins Now for --at; timers still run on the real clock
type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time {
	return c.at
}

func (c fixedClock) AfterFunc(d time.Duration, f func()) alarm.Timer {
	return time.AfterFunc(d, f)
}

type cliChimer struct{}

func (cliChimer) PlayChime() {
	audio.PlayChime()
}

// newPump wires a pump that prints to the command's output streams
func newPump(cmd *cobra.Command, cfg *models.Config, stream bool) (*pump.Pump, *terminalDisplay, error) {
	clock := alarm.RealClock()
	at, fixed, err := parseAt(viper.GetString("at"), cfg.Location(), time.Now())
	if err != nil {
		return nil, nil, err
	}
	if fixed {
		clock = fixedClock{at: at}
	}

	quoteSource, err := quotes.Load(appFs, viper.GetString("quotes-file"))
	if err != nil {
		return nil, nil, err
	}

	display := newTerminalDisplay(cmd.OutOrStdout(), cfg.Language, stream)
	deps := pump.Deps{
		Fetcher:  fetcher.NewClient(viper.GetString("base-url"), nil),
		Cache:    store.NewFileScheduleCache(appFs, cachePath()),
		Display:  display,
		Notifier: newTerminalNotifier(cmd.OutOrStdout(), cmd.ErrOrStderr(), clock, cfg.Location()),
		Quotes:   quoteSource,
		Clock:    clock,
	}
	if cfg.Chime {
		deps.Chimer = cliChimer{}
	}

	return pump.New(cfg, deps), display, nil
}

// loadPump builds a pump and loads today's schedule, for the one-shot commands.
// Callers must Stop the pump.
func loadPump(cmd *cobra.Command) (*pump.Pump, *terminalDisplay, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	p, display, err := newPump(cmd, cfg, false)
	if err != nil {
		return nil, nil, err
	}

	if err := p.Load(cmd.Context()); err != nil {
		p.Stop()
		return nil, nil, err
	}
	return p, display, nil
}
