package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/spf13/afero"
)

// StaleAfter is how long a cached schedule is trusted before it is fetched again
const StaleAfter = 12 * time.Hour

// CachedSchedule is the last fetched schedule and the settings it was fetched for
type CachedSchedule struct {
	Key       string             `json:"key"` // models.Config.FetchKey at fetch time
	Raw       models.RawSchedule `json:"raw"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Usable reports whether the entry was fetched for key, for the given local date, and is not stale
func (c CachedSchedule) Usable(key, date string, now time.Time) bool {
	if c.Key != key || c.Raw.Date != date {
		return false
	}
	age := now.Sub(c.FetchedAt)
	return age >= 0 && age < StaleAfter
}

// ScheduleCache keeps the most recently fetched schedule
type ScheduleCache interface {
	Load() (CachedSchedule, bool)
	Save(entry CachedSchedule) error
	Clear() error
}

const prefsScheduleKey = "cached_schedule"

// PrefsScheduleCache stores the schedule as a JSON string in Fyne preferences
type PrefsScheduleCache struct {
	app fyne.App
}

// NewPrefsScheduleCache creates a preferences backed cache
func NewPrefsScheduleCache(app fyne.App) *PrefsScheduleCache {
	return &PrefsScheduleCache{app: app}
}

func (c *PrefsScheduleCache) Load() (CachedSchedule, bool) {
	data := c.app.Preferences().String(prefsScheduleKey)
	if data == "" {
		return CachedSchedule{}, false
	}

	var entry CachedSchedule
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return CachedSchedule{}, false
	}
	return entry, true
}

func (c *PrefsScheduleCache) Save(entry CachedSchedule) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	c.app.Preferences().SetString(prefsScheduleKey, string(data))
	return nil
}

func (c *PrefsScheduleCache) Clear() error {
	c.app.Preferences().RemoveValue(prefsScheduleKey)
	return nil
}

// FileScheduleCache stores the schedule as a JSON file, used by the headless CLI
type FileScheduleCache struct {
	fs   afero.Fs
	path string
}

// NewFileScheduleCache creates a file backed cache at path on fs
func NewFileScheduleCache(fs afero.Fs, path string) *FileScheduleCache {
	return &FileScheduleCache{fs: fs, path: path}
}

func (c *FileScheduleCache) Load() (CachedSchedule, bool) {
	data, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		return CachedSchedule{}, false
	}

	var entry CachedSchedule
	if err := json.Unmarshal(data, &entry); err != nil {
		return CachedSchedule{}, false
	}
	return entry, true
}

func (c *FileScheduleCache) Save(entry CachedSchedule) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	if err := c.fs.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := afero.WriteFile(c.fs, c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schedule cache: %w", err)
	}
	return nil
}

func (c *FileScheduleCache) Clear() error {
	if err := c.fs.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove schedule cache: %w", err)
	}
	return nil
}
