package store

import (
	"encoding/json"

	"fyne.io/fyne/v2"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/rs/zerolog/log"
)

// ConfigStore handles configuration persistence using Fyne preferences
type ConfigStore struct {
	app fyne.App
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{app: app}
}

// Load loads configuration from preferences, falling back to models.DefaultConfig
func (cs *ConfigStore) Load() *models.Config {
	prefs := cs.app.Preferences()
	def := models.DefaultConfig()

	config := &models.Config{
		AutoStart:           prefs.BoolWithFallback("auto_start", def.AutoStart),
		Latitude:            prefs.FloatWithFallback("lat", def.Latitude),
		Longitude:           prefs.FloatWithFallback("lng", def.Longitude),
		Timezone:            prefs.StringWithFallback("tzname", def.Timezone),
		Position:            prefs.StringWithFallback("position", def.Position),
		Active:              prefs.BoolWithFallback("active", def.Active),
		Language:            prefs.StringWithFallback("language", def.Language),
		CongregationEnabled: prefs.BoolWithFallback("congregation_enabled", def.CongregationEnabled),
		QuoteReminders:      prefs.BoolWithFallback("quote_reminders", def.QuoteReminders),
		Chime:               prefs.BoolWithFallback("chime", def.Chime),
		AsrConvention:       prefs.StringWithFallback("asr_convention", def.AsrConvention),
		CongregationOffsets: models.DefaultCongregationOffsets(),
	}

	// Load congregation offsets from JSON string
	offsetsJSON := prefs.String("congregation_offsets")
	if offsetsJSON != "" {
		offsets := models.CongregationOffsets{}
		if err := json.Unmarshal([]byte(offsetsJSON), &offsets); err != nil {
			log.Warn().Err(err).Msg("Ignoring unreadable congregation offsets")
		} else {
			config.CongregationOffsets = offsets.Clone()
		}
	}

	if err := config.Validate(); err != nil {
		log.Warn().Err(err).Msg("Stored configuration is invalid, using defaults")
		return def
	}

	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	prefs := cs.app.Preferences()

	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetFloat("lat", config.Latitude)
	prefs.SetFloat("lng", config.Longitude)
	prefs.SetString("tzname", config.Timezone)
	prefs.SetString("position", config.Position)
	prefs.SetBool("active", config.Active)
	prefs.SetString("language", config.Language)
	prefs.SetBool("congregation_enabled", config.CongregationEnabled)
	prefs.SetBool("quote_reminders", config.QuoteReminders)
	prefs.SetBool("chime", config.Chime)
	prefs.SetString("asr_convention", config.AsrConvention)

	// Save congregation offsets as JSON string
	if offsetsJSON, err := json.Marshal(config.CongregationOffsets.Clone()); err == nil {
		prefs.SetString("congregation_offsets", string(offsetsJSON))
	}
}
