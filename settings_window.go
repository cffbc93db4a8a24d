package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/borgmon/prayer-bar/pkg/platform"
	"github.com/borgmon/prayer-bar/pkg/pump"
	"github.com/borgmon/prayer-bar/pkg/store"
	"github.com/rs/zerolog/log"
)

const savedMessage = "Settings saved successfully"

type SettingsWindow struct {
	window      fyne.Window
	app         fyne.App
	pump        *pump.Pump
	configStore *store.ConfigStore
	config      *models.Config
	onSave      func(*models.Config)

	// General tab
	autoStartCheck *widget.Check
	activeCheck    *widget.Check
	languageSelect *widget.Select
	positionRadio  *widget.RadioGroup

	// Location tab
	latEntry *widget.Entry
	lngEntry *widget.Entry
	tzEntry  *widget.Entry

	// Alarms tab
	congregationCheck *widget.Check
	offsetSelects     map[models.Prayer]*widget.Select
	quoteCheck        *widget.Check
	chimeCheck        *widget.Check
	asrRadio          *widget.RadioGroup

	// Today tab
	windowsTable *widget.Table
	windowsData  []models.PrayerWindow
	alarmsTable  *widget.Table
	alarmsData   []models.ArmedAlarm

	// UI state
	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button
}

func NewSettingsWindow(app fyne.App, p *pump.Pump, configStore *store.ConfigStore, onSave func(*models.Config)) *SettingsWindow {
	sw := &SettingsWindow{
		app:         app,
		pump:        p,
		configStore: configStore,
		config:      p.Config(),
		onSave:      onSave,
	}

	sw.window = app.NewWindow("Prayer Bar - Settings")
	sw.buildUI()

	return sw
}

func (sw *SettingsWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("General", sw.buildGeneralTab()),
		container.NewTabItem("Location", sw.buildLocationTab()),
		container.NewTabItem("Alarms", sw.buildAlarmsTab()),
		container.NewTabItem("Today", sw.buildTodayTab()),
	)

	// Save status label
	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	sw.saveButton = widget.NewButton("Save", sw.save)
	sw.saveButton.Importance = widget.HighImportance

	// Setting initial widget values fires their change callbacks
	sw.hasUnsavedChanges = false
	sw.saveButton.Disable()

	closeButton := widget.NewButton("Close", func() {
		sw.handleClose()
	})

	buttonRow := container.NewBorder(
		nil,
		nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		closeButton,
		container.NewHBox(),
	)

	content := container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil,
		nil,
		tabs,
	)

	sw.window.SetContent(content)
	sw.window.Resize(fyne.NewSize(720, 560))
	sw.window.CenterOnScreen()

	sw.setupKeyboardShortcuts()

	// Add close interceptor for unsaved changes
	sw.window.SetCloseIntercept(func() {
		sw.handleClose()
	})
}

// getConfigFromUI reads every tab back into a Config. It does not validate.
func (sw *SettingsWindow) getConfigFromUI() (*models.Config, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(sw.latEntry.Text), 64)
	if err != nil {
		return nil, fmt.Errorf("latitude must be a number")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(sw.lngEntry.Text), 64)
	if err != nil {
		return nil, fmt.Errorf("longitude must be a number")
	}

	offsets := models.CongregationOffsets{}
	for p, sel := range sw.offsetSelects {
		var val int
		if _, err := fmt.Sscanf(sel.Selected, "%d min", &val); err == nil {
			offsets[p] = val
		}
	}

	return &models.Config{
		AutoStart:           sw.autoStartCheck.Checked,
		Latitude:            lat,
		Longitude:           lng,
		Timezone:            strings.TrimSpace(sw.tzEntry.Text),
		Position:            strings.ToLower(sw.positionRadio.Selected),
		Active:              sw.activeCheck.Checked,
		Language:            languageCode(sw.languageSelect.Selected),
		CongregationEnabled: sw.congregationCheck.Checked,
		CongregationOffsets: offsets.Clone(),
		QuoteReminders:      sw.quoteCheck.Checked,
		Chime:               sw.chimeCheck.Checked,
		AsrConvention:       strings.ToLower(sw.asrRadio.Selected),
	}, nil
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}

func (sw *SettingsWindow) save() {
	newConfig, err := sw.getConfigFromUI()
	if err == nil {
		err = newConfig.Validate()
	}
	if err != nil {
		sw.setStatus("Error: "+err.Error(), widget.DangerImportance)
		return
	}

	sw.saveButton.Disable()
	sw.setStatus("Saving...", widget.MediumImportance)

	go func() {
		if err := platform.SetAutostart(newConfig.AutoStart); err != nil {
			log.Error().Err(err).Msg("Error setting autostart")
			fyne.Do(func() {
				sw.setStatus("Error: Failed to set autostart", widget.DangerImportance)
				sw.updateSaveButtonState()
			})
			return
		}

		sw.configStore.Save(newConfig)
		if sw.onSave != nil {
			sw.onSave(newConfig)
		}

		fyne.Do(func() {
			sw.config = newConfig
			sw.hasUnsavedChanges = false
			sw.setStatus(savedMessage, widget.SuccessImportance)
			sw.updateSaveButtonState()

			// Clear success message after 3 seconds
			go func() {
				time.Sleep(3 * time.Second)
				fyne.Do(func() {
					if sw.saveStatusLabel.Text == savedMessage {
						sw.setStatus("", widget.SuccessImportance)
					}
				})
			}()
		})
	}()
}

func (sw *SettingsWindow) setStatus(text string, importance widget.Importance) {
	sw.saveStatusLabel.SetText(text)
	sw.saveStatusLabel.Importance = importance
	sw.saveStatusLabel.Refresh()
}

// markChanged marks the config as having unsaved changes
func (sw *SettingsWindow) markChanged() {
	sw.hasUnsavedChanges = true
	sw.updateSaveButtonState()
}

// updateSaveButtonState enables or disables the save button based on changes
func (sw *SettingsWindow) updateSaveButtonState() {
	if sw.saveButton == nil {
		return
	}
	if sw.hasUnsavedChanges {
		sw.saveButton.Enable()
	} else {
		sw.saveButton.Disable()
	}
}

// handleClose handles window close with unsaved changes check
func (sw *SettingsWindow) handleClose() {
	if sw.hasActualChanges() {
		dialog.ShowConfirm("Unsaved Changes",
			"You have unsaved changes. Are you sure you want to close?",
			func(confirmed bool) {
				if confirmed {
					sw.window.Close()
				}
			}, sw.window)
	} else {
		sw.window.Close()
	}
}

// hasActualChanges checks if the current UI state differs from the saved config
func (sw *SettingsWindow) hasActualChanges() bool {
	current, err := sw.getConfigFromUI()
	if err != nil {
		// unparsable input is a change the user has not saved
		return true
	}

	return models.Diff(sw.config, current) != models.ChangeNone ||
		current.AutoStart != sw.config.AutoStart ||
		current.Chime != sw.config.Chime
}

func (sw *SettingsWindow) setupKeyboardShortcuts() {
	// Cmd+S (Mac) or Ctrl+S (Windows/Linux) to save
	sw.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyS,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) {
		if sw.hasUnsavedChanges {
			sw.save()
		}
	})

	// Escape key to close
	sw.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			sw.handleClose()
		}
	})
}
