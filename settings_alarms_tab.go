package main

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/prayer-bar/pkg/audio"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/borgmon/prayer-bar/pkg/schedule"
)

// offsetOptions returns "0 min" to "120 min" in 5 minute steps, plus current if it is off-grid
func offsetOptions(current int) []string {
	options := []string{}
	for m := 0; m <= 120; m += 5 {
		if current > m-5 && current < m && current%5 != 0 {
			options = append(options, strconv.Itoa(current)+" min")
		}
		options = append(options, strconv.Itoa(m)+" min")
	}
	if current > 120 {
		options = append(options, strconv.Itoa(current)+" min")
	}
	return options
}

func (sw *SettingsWindow) buildAlarmsTab() fyne.CanvasObject {
	sw.congregationCheck = widget.NewCheck("Notify when the congregation starts", func(checked bool) {
		for _, sel := range sw.offsetSelects {
			if checked {
				sel.Enable()
			} else {
				sel.Disable()
			}
		}
		sw.markChanged()
	})

	sw.offsetSelects = map[models.Prayer]*widget.Select{}
	offsetsForm := container.New(layout.NewFormLayout())
	for _, p := range models.Prayers {
		current := sw.config.CongregationOffsets.Get(p)
		sel := widget.NewSelect(offsetOptions(current), func(value string) {
			sw.markChanged()
		})
		sel.SetSelected(strconv.Itoa(current) + " min")
		sw.offsetSelects[p] = sel

		offsetsForm.Add(widget.NewLabel(schedule.PrayerLabel(sw.config.Language, p)))
		offsetsForm.Add(sel)
	}
	sw.congregationCheck.SetChecked(sw.config.CongregationEnabled)
	if !sw.config.CongregationEnabled {
		for _, sel := range sw.offsetSelects {
			sel.Disable()
		}
	}

	sw.quoteCheck = widget.NewCheck("Remind me 5 minutes early with a quotation", func(checked bool) {
		sw.markChanged()
	})
	sw.quoteCheck.SetChecked(sw.config.QuoteReminders)

	sw.chimeCheck = widget.NewCheck("Play a chime at prayer time", func(checked bool) {
		sw.markChanged()
	})
	sw.chimeCheck.SetChecked(sw.config.Chime)

	previewButton := widget.NewButton("Play", func() {
		audio.PlayChime()
	})
	previewButton.Icon = theme.MediaPlayIcon()

	sw.asrRadio = widget.NewRadioGroup([]string{"Hanafi", "Standard"}, func(value string) {
		sw.markChanged()
	})
	sw.asrRadio.Horizontal = true
	if sw.config.AsrConvention == models.AsrStandard {
		sw.asrRadio.SetSelected("Standard")
	} else {
		sw.asrRadio.SetSelected("Hanafi")
	}

	congregationHelp := widget.NewLabel("Minutes after the prayer begins")
	congregationHelp.Importance = widget.MediumImportance

	asrHelp := widget.NewLabel("Hanafi starts Asr at the later (two shadow lengths) time")
	asrHelp.Wrapping = fyne.TextWrapWord
	asrHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(widget.NewLabel("Congregation:"), congregationHelp),
		container.NewVBox(sw.congregationCheck, offsetsForm),

		widget.NewLabel("Reminders:"),
		sw.quoteCheck,

		widget.NewLabel("Chime:"),
		container.NewHBox(sw.chimeCheck, previewButton),

		container.NewVBox(widget.NewLabel("Asr Time:"), asrHelp),
		sw.asrRadio,
	)

	content := container.NewVBox(
		widget.NewLabel("Alarm Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}
