package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/prayer-bar/pkg/models"
)

func coordinateValidator(limit float64, name string) fyne.StringValidator {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%s must be a number", name)
		}
		if v < -limit || v > limit {
			return fmt.Errorf("%s must be within ±%.0f", name, limit)
		}
		return nil
	}
}

func (sw *SettingsWindow) buildLocationTab() fyne.CanvasObject {
	sw.latEntry = widget.NewEntry()
	sw.latEntry.SetText(strconv.FormatFloat(sw.config.Latitude, 'f', -1, 64))
	sw.latEntry.Validator = coordinateValidator(90, "latitude")
	sw.latEntry.OnChanged = func(string) { sw.markChanged() }

	sw.lngEntry = widget.NewEntry()
	sw.lngEntry.SetText(strconv.FormatFloat(sw.config.Longitude, 'f', -1, 64))
	sw.lngEntry.Validator = coordinateValidator(180, "longitude")
	sw.lngEntry.OnChanged = func(string) { sw.markChanged() }

	sw.tzEntry = widget.NewEntry()
	sw.tzEntry.SetPlaceHolder("Asia/Dhaka")
	sw.tzEntry.SetText(sw.config.Timezone)
	sw.tzEntry.Validator = func(s string) error {
		if _, err := time.LoadLocation(strings.TrimSpace(s)); err != nil || strings.TrimSpace(s) == "" {
			return fmt.Errorf("unknown IANA timezone")
		}
		return nil
	}
	sw.tzEntry.OnChanged = func(string) { sw.markChanged() }

	resetButton := widget.NewButton("Use Dhaka", func() {
		def := models.DefaultConfig()
		sw.latEntry.SetText(strconv.FormatFloat(def.Latitude, 'f', -1, 64))
		sw.lngEntry.SetText(strconv.FormatFloat(def.Longitude, 'f', -1, 64))
		sw.tzEntry.SetText(def.Timezone)
	})

	localButton := widget.NewButton("Use System Timezone", func() {
		if name := time.Local.String(); name != "Local" {
			sw.tzEntry.SetText(name)
		}
	})

	coordsHelp := widget.NewLabel("Decimal degrees, north and east positive")
	coordsHelp.Importance = widget.MediumImportance

	tzHelp := widget.NewLabel("IANA name. Prayer times are shown and fired in this timezone.")
	tzHelp.Wrapping = fyne.TextWrapWord
	tzHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(widget.NewLabel("Latitude:"), coordsHelp),
		sw.latEntry,

		widget.NewLabel("Longitude:"),
		sw.lngEntry,

		container.NewVBox(widget.NewLabel("Timezone:"), tzHelp),
		container.NewVBox(sw.tzEntry, container.NewHBox(localButton, resetButton)),
	)

	content := container.NewVBox(
		widget.NewLabel("Location"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}
