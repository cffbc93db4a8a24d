package main

import (
	"os/exec"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/rs/zerolog/log"
)

var languageNames = map[string]string{
	models.LanguageEnglish: "English",
	models.LanguageBangla:  "বাংলা",
}

func languageCode(name string) string {
	for code, n := range languageNames {
		if n == name {
			return code
		}
	}
	return models.LanguageEnglish
}

func (sw *SettingsWindow) buildGeneralTab() fyne.CanvasObject {
	sw.autoStartCheck = widget.NewCheck("Auto Start on System Boot", func(checked bool) {
		sw.markChanged()
	})
	sw.autoStartCheck.SetChecked(sw.config.AutoStart)

	sw.activeCheck = widget.NewCheck("Show prayer status and fire alarms", func(checked bool) {
		sw.markChanged()
	})
	sw.activeCheck.SetChecked(sw.config.Active)

	sw.languageSelect = widget.NewSelect(
		[]string{languageNames[models.LanguageEnglish], languageNames[models.LanguageBangla]},
		func(value string) {
			sw.markChanged()
		})
	sw.languageSelect.SetSelected(languageNames[sw.config.Language])

	sw.positionRadio = widget.NewRadioGroup([]string{"Top", "Bottom"}, func(value string) {
		sw.markChanged()
	})
	sw.positionRadio.Horizontal = true
	if sw.config.Position == models.PositionBottom {
		sw.positionRadio.SetSelected("Bottom")
	} else {
		sw.positionRadio.SetSelected("Top")
	}

	// Storage root URI display (read-only)
	storageURIEntry := widget.NewEntry()
	storageURIEntry.SetText(sw.app.Storage().RootURI().String())
	storageURIEntry.Disable()

	openStorageButton := widget.NewButton("Open in File Manager", func() {
		path := sw.app.Storage().RootURI().Path()
		var cmd *exec.Cmd

		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", path)
		case "windows":
			cmd = exec.Command("explorer", path)
		case "linux":
			cmd = exec.Command("xdg-open", path)
		default:
			log.Warn().Str("os", runtime.GOOS).Msg("Unsupported OS for file manager")
			return
		}

		if err := cmd.Start(); err != nil {
			log.Error().Err(err).Msg("Error opening file manager")
		}
	})

	autoStartHelp := widget.NewLabel("Launch Prayer Bar automatically when your system starts")
	autoStartHelp.Importance = widget.MediumImportance

	activeHelp := widget.NewLabel("When off, the status line is hidden and no notifications are sent")
	activeHelp.Wrapping = fyne.TextWrapWord
	activeHelp.Importance = widget.MediumImportance

	positionHelp := widget.NewLabel("Where the status line sits in the tray menu")
	positionHelp.Importance = widget.MediumImportance

	storageHelp := widget.NewLabel("Settings live here. Drop a quotes.json here to replace the built-in quotations.")
	storageHelp.Wrapping = fyne.TextWrapWord
	storageHelp.Importance = widget.MediumImportance

	storageContainer := container.NewBorder(
		nil,
		container.NewPadded(openStorageButton),
		nil,
		nil,
		storageURIEntry,
	)

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(widget.NewLabel("Auto Start:"), autoStartHelp),
		sw.autoStartCheck,

		container.NewVBox(widget.NewLabel("Active:"), activeHelp),
		sw.activeCheck,

		widget.NewLabel("Language:"),
		sw.languageSelect,

		container.NewVBox(widget.NewLabel("Position:"), positionHelp),
		sw.positionRadio,

		container.NewVBox(widget.NewLabel("Storage Location:"), storageHelp),
		storageContainer,
	)

	content := container.NewVBox(
		widget.NewLabel("General Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}
