package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/prayer-bar/pkg/calendar"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/borgmon/prayer-bar/pkg/schedule"
	"github.com/rs/zerolog/log"
)

// showAllTodayWindow lists every instant of the day in a small standalone window
func showAllTodayWindow(app fyne.App, day *models.ScheduleDay) {
	location, rows := schedule.Listing(day.Raw)

	form := container.New(layout.NewFormLayout())
	for _, row := range rows {
		label := widget.NewLabel(row.Label + ":")
		label.TextStyle.Bold = true
		form.Add(label)
		form.Add(widget.NewLabel(row.Value))
	}

	header := widget.NewLabel(fmt.Sprintf("Location: %s", location))
	header.Importance = widget.HighImportance

	w := app.NewWindow("Prayer Times - " + day.Raw.Date)
	closeButton := widget.NewButton("Close", func() {
		w.Close()
	})

	w.SetContent(container.NewPadded(container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()),
		container.NewHBox(layout.NewSpacer(), closeButton),
		nil,
		nil,
		form,
	)))
	w.Resize(fyne.NewSize(360, 420))
	w.CenterOnScreen()
	w.Show()
}

// showExportDialog asks where to save today's windows as an .ics file
func showExportDialog(parent fyne.Window, day *models.ScheduleDay) {
	if day == nil {
		dialog.ShowInformation("Nothing to Export", "Prayer times are not loaded yet.", parent)
		return
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		if writer == nil {
			return // cancelled
		}
		defer writer.Close()

		if err := calendar.Write(writer, day, day.Congregation); err != nil {
			log.Error().Err(err).Msg("Calendar export failed")
			dialog.ShowError(err, parent)
			return
		}
		log.Info().Str("uri", writer.URI().String()).Msg("Exported prayer windows")
	}, parent)

	save.SetFileName(fmt.Sprintf("prayer-times-%s.ics", day.Raw.Date))
	save.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
	save.Show()
}
