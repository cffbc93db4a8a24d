package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/borgmon/prayer-bar/pkg/schedule"
	"github.com/borgmon/prayer-bar/pkg/ui/components"
)

var alarmKindLabels = map[models.AlarmKind]string{
	models.AlarmPrayerOnset:       "Prayer time",
	models.AlarmCongregationOnset: "Congregation",
	models.AlarmPreReminder:       "Reminder",
}

func (sw *SettingsWindow) buildTodayTab() fyne.CanvasObject {
	sw.loadTodayData()

	sw.windowsTable = components.NewTextTable(
		[]string{"Window", "Start", "End", "Length"},
		[]float32{200, 90, 90, 90},
		func() int { return len(sw.windowsData) },
		func(row, col int) string {
			w := sw.windowsData[row]
			switch col {
			case 0:
				return w.Name
			case 1:
				return w.Start.Format("15:04")
			case 2:
				return w.End.Format("15:04")
			default:
				if w.Empty() {
					return "empty"
				}
				return schedule.FormatRemaining(w.Duration())
			}
		},
	)

	sw.alarmsTable = components.NewTextTable(
		[]string{"Time", "Kind", "Prayer", "Message"},
		[]float32{80, 120, 90, 300},
		func() int { return len(sw.alarmsData) },
		func(row, col int) string {
			a := sw.alarmsData[row]
			switch col {
			case 0:
				return a.FireAt.Format("15:04")
			case 1:
				return alarmKindLabels[a.Kind]
			case 2:
				return a.Prayer.String()
			default:
				return a.Message
			}
		},
	)

	refreshButton := widget.NewButton("Refresh", func() {
		sw.refreshTodayData()
	})
	refreshButton.Icon = theme.ViewRefreshIcon()

	showAllButton := widget.NewButton("Show All Prayer Times", func() {
		sw.pump.ShowAllToday()
	})
	showAllButton.Icon = theme.ListIcon()

	exportButton := widget.NewButton("Export .ics", func() {
		showExportDialog(sw.window, sw.pump.Day())
	})
	exportButton.Icon = theme.DocumentSaveIcon()

	helpText := widget.NewLabel("Windows are built from the last fetched schedule. Alarms that already fired are not listed.")
	helpText.Wrapping = fyne.TextWrapWord
	helpText.Importance = widget.MediumImportance

	header := container.NewVBox(
		widget.NewLabel("Today"),
		widget.NewSeparator(),
		helpText,
		container.NewHBox(refreshButton, showAllButton, exportButton),
	)

	split := container.NewVSplit(
		container.NewBorder(widget.NewLabel("Prayer windows"), nil, nil, nil, sw.windowsTable),
		container.NewBorder(widget.NewLabel("Pending alarms"), nil, nil, nil, sw.alarmsTable),
	)

	return container.NewPadded(container.NewBorder(header, nil, nil, nil, split))
}

func (sw *SettingsWindow) loadTodayData() {
	sw.windowsData = nil
	if day := sw.pump.Day(); day != nil {
		sw.windowsData = day.Windows
	}
	sw.alarmsData = sw.pump.Pending()
}

func (sw *SettingsWindow) refreshTodayData() {
	sw.loadTodayData()
	if sw.windowsTable != nil {
		sw.windowsTable.Refresh()
	}
	if sw.alarmsTable != nil {
		sw.alarmsTable.Refresh()
	}
}
