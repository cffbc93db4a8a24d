package main

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/borgmon/prayer-bar/pkg/schedule"
	"github.com/rs/zerolog/log"
)

// trayDisplay renders the status indicator as the first or last entry of the system tray menu
type trayDisplay struct {
	pb *PrayerBar

	mu     sync.Mutex
	status string
	since  string
	hidden bool
}

func newTrayDisplay(pb *PrayerBar) *trayDisplay {
	return &trayDisplay{pb: pb, status: schedule.UnavailableLine(models.LanguageEnglish)}
}

func (t *trayDisplay) config() *models.Config {
	if t.pb.pump == nil {
		return models.DefaultConfig()
	}
	return t.pb.pump.Config()
}

func (t *trayDisplay) ShowActive(name, start, remaining string) {
	t.mu.Lock()
	t.status = schedule.StatusLine(t.config().Language, name, remaining)
	t.since = start
	t.hidden = false
	t.mu.Unlock()

	t.rebuild()
}

func (t *trayDisplay) ShowUnavailable() {
	t.mu.Lock()
	t.status = schedule.UnavailableLine(t.config().Language)
	t.since = ""
	t.hidden = false
	t.mu.Unlock()

	t.rebuild()
}

func (t *trayDisplay) Hide() {
	t.mu.Lock()
	t.hidden = true
	t.mu.Unlock()

	t.rebuild()
}

func (t *trayDisplay) ShowAllToday(day *models.ScheduleDay) {
	fyne.Do(func() {
		showAllTodayWindow(t.pb.app, day)
	})
}

// statusItems returns the indicator entries, or nothing while hidden
func (t *trayDisplay) statusItems() []*fyne.MenuItem {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hidden {
		return nil
	}

	statusItem := fyne.NewMenuItem(t.status, func() {
		t.pb.pump.ShowAllToday()
	})
	items := []*fyne.MenuItem{statusItem}

	if t.since != "" {
		sinceItem := fyne.NewMenuItem("  "+t.since, nil)
		sinceItem.Disabled = true
		items = append(items, sinceItem)
	}
	return items
}

func (t *trayDisplay) rebuild() {
	fyne.Do(t.updateSystemTrayMenu)
}

func (t *trayDisplay) updateSystemTrayMenu() {
	desk, ok := t.pb.app.(desktop.App)
	if !ok {
		log.Debug().Msg("No system tray available")
		return
	}

	actions := []*fyne.MenuItem{
		fyne.NewMenuItem("Show All Prayer Times", func() {
			t.pb.pump.ShowAllToday()
		}),
		fyne.NewMenuItem("Random Quote", func() {
			go t.pb.pump.ShowQuote()
		}),
		fyne.NewMenuItem("Refresh Now", func() {
			t.pb.reloadNow()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", func() {
			t.pb.showSettingsWindow()
		}),
	}

	status := t.statusItems()
	menuItems := []*fyne.MenuItem{}

	if len(status) > 0 && t.config().Position == models.PositionTop {
		menuItems = append(menuItems, status...)
		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems, actions...)

	if len(status) > 0 && t.config().Position == models.PositionBottom {
		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
		menuItems = append(menuItems, status...)
	}

	quitItem := fyne.NewMenuItem("Quit", func() {
		t.pb.quit()
	})
	quitItem.IsQuit = true
	menuItems = append(menuItems, fyne.NewMenuItemSeparator(), quitItem)

	menu := fyne.NewMenu("Prayer Bar", menuItems...)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(trayIcon)
}
