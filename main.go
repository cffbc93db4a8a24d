package main

import (
	"context"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/borgmon/prayer-bar/pkg/fetcher"
	"github.com/borgmon/prayer-bar/pkg/logger"
	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/borgmon/prayer-bar/pkg/platform"
	"github.com/borgmon/prayer-bar/pkg/pump"
	"github.com/borgmon/prayer-bar/pkg/quotes"
	"github.com/borgmon/prayer-bar/pkg/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	_ "time/tzdata"
)

const appID = "com.borgmon.prayerbar"

type PrayerBar struct {
	app            fyne.App
	configStore    *store.ConfigStore
	pump           *pump.Pump
	tray           *trayDisplay
	settingsWindow *SettingsWindow

	ctx    context.Context
	cancel context.CancelFunc
}

func main() {
	logger.New(os.Getenv("PRAYERBAR_LOG_LEVEL"), true)

	pb := &PrayerBar{
		app: app.NewWithID(appID),
	}

	if err := pb.initialize(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start")
	}

	pb.run()
}

func (pb *PrayerBar) initialize() error {
	pb.ctx, pb.cancel = context.WithCancel(context.Background())
	pb.configStore = store.NewConfigStore(pb.app)
	config := pb.configStore.Load()

	// Sync autostart state with config on startup
	if err := platform.SetAutostart(config.AutoStart); err != nil {
		log.Warn().Err(err).Msg("Failed to setup autostart")
	}

	pb.configStore.Save(config)

	pb.tray = newTrayDisplay(pb)
	pb.pump = pump.New(config, pump.Deps{
		Fetcher:  fetcher.NewClient(fetcher.DefaultBaseURL, nil),
		Cache:    store.NewPrefsScheduleCache(pb.app),
		Display:  pb.tray,
		Notifier: newDesktopNotifier(pb.app),
		Quotes:   pb.loadQuotes(),
		Chimer:   chimePlayer{},
	})

	// still on the main goroutine, the driver is not running yet
	pb.tray.updateSystemTrayMenu()
	return nil
}

// loadQuotes prefers a quotes.json dropped into the app storage directory
func (pb *PrayerBar) loadQuotes() pump.QuoteSource {
	path := filepath.Join(pb.app.Storage().RootURI().Path(), "quotes.json")

	source, err := quotes.Load(afero.NewOsFs(), path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Ignoring quotation override")
		return quotes.Builtin()
	}
	return source
}

func (pb *PrayerBar) run() {
	pb.app.Lifecycle().SetOnStarted(func() {
		platform.HideDockIcon()
		go pb.pump.Run(pb.ctx)
	})
	pb.app.Lifecycle().SetOnStopped(func() {
		pb.cancel()
	})
	pb.app.Run()
}

func (pb *PrayerBar) showSettingsWindow() {
	// If settings window already exists, just bring it to front
	if pb.settingsWindow != nil && pb.settingsWindow.window != nil {
		platform.BringToFront()
		pb.settingsWindow.window.RequestFocus()
		pb.settingsWindow.window.Show()
		return
	}

	pb.settingsWindow = NewSettingsWindow(pb.app, pb.pump, pb.configStore, func(newConfig *models.Config) {
		pb.applyConfig(newConfig)
	})
	pb.settingsWindow.window.SetOnClosed(func() {
		pb.settingsWindow = nil
	})

	platform.BringToFront()
	pb.settingsWindow.Show()
}

// applyConfig hands new settings to the pump off the UI goroutine
func (pb *PrayerBar) applyConfig(newConfig *models.Config) {
	go func() {
		kind, err := pb.pump.ApplyConfig(pb.ctx, newConfig)
		if err != nil {
			log.Error().Err(err).Str("change", kind.String()).Msg("Failed to apply settings")
		}
		pb.tray.rebuild()
	}()
}

func (pb *PrayerBar) reloadNow() {
	go func() {
		if err := pb.pump.Load(pb.ctx); err != nil {
			log.Warn().Err(err).Msg("Manual reload failed")
		}
	}()
}

func (pb *PrayerBar) quit() {
	pb.cancel()
	pb.app.Quit()
}
