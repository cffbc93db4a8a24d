package main

import (
	"fyne.io/fyne/v2"
	"github.com/borgmon/prayer-bar/pkg/audio"
	"github.com/rs/zerolog/log"
)

const notificationTitle = "Prayer Bar"

// desktopNotifier sends OS notifications through Fyne
type desktopNotifier struct {
	app fyne.App
}

func newDesktopNotifier(app fyne.App) *desktopNotifier {
	return &desktopNotifier{app: app}
}

func (n *desktopNotifier) Notify(message string) {
	log.Debug().Str("message", message).Msg("Sending notification")
	fyne.Do(func() {
		n.app.SendNotification(fyne.NewNotification(notificationTitle, message))
	})
}

func (n *desktopNotifier) NotifyError(message string) {
	log.Error().Str("message", message).Msg("Sending error notification")
	fyne.Do(func() {
		n.app.SendNotification(fyne.NewNotification(notificationTitle+" - Error", message))
	})
}

// chimePlayer plays the onset chime through oto
type chimePlayer struct{}

func (chimePlayer) PlayChime() {
	audio.PlayChime()
}
