// Package audio plays the prayer onset chime through oto.
package audio

import (
	"bytes"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog/log"
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

// Player is a single playback that can be cut short
type Player struct {
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// initAudioContext initializes the global audio context once
func initAudioContext(format *wavFormat) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize audio context")
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Debug().Int("sample_rate", format.SampleRate).Msg("Audio context initialized")
	})
}

// PlayChime plays the onset chime once without blocking
func PlayChime() *Player {
	return Play(Chime())
}

// Play plays WAV data once without blocking. Returns nil when no audio device is usable.
func Play(wavData []byte) *Player {
	format, audioData, err := parseWAV(wavData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse WAV data")
		return nil
	}

	initAudioContext(format)

	if !audioCtxReady || globalAudioCtx == nil {
		log.Warn().Msg("Audio context not ready, skipping chime")
		return nil
	}

	p := &Player{
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
	go p.play(audioData)

	return p
}

func (p *Player) play(audioData []byte) {
	defer close(p.done)

	player := globalAudioCtx.NewPlayer(bytes.NewReader(audioData))
	defer func() {
		if err := player.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close audio player")
		}
	}()

	player.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-p.stopChan:
			player.Pause()
			return
		case <-ticker.C:
		}
	}
}

// Stop cuts the playback short. Safe to call more than once and on a nil Player.
func (p *Player) Stop() {
	if p == nil {
		return
	}
	p.stopOnce.Do(func() { close(p.stopChan) })
}

// Wait blocks until playback has finished or was stopped
func (p *Player) Wait() {
	if p == nil {
		return
	}
	<-p.done
}
