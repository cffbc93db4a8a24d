package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog/log"
)

// trayIcon is a crescent drawn at startup so the binary carries no asset files
var trayIcon = fyne.NewStaticResource("crescent.png", crescentPNG(64))

// crescentPNG draws a white crescent on a transparent square of the given size
func crescentPNG(size int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	r := float64(size) * 0.42
	cx, cy := float64(size)/2, float64(size)/2
	// the cut-out disc is shifted towards the upper right
	ox, oy := cx+r*0.45, cy-r*0.25

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			inMoon := (px-cx)*(px-cx)+(py-cy)*(py-cy) <= r*r
			inShadow := (px-ox)*(px-ox)+(py-oy)*(py-oy) <= r*r*0.8
			if inMoon && !inShadow {
				img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Error().Err(err).Msg("Failed to encode tray icon")
	}
	return buf.Bytes()
}
