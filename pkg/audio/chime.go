package audio

import (
	"encoding/binary"
	"math"
	"time"
)

const chimeSampleRate = 44100

// chimeNotes is a descending two-note chime (E5, C5)
var chimeNotes = []struct {
	freq float64
	dur  time.Duration
}{
	{659.25, 600 * time.Millisecond},
	{523.25, 900 * time.Millisecond},
}

// Chime returns the onset chime as mono 16-bit WAV data
func Chime() []byte {
	var pcm []byte
	for _, note := range chimeNotes {
		pcm = append(pcm, tone(note.freq, note.dur)...)
	}
	return encodeWAV(wavFormat{SampleRate: chimeSampleRate, Channels: 1, BitDepth: 16}, pcm)
}

// tone renders a sine wave with a short attack and an exponential decay
func tone(freq float64, dur time.Duration) []byte {
	n := int(int64(dur) * chimeSampleRate / int64(time.Second))
	attack := chimeSampleRate / 100
	out := make([]byte, 2*n)

	for i := 0; i < n; i++ {
		t := float64(i) / chimeSampleRate
		env := math.Exp(-3 * t / dur.Seconds())
		if i < attack {
			env *= float64(i) / float64(attack)
		}
		sample := int16(0.4 * env * math.MaxInt16 * math.Sin(2*math.Pi*freq*t))
		binary.LittleEndian.PutUint16(out[2*i:], uint16(sample))
	}
	return out
}
