package schedule

import (
	"testing"
	"time"

	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindows(t *testing.T, congregation bool) []models.PrayerWindow {
	t.Helper()
	windows, err := BuildWindows(sampleRaw(), WindowOptions{
		Congregation: congregation,
		Offsets:      models.DefaultCongregationOffsets(),
	})
	require.NoError(t, err)
	return windows
}

func TestClassifyActiveDhuhr(t *testing.T) {
	c := Classify(at(12, 7), mustWindows(t, false))

	assert.Equal(t, StateActive, c.State)
	assert.Equal(t, models.Dhuhr, c.Prayer)
	assert.Equal(t, "Dhuhr", c.Name)
	assert.True(t, c.WindowStart.Equal(at(12, 7)))
	assert.Equal(t, 3*time.Hour+33*time.Minute, c.Remaining)

	h, m := SplitRemaining(c.Remaining)
	assert.Equal(t, 3, h)
	assert.Equal(t, 33, m)
}

func TestClassifyNoonBufferReportsDhuhrNotStarted(t *testing.T) {
	c := Classify(at(12, 6), mustWindows(t, false))

	assert.Equal(t, StateUpcoming, c.State)
	assert.Equal(t, models.Dhuhr, c.Prayer)
	assert.Equal(t, time.Minute, c.Remaining)
}

func TestClassifyPostSunriseGap(t *testing.T) {
	c := Classify(at(6, 45), mustWindows(t, false))

	assert.Equal(t, StateUpcoming, c.State)
	assert.Equal(t, "Next: Dhuhr", c.Name)
	assert.True(t, c.WindowStart.Equal(at(12, 7)))
	assert.Equal(t, 5*time.Hour+22*time.Minute, c.Remaining)
}

func TestClassifyPreMaghribGap(t *testing.T) {
	windows := mustWindows(t, false)

	c := Classify(at(17, 56), windows)
	assert.Equal(t, StateUpcoming, c.State)
	assert.Equal(t, "Next: Maghrib", c.Name)
	assert.Equal(t, 6*time.Minute, c.Remaining)

	c = Classify(at(17, 54), windows)
	assert.Equal(t, StateActive, c.State)
	assert.Equal(t, models.Asr, c.Prayer)
	assert.Equal(t, time.Minute, c.Remaining)
}

func TestClassifyPostMaghribGap(t *testing.T) {
	raw := sampleRaw()
	windows, err := BuildWindows(raw, WindowOptions{})
	require.NoError(t, err)

	// shorten Maghrib so a gap opens before Isha
	windows[3].End = at(19, 0)

	c := Classify(at(19, 10), windows)
	assert.Equal(t, StateUpcoming, c.State)
	assert.Equal(t, "Next: Isha", c.Name)
	assert.Equal(t, 10*time.Minute, c.Remaining)
}

func TestClassifyBaseShadowsCongregation(t *testing.T) {
	c := Classify(at(12, 40), mustWindows(t, true))

	assert.Equal(t, StateActive, c.State)
	assert.Equal(t, models.WindowBase, c.Kind)
	assert.Equal(t, "Dhuhr", c.Name)
}

func TestClassifySmallHoursCarryIsha(t *testing.T) {
	c := Classify(at(2, 0), mustWindows(t, false))

	assert.Equal(t, StateActive, c.State)
	assert.Equal(t, models.Isha, c.Prayer)
	assert.True(t, c.WindowStart.Equal(at(19, 20).Add(-24*time.Hour)))
	assert.Equal(t, 3*time.Hour, c.Remaining)
}

func TestClassifyLateNightIsha(t *testing.T) {
	c := Classify(at(23, 30), mustWindows(t, false))

	assert.Equal(t, StateActive, c.State)
	assert.Equal(t, models.Isha, c.Prayer)
	assert.Equal(t, 5*time.Hour+30*time.Minute, c.Remaining)
}

func TestClassifyUnknownWhenStale(t *testing.T) {
	windows := mustWindows(t, false)

	c := Classify(at(6, 0).Add(24*time.Hour), windows)
	assert.Equal(t, StateUnknown, c.State)
	assert.Equal(t, "N/A", c.Name)

	c = Classify(at(18, 0).Add(-24*time.Hour), windows)
	assert.Equal(t, StateUnknown, c.State)

	assert.Equal(t, StateUnknown, Classify(at(12, 0), nil).State)
}

func TestClassifyCoversWholeDay(t *testing.T) {
	for _, congregation := range []bool{false, true} {
		windows := mustWindows(t, congregation)
		start := at(5, 0)

		for ts := start; ts.Before(start.Add(24 * time.Hour)); ts = ts.Add(time.Minute) {
			c := Classify(ts, windows)
			require.NotEqual(t, StateUnknown, c.State, "unclassified instant %s", ts)

			baseHits := 0
			for _, w := range windows {
				if w.Kind == models.WindowBase && w.Contains(ts) {
					baseHits++
				}
			}
			require.LessOrEqual(t, baseHits, 1, "instant %s in %d base windows", ts, baseHits)

			if c.State == StateActive {
				for _, w := range windows {
					if w.Contains(ts) {
						assert.Equal(t, w.End.Sub(ts), c.Remaining)
						break
					}
				}
			}
		}
	}
}

func TestGapsListsKnownGaps(t *testing.T) {
	gaps := Gaps(mustWindows(t, true))
	require.Len(t, gaps, 2)

	assert.Equal(t, models.Dhuhr, gaps[0].Prayer)
	assert.True(t, gaps[0].Start.Equal(at(6, 20)))
	assert.True(t, gaps[0].End.Equal(at(12, 7)))

	assert.Equal(t, models.Maghrib, gaps[1].Prayer)
	assert.True(t, gaps[1].Start.Equal(at(17, 55)))
	assert.True(t, gaps[1].End.Equal(at(18, 2)))
}
