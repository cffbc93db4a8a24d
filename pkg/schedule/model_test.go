package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWindowsAppliesBuffers(t *testing.T) {
	windows, err := BuildWindows(sampleRaw(), WindowOptions{AsrConvention: models.AsrHanafi})
	require.NoError(t, err)
	require.Len(t, windows, 5)

	expected := []struct {
		prayer     models.Prayer
		start, end time.Time
	}{
		{models.Fajr, at(5, 0), at(6, 20)},
		{models.Dhuhr, at(12, 7), at(15, 40)},
		{models.Asr, at(15, 40), at(17, 55)},
		{models.Maghrib, at(18, 2), at(19, 20)},
		{models.Isha, at(19, 20), at(5, 0).Add(24 * time.Hour)},
	}

	for i, want := range expected {
		w := windows[i]
		assert.Equal(t, want.prayer, w.Prayer, "window %d", i)
		assert.Equal(t, models.WindowBase, w.Kind, "window %d", i)
		assert.True(t, want.start.Equal(w.Start), "%s start: got %s", w.Name, w.Start)
		assert.True(t, want.end.Equal(w.End), "%s end: got %s", w.Name, w.End)
	}
}

func TestBuildWindowsStandardAsr(t *testing.T) {
	windows, err := BuildWindows(sampleRaw(), WindowOptions{AsrConvention: models.AsrStandard})
	require.NoError(t, err)

	assert.True(t, windows[1].End.Equal(at(15, 5)))
	assert.True(t, windows[2].Start.Equal(at(15, 5)))
}

func TestBuildWindowsCongregation(t *testing.T) {
	windows, err := BuildWindows(sampleRaw(), WindowOptions{
		Congregation: true,
		Offsets:      models.DefaultCongregationOffsets(),
	})
	require.NoError(t, err)
	require.Len(t, windows, 10)

	for i := 0; i < len(windows); i += 2 {
		base, cong := windows[i], windows[i+1]
		assert.Equal(t, models.WindowBase, base.Kind)
		assert.Equal(t, models.WindowCongregation, cong.Kind)
		assert.Equal(t, base.Prayer, cong.Prayer)
		assert.Equal(t, base.Name+" congregation", cong.Name)
		assert.True(t, base.End.Equal(cong.End))
	}

	assert.True(t, windows[3].Start.Equal(at(12, 37)), "dhuhr congregation starts 30m after onset")
	assert.True(t, windows[5].Start.Equal(at(16, 25)), "asr congregation starts 45m after onset")
}

func TestBuildWindowsCollapsedCongregation(t *testing.T) {
	offsets := models.DefaultCongregationOffsets()
	offsets[models.Maghrib] = 90

	windows, err := BuildWindows(sampleRaw(), WindowOptions{Congregation: true, Offsets: offsets})
	require.NoError(t, err)

	maghribCong := windows[7]
	assert.Equal(t, "Maghrib congregation", maghribCong.Name)
	assert.True(t, maghribCong.Empty())
	assert.Zero(t, maghribCong.Duration())
	assert.False(t, maghribCong.Contains(at(19, 0)))
}

func TestBuildWindowsRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RawSchedule)
		field  string
	}{
		{"missing sunrise", func(r *models.RawSchedule) { r.Times.Sunrise = time.Time{} }, "sunrise"},
		{"missing hanafi asr", func(r *models.RawSchedule) { r.Times.Asr2 = time.Time{} }, "asr2"},
		{"noon before sunrise", func(r *models.RawSchedule) { r.Times.Noon = at(6, 0) }, "noon"},
		{"maghrib before sunset", func(r *models.RawSchedule) { r.Times.Maghrib = at(17, 59) }, "maghrib"},
		{"isha a day later", func(r *models.RawSchedule) { r.Times.Isha = at(19, 20).Add(24 * time.Hour) }, "isha"},
		{"tahajjud a day later", func(r *models.RawSchedule) { r.Times.Night6 = at(5, 0).Add(25 * time.Hour) }, "Tahajjud (1/6)"},
		{"sehri a day early", func(r *models.RawSchedule) { r.Times.Sehri = at(4, 50).Add(-24 * time.Hour) }, "Sehri"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := sampleRaw()
			tt.mutate(&raw)

			windows, err := BuildWindows(raw, WindowOptions{})
			require.Error(t, err)
			assert.Nil(t, windows)
			assert.True(t, errors.Is(err, ErrMalformedSchedule))

			var malformed *MalformedScheduleError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestBuildWindowsHanafiIgnoresMissingShafiAsr(t *testing.T) {
	raw := sampleRaw()
	raw.Times.Asr1 = time.Time{}

	_, err := BuildWindows(raw, WindowOptions{AsrConvention: models.AsrHanafi})
	assert.NoError(t, err)

	_, err = BuildWindows(raw, WindowOptions{AsrConvention: models.AsrStandard})
	assert.ErrorIs(t, err, ErrMalformedSchedule)
}

func TestBuildWindowsMaghribMayEqualSunset(t *testing.T) {
	raw := sampleRaw()
	raw.Times.Maghrib = raw.Times.Sunset

	_, err := BuildWindows(raw, WindowOptions{})
	assert.NoError(t, err)
}

func TestBuildWindowsRejectsNegativeOffset(t *testing.T) {
	offsets := models.DefaultCongregationOffsets()
	offsets[models.Isha] = -5

	_, err := BuildWindows(sampleRaw(), WindowOptions{Congregation: true, Offsets: offsets})
	assert.ErrorIs(t, err, ErrMalformedSchedule)
}

func TestBuildDaySnapshotsOffsets(t *testing.T) {
	offsets := models.DefaultCongregationOffsets()
	fetchedAt := at(4, 0)

	day, err := BuildDay(sampleRaw(), WindowOptions{Congregation: true, Offsets: offsets}, fetchedAt)
	require.NoError(t, err)

	offsets[models.Fajr] = 99
	assert.Equal(t, 30, day.Offsets[models.Fajr])
	assert.True(t, day.Congregation)
	assert.Equal(t, fetchedAt, day.FetchedAt)

	dhuhr, ok := day.BaseWindow(models.Dhuhr)
	require.True(t, ok)
	assert.True(t, dhuhr.Start.Equal(at(12, 7)))
}
