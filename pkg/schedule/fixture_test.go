package schedule

import (
	"time"

	"github.com/borgmon/prayer-bar/pkg/models"
)

var dhaka = time.FixedZone("BDT", 6*60*60)

func at(hh, mm int) time.Time {
	return time.Date(2025, 3, 10, hh, mm, 0, 0, dhaka)
}

// sampleRaw mirrors a typical Dhaka day with local offsets already applied
func sampleRaw() models.RawSchedule {
	return models.RawSchedule{
		Date:     "2025-03-10",
		Location: "Dhaka",
		Timezone: "Asia/Dhaka",
		Times: models.RawTimes{
			Fajr:    at(5, 0),
			Sunrise: at(6, 20),
			Noon:    at(12, 5),
			Asr1:    at(15, 5),
			Asr2:    at(15, 40),
			Sunset:  at(18, 0),
			Maghrib: at(18, 2),
			Isha:    at(19, 20),
		},
	}
}
