package handlers

import (
	"time"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/timezone"
)

// fuseau officiel du cabinet, avec repli sur le défaut
func locationFromPractice(practice *models.Practice) *time.Location {
	if practice != nil {
		return timezone.Location(practice.Timezone)
	}
	return timezone.Location("")
}

func parseDateInPractice(practice *models.Practice, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromPractice(practice),
	)
}
