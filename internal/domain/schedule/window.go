package schedule

import (
	"time"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
)

// ===============================
// Horloge murale "HH:MM"
// ===============================

// ClockOnDate projette une heure murale "HH:MM" sur une date donnée.
func ClockOnDate(hm string, date time.Time, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	), nil
}

func clockMinutes(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlaps teste le chevauchement de deux intervalles semi-ouverts [start, end).
// Des bornes qui se touchent ne se chevauchent pas.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ===============================
// Validation des fenêtres
// ===============================

type WindowInput struct {
	StartTime           string
	EndTime             string
	Active              bool
	ConsultationTypeIDs []uint
}

// ValidateWindows vérifie les fenêtres d'une journée type avant écriture :
// début < fin pour chacune, et pas de chevauchement entre fenêtres actives.
func ValidateWindows(windows []WindowInput) error {
	type span struct{ start, end int }
	var active []span

	for _, w := range windows {
		start, err := clockMinutes(w.StartTime)
		if err != nil {
			return httperr.ErrBusiness("invalid_range")
		}
		end, err := clockMinutes(w.EndTime)
		if err != nil {
			return httperr.ErrBusiness("invalid_range")
		}
		if start >= end {
			return httperr.ErrBusiness("invalid_range")
		}
		if w.Active {
			active = append(active, span{start, end})
		}
	}

	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			if active[i].start < active[j].end && active[i].end > active[j].start {
				return httperr.ErrBusiness("overlapping_windows")
			}
		}
	}

	return nil
}
