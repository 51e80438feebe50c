package schedule

import (
	"time"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
)

// ===============================
// Résolution de disponibilité
// ===============================

type AvailabilityInput struct {
	DoctorID           uint
	ConsultationTypeID uint // 0 → granularité par défaut du cabinet, sans filtrage de fenêtre
	Date               time.Time
}

type Slot struct {
	Time      time.Time `json:"time"`
	Available bool      `json:"available"`
}

// CandidateWindow est une fenêtre horaire projetée sur la date demandée.
type CandidateWindow struct {
	Start time.Time
	End   time.Time
}

// windowAllowsType : un ensemble vide autorise tous les types.
func windowAllowsType(w *models.TimeSlotWindow, typeID uint) bool {
	if typeID == 0 || len(w.ConsultationTypeIDs) == 0 {
		return true
	}
	for _, id := range w.ConsultationTypeIDs {
		if id == typeID {
			return true
		}
	}
	return false
}

// ExpandDay déroule la journée type sur la date demandée : fenêtres actives,
// filtrées par type de consultation, dans l'ordre configuré. Les exceptions de
// calendrier (événements, absences) ne sont pas traitées ici — la semaine type
// définit la normale, l'exclusion soustrait les anomalies.
func ExpandDay(
	day *models.TimePlanDay,
	date time.Time,
	loc *time.Location,
	typeID uint,
) []CandidateWindow {

	if day == nil || !day.Active {
		return nil
	}

	var out []CandidateWindow
	for i := range day.Windows {
		w := &day.Windows[i]
		if !w.Active || !windowAllowsType(w, typeID) {
			continue
		}

		start, err := ClockOnDate(w.StartTime, date, loc)
		if err != nil {
			continue
		}
		end, err := ClockOnDate(w.EndTime, date, loc)
		if err != nil || !end.After(start) {
			continue
		}

		out = append(out, CandidateWindow{Start: start, End: end})
	}

	return out
}

// GenerateSlotStarts découpe une fenêtre en créneaux de durée fixe. Le curseur
// avance de duration+rest ; un créneau qui déborderait la fenêtre n'est pas
// produit.
func GenerateSlotStarts(
	w CandidateWindow,
	duration time.Duration,
	rest time.Duration,
) []time.Time {

	if duration <= 0 {
		return nil
	}

	var starts []time.Time
	for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(duration + rest) {
		starts = append(starts, cur)
	}
	return starts
}

// Exclusions est l'instantané des trois sources de conflit pour une journée.
// Les collections sont supposées déjà filtrées par le dépôt : rendez-vous non
// annulés / non supprimés, événements bloquants couvrant la date, absences
// couvrant la date.
type Exclusions struct {
	Appointments []models.Appointment
	Events       []models.Event
	TimeOffs     []models.TimeOffPeriod

	Date time.Time
	Loc  *time.Location
}

// Blocks teste si le créneau [start, end) est indisponible.
func (x *Exclusions) Blocks(start, end time.Time) bool {
	// Absence : journée entièrement bloquée
	if len(x.TimeOffs) > 0 {
		return true
	}

	for i := range x.Events {
		ev := &x.Events[i]
		if ev.StartTime == "" || ev.EndTime == "" {
			// sans heures, l'événement bloque la journée
			return true
		}
		evStart, err := ClockOnDate(ev.StartTime, x.Date, x.Loc)
		if err != nil {
			return true
		}
		evEnd, err := ClockOnDate(ev.EndTime, x.Date, x.Loc)
		if err != nil {
			return true
		}
		if Overlaps(start, end, evStart, evEnd) {
			return true
		}
	}

	for i := range x.Appointments {
		ap := &x.Appointments[i]
		if Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return true
		}
	}

	return false
}

// BuildSlots assemble la séquence ordonnée de créneaux pour des fenêtres
// candidates, en marquant chaque créneau selon les exclusions.
func BuildSlots(
	windows []CandidateWindow,
	duration time.Duration,
	rest time.Duration,
	excl *Exclusions,
) []Slot {

	slots := []Slot{}
	for _, w := range windows {
		for _, start := range GenerateSlotStarts(w, duration, rest) {
			slots = append(slots, Slot{
				Time:      start,
				Available: !excl.Blocks(start, start.Add(duration)),
			})
		}
	}
	return slots
}

// WithinTimeplan vérifie qu'un rendez-vous [start, end) tient dans une fenêtre
// active de la journée type et que le type de consultation y est autorisé.
func WithinTimeplan(
	day *models.TimePlanDay,
	start time.Time,
	end time.Time,
	typeID uint,
	loc *time.Location,
) bool {

	for _, w := range ExpandDay(day, start, loc, typeID) {
		if !start.Before(w.Start) && !end.After(w.End) {
			return true
		}
	}
	return false
}
