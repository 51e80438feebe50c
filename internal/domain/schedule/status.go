package schedule

import "github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanCancel : un rendez-vous programmé ou confirmé peut être annulé
func CanCancel(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanConfirm : seul un rendez-vous programmé peut être confirmé
func CanConfirm(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete : un rendez-vous programmé ou confirmé peut être honoré
func CanComplete(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}

// ExcludesFromAvailability : statuts qui occupent le créneau
func ExcludesFromAvailability(current Status) bool {
	return current != StatusCancelled
}
