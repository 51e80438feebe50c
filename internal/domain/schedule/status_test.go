package schedule

import (
	"testing"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
)

func TestCanCancel(t *testing.T) {
	if err := CanCancel(StatusScheduled); err != nil {
		t.Errorf("scheduled should be cancellable: %v", err)
	}
	if err := CanCancel(StatusConfirmed); err != nil {
		t.Errorf("confirmed should be cancellable: %v", err)
	}
	if err := CanCancel(StatusCompleted); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("completed must not be cancellable, got %v", err)
	}
	if err := CanCancel(StatusCancelled); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("cancelled must not be cancellable again, got %v", err)
	}
}

func TestCanConfirm(t *testing.T) {
	if err := CanConfirm(StatusScheduled); err != nil {
		t.Errorf("scheduled should be confirmable: %v", err)
	}
	for _, s := range []Status{StatusConfirmed, StatusCompleted, StatusCancelled} {
		if err := CanConfirm(s); !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("%s must not be confirmable, got %v", s, err)
		}
	}
}

func TestCanComplete(t *testing.T) {
	if err := CanComplete(StatusScheduled); err != nil {
		t.Errorf("scheduled should be completable: %v", err)
	}
	if err := CanComplete(StatusConfirmed); err != nil {
		t.Errorf("confirmed should be completable: %v", err)
	}
	if err := CanComplete(StatusCancelled); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("cancelled must not be completable, got %v", err)
	}
}

func TestExcludesFromAvailability(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusConfirmed, StatusCompleted} {
		if !ExcludesFromAvailability(s) {
			t.Errorf("%s should occupy its slot", s)
		}
	}
	if ExcludesFromAvailability(StatusCancelled) {
		t.Errorf("cancelled must free its slot")
	}
}
