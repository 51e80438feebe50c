package validators

import "testing"

func TestIsClockValid(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, hm := range valid {
		if !IsClockValid(hm) {
			t.Errorf("%q should be valid", hm)
		}
	}

	invalid := []string{"", "9:30:00", "24:00", "09h30", "09:60"}
	for _, hm := range invalid {
		if IsClockValid(hm) {
			t.Errorf("%q should be invalid", hm)
		}
	}
}

func TestIsDateValid(t *testing.T) {
	valid := []string{"2026-09-07", "2024-02-29"}
	for _, d := range valid {
		if !IsDateValid(d) {
			t.Errorf("%q should be valid", d)
		}
	}

	invalid := []string{"", "07/09/2026", "2026-13-01", "2025-02-29"}
	for _, d := range invalid {
		if IsDateValid(d) {
			t.Errorf("%q should be invalid", d)
		}
	}
}
