package validators

import "time"

// IsClockValid valide une heure murale "HH:MM".
func IsClockValid(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}

// IsDateValid valide une date calendaire "YYYY-MM-DD".
func IsDateValid(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
