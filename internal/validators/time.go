package validators

import "time"

// IsValidTimeOfDay accepts 24h HH:MM strings, the format schedule rules
// store their times of day in.
func IsValidTimeOfDay(hm string) bool {
	if len(hm) != 5 {
		return false
	}
	_, err := time.Parse("15:04", hm)
	return err == nil
}
