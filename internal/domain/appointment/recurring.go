package appointment

import (
	"time"

	"github.com/candraczapansky/software-sub012/internal/httperr"
)

type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyTriweekly Frequency = "triweekly"
	FrequencyMonthly   Frequency = "monthly"
)

const (
	MinOccurrences = 2
	MaxOccurrences = 52
)

func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyTriweekly, FrequencyMonthly:
		return Frequency(s), nil
	}
	return "", httperr.ErrBusiness("invalid_frequency")
}

// IndefiniteCap maps an open-ended series to roughly one year of occurrences.
func (f Frequency) IndefiniteCap() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencyTriweekly:
		return 17
	case FrequencyMonthly:
		return 12
	}
	return 0
}

func (f Frequency) intervalWeeks() int {
	switch f {
	case FrequencyWeekly:
		return 1
	case FrequencyBiweekly:
		return 2
	case FrequencyTriweekly:
		return 3
	}
	return 0
}

// OccurrenceTimes expands a base start into the whole series, preserving
// time-of-day. Monthly cadence uses calendar months; the others fixed weeks.
// Occurrence 0 is the base itself.
func OccurrenceTimes(base time.Time, f Frequency, count int) ([]time.Time, error) {
	if count < MinOccurrences || count > MaxOccurrences {
		return nil, httperr.ErrBusiness("invalid_occurrence_count")
	}

	out := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		if f == FrequencyMonthly {
			out = append(out, base.AddDate(0, i, 0))
			continue
		}
		out = append(out, base.AddDate(0, 0, i*7*f.intervalWeeks()))
	}
	return out, nil
}
