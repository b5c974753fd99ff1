package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:\d+S)?)?$`)

// ConvertMinutesToDuration convert minutes to duration format string
// Example: 125 -> "2h 5m"
func ConvertMinutesToDuration(durationInMinutes int64) string {

	h := durationInMinutes / 60
	m := durationInMinutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

// ConvertISODurationToMinutes converts an itinerary duration to minutes, ignoring seconds.
// Example: "PT2H10M" -> 130, "P1DT3H" -> 1620. Returns false when the value is not a duration.
func ConvertISODurationToMinutes(duration string) (int64, bool) {
	match := isoDurationPattern.FindStringSubmatch(duration)
	if match == nil || duration == "P" || strings.HasSuffix(duration, "T") {
		return 0, false
	}

	var minutes int64
	for i, factor := range []int64{24 * 60, 60, 1} {
		if match[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(match[i+1], 10, 64)
		if err != nil {
			return 0, false
		}
		minutes += n * factor
	}

	return minutes, true
}

// FormatISODuration converts an itinerary duration to the "2h 10m" format,
// empty when the value cannot be read.
func FormatISODuration(duration string) string {
	minutes, ok := ConvertISODurationToMinutes(duration)
	if !ok {
		return ""
	}

	return ConvertMinutesToDuration(minutes)
}

// DatePart returns the date of a "2006-01-02T15:04:05" timestamp.
// Example: "2024-01-01T10:00:00" -> "2024-01-01"
func DatePart(timestamp string) string {
	date, _, _ := strings.Cut(timestamp, "T")

	return date
}
