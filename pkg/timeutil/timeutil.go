package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// timestampPattern accepts HH:MM:SS.mmm. Only the hour field may be wider
// than two digits.
var timestampPattern = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2})\.(\d{3})$`)

// MaxHours is the largest hour field whose total still fits in int64
// milliseconds.
const MaxHours = math.MaxInt64/3_600_000 - 1

// TimestampError reports a timestamp that could not be decoded.
// File and Line are filled in by callers that know where the text came from.
type TimestampError struct {
	Text  string
	Field string
	Value int64
	File  string
	Line  int
}

func (e *TimestampError) Error() string {
	var msg string
	switch e.Field {
	case "format":
		msg = fmt.Sprintf("invalid timestamp '%s': expected HH:MM:SS.mmm", e.Text)
	case "hours":
		msg = fmt.Sprintf("invalid timestamp '%s': hours must be <= %d", e.Text, MaxHours)
	case "milliseconds":
		msg = fmt.Sprintf("invalid timestamp '%s': milliseconds must be < 1000 (got %d)", e.Text, e.Value)
	default:
		msg = fmt.Sprintf("invalid timestamp '%s': %s must be < 60 (got %d)", e.Text, e.Field, e.Value)
	}
	if e.Line > 0 {
		if e.File != "" {
			return fmt.Sprintf("%s (%s line %d)", msg, e.File, e.Line)
		}
		return fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	return msg
}

// ParseTimestamp decodes an HH:MM:SS.mmm timestamp into seconds.
func ParseTimestamp(text string) (float64, error) {
	m := timestampPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, &TimestampError{Text: text, Field: "format"}
	}

	hours, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || hours > MaxHours {
		return 0, &TimestampError{Text: text, Field: "hours", Value: hours}
	}

	var fields [3]int64
	for i := range fields {
		v, err := strconv.ParseInt(m[i+2], 10, 64)
		if err != nil {
			return 0, &TimestampError{Text: text, Field: "format"}
		}
		fields[i] = v
	}
	minutes, seconds, millis := fields[0], fields[1], fields[2]

	if minutes >= 60 {
		return 0, &TimestampError{Text: text, Field: "minutes", Value: minutes}
	}
	if seconds >= 60 {
		return 0, &TimestampError{Text: text, Field: "seconds", Value: seconds}
	}
	if millis >= 1000 {
		return 0, &TimestampError{Text: text, Field: "milliseconds", Value: millis}
	}

	return float64(hours)*3600 + float64(minutes*60+seconds) + float64(millis)/1000, nil
}

// FormatTimestamp encodes seconds as HH:MM:SS.mmm, rounding half-up to the
// nearest millisecond. A rounded remainder of 1000ms carries into the seconds.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(math.Floor(seconds*1000 + 0.5))
	ms := total % 1000
	totalSecs := total / 1000
	hours := totalSecs / 3600
	mins := (totalSecs % 3600) / 60
	secs := totalSecs % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, mins, secs, ms)
}

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}
