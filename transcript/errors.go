package transcript

import "fmt"

// location renders the " (file line N)" suffix shared by parse errors.
func location(file string, line int) string {
	if file == "" {
		return fmt.Sprintf(" (line %d)", line)
	}
	return fmt.Sprintf(" (%s line %d)", file, line)
}

// SegmentError reports a segment line whose start is not before its end.
type SegmentError struct {
	File  string
	Line  int
	Start string
	End   string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("invalid segment%s: start time (%s) must be before end time (%s)",
		location(e.File, e.Line), e.Start, e.End)
}

// OrderError reports a segment that starts before the previous segment.
// Reordering segments is not supported.
type OrderError struct {
	File     string
	Line     int
	Start    string
	Previous string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("out-of-order segment%s: segment starts at %s which is before the previous segment (%s); reordering segments is not supported",
		location(e.File, e.Line), e.Start, e.Previous)
}

// LineError reports a line that is neither blank, a comment, nor a segment.
// It is only returned when parsing in strict mode.
type LineError struct {
	File string
	Line int
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("unrecognized line%s: %q", location(e.File, e.Line), e.Text)
}
