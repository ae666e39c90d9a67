// Package transcript reads and writes the line-oriented transcript format
// used to describe which parts of a video survive a render:
//
//	# comments and blank lines are ignored
//	[00:00:00.000 -> 00:00:02.500] | Hello.
//	[00:00:02.500 -> 00:00:05.000] | World.
package transcript

import (
	"fmt"

	"github.com/user/vcut/pkg/timeutil"
)

// Segment is a half-open [Start, End) range of the source media, in seconds.
type Segment struct {
	Start float64
	End   float64
}

// Duration returns the length of the segment in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("%s -> %s", timeutil.FormatTimestamp(s.Start), timeutil.FormatTimestamp(s.End))
}

// Span is a timed piece of text, as produced by speech recognition.
type Span struct {
	Start float64
	End   float64
	Text  string
}

// TotalDuration sums the durations of segs.
func TotalDuration(segs []Segment) float64 {
	var total float64
	for _, s := range segs {
		total += s.Duration()
	}
	return total
}
