package render

import (
	"errors"
	"fmt"

	"github.com/user/vcut/transcript"
)

// ErrNoSegments is returned when a render is requested for an empty segment list.
var ErrNoSegments = errors.New("no segments to render")

// diagnoser is implemented by errors that carry external tool output.
type diagnoser interface {
	Diagnostics() string
}

func diagnostics(err error) string {
	var d diagnoser
	if errors.As(err, &d) {
		return d.Diagnostics()
	}
	return ""
}

// ExtractionError reports a failed segment extraction. The render is aborted
// and no concatenation is attempted.
type ExtractionError struct {
	Index   int
	Segment transcript.Segment
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting segment %d (%s): %v", e.Index, e.Segment, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Diagnostics returns the media tool output for the failed extraction.
func (e *ExtractionError) Diagnostics() string {
	return diagnostics(e.Err)
}

// ConcatenationError reports a failed concatenation. The destination file is
// removed and must not be treated as a valid render.
type ConcatenationError struct {
	Manifest string
	Err      error
}

func (e *ConcatenationError) Error() string {
	return fmt.Sprintf("concatenating segments from %s: %v", e.Manifest, e.Err)
}

func (e *ConcatenationError) Unwrap() error {
	return e.Err
}

// Diagnostics returns the media tool output for the failed concatenation.
func (e *ConcatenationError) Diagnostics() string {
	return diagnostics(e.Err)
}
