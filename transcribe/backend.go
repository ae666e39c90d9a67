// Package transcribe turns a video's speech into transcript spans.
package transcribe

import (
	"context"
	"strings"

	"github.com/user/vcut/transcript"
)

// Word is a single recognised word with its timing.
type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"word"`
}

// Segment is a span of recognised speech as reported by the engine.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Options configures a transcription run.
type Options struct {
	Model    string
	Language string
	// WordTimestamps asks the engine for per-word timings, needed by ChunkWords.
	WordTimestamps bool
	// Progress, if set, is called with the seconds of audio processed so far
	// and the total audio duration.
	Progress func(done, total float64)
}

// Backend is a speech-to-text engine.
type Backend interface {
	Transcribe(ctx context.Context, audioPath string, opts Options) ([]Segment, error)
}

// Spans converts engine segments directly into transcript spans.
func Spans(segments []Segment) []transcript.Span {
	spans := make([]transcript.Span, 0, len(segments))
	for _, s := range segments {
		spans = append(spans, transcript.Span{Start: s.Start, End: s.End, Text: strings.TrimSpace(s.Text)})
	}
	return spans
}
