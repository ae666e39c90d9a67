package transcribe

import (
	"strings"

	"github.com/user/vcut/transcript"
)

// ChunkWords regroups word timings into spans of roughly chunkSize seconds.
// A chunk closes on the first word whose end is at least chunkSize past the
// chunk's start; leftover words form a final, shorter chunk. Segments without
// word timings contribute nothing.
func ChunkWords(segments []Segment, chunkSize float64) []transcript.Span {
	var words []Word
	for _, s := range segments {
		words = append(words, s.Words...)
	}
	if len(words) == 0 {
		return []transcript.Span{}
	}

	var spans []transcript.Span
	var text strings.Builder
	chunkStart := words[0].Start
	open := false

	for _, w := range words {
		if !open {
			chunkStart = w.Start
			open = true
		}
		text.WriteString(w.Text)

		if w.End-chunkStart >= chunkSize {
			spans = append(spans, transcript.Span{
				Start: chunkStart,
				End:   w.End,
				Text:  strings.TrimSpace(text.String()),
			})
			text.Reset()
			open = false
		}
	}

	if open {
		spans = append(spans, transcript.Span{
			Start: chunkStart,
			End:   words[len(words)-1].End,
			Text:  strings.TrimSpace(text.String()),
		})
	}

	return spans
}
