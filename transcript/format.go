package transcript

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/user/vcut/pkg/timeutil"
)

// FormatLine renders one span as a segment line, without the newline.
func FormatLine(s Span) string {
	return fmt.Sprintf("[%s -> %s] | %s",
		timeutil.FormatTimestamp(s.Start),
		timeutil.FormatTimestamp(s.End),
		s.Text)
}

// Format writes spans as transcript lines, one per span, each newline-terminated.
// Spans are written as given; no ordering or merging is applied.
func Format(w io.Writer, spans []Span) error {
	bw := bufio.NewWriter(w)
	for _, s := range spans {
		if _, err := bw.WriteString(FormatLine(s) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatString is Format into a string.
func FormatString(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(FormatLine(s))
		sb.WriteByte('\n')
	}
	return sb.String()
}
