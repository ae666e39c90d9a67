package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/user/vcut/pkg/timeutil"
)

// segmentLine matches the leading "[start -> end]" of a segment line. The
// hour field takes two or more digits so long recordings still round-trip.
var segmentLine = regexp.MustCompile(`^\[(\d{2,}:\d{2}:\d{2}\.\d{3})\s*->\s*(\d{2,}:\d{2}:\d{2}\.\d{3})\]`)

// ParseOptions controls how a transcript document is read.
type ParseOptions struct {
	// Name identifies the document in error messages (usually the file name).
	Name string
	// Strict rejects lines that are not blank, comments, or segment lines.
	// By default such lines are silently skipped.
	Strict bool
}

// ParseFile reads the transcript at path. The file's base name is used in
// error messages unless opts.Name is set.
func ParseFile(path string, opts ParseOptions) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if opts.Name == "" {
		opts.Name = filepath.Base(path)
	}
	return Parse(f, opts)
}

// Parse reads a transcript document and returns its canonical segment list.
//
// Segments must be listed in non-decreasing start order. A segment that starts
// inside the previous one is merged into it; one that starts at or after the
// previous end is appended. Parsing stops at the first invalid line and no
// partial list is returned.
func Parse(r io.Reader, opts ParseOptions) ([]Segment, error) {
	p := &parser{opts: opts, segments: []Segment{}}

	br := bufio.NewReader(r)
	lineNum := 0
	for {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			lineNum++
			if perr := p.line(lineNum, raw); perr != nil {
				return nil, perr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading transcript: %w", err)
		}
	}

	return p.segments, nil
}

// parser accumulates the canonical segment list line by line.
type parser struct {
	opts     ParseOptions
	segments []Segment
}

func (p *parser) line(lineNum int, raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	m := segmentLine.FindStringSubmatch(line)
	if m == nil {
		if p.opts.Strict {
			return &LineError{File: p.opts.Name, Line: lineNum, Text: line}
		}
		return nil
	}

	start, err := parseAt(m[1], p.opts.Name, lineNum)
	if err != nil {
		return err
	}
	end, err := parseAt(m[2], p.opts.Name, lineNum)
	if err != nil {
		return err
	}

	if start >= end {
		return &SegmentError{File: p.opts.Name, Line: lineNum, Start: m[1], End: m[2]}
	}

	if len(p.segments) == 0 {
		p.segments = append(p.segments, Segment{Start: start, End: end})
		return nil
	}

	prev := &p.segments[len(p.segments)-1]
	switch {
	case start >= prev.End:
		p.segments = append(p.segments, Segment{Start: start, End: end})
	case start >= prev.Start:
		prev.End = math.Max(prev.End, end)
	default:
		return &OrderError{
			File:     p.opts.Name,
			Line:     lineNum,
			Start:    m[1],
			Previous: timeutil.FormatTimestamp(prev.Start),
		}
	}
	return nil
}

// parseAt decodes a timestamp and stamps any error with its location.
func parseAt(text, file string, line int) (float64, error) {
	v, err := timeutil.ParseTimestamp(text)
	if err != nil {
		var tsErr *timeutil.TimestampError
		if errors.As(err, &tsErr) {
			tsErr.File = file
			tsErr.Line = line
		}
		return 0, err
	}
	return v, nil
}
