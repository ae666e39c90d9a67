package render

import (
	"github.com/sirupsen/logrus"
	"github.com/user/vcut/pkg/timeutil"
	"github.com/user/vcut/transcript"
)

// EventKind identifies a render progress event.
type EventKind int

const (
	// EventStart is sent once before any extraction begins.
	EventStart EventKind = iota
	// EventSegmentDone is sent after each successful extraction.
	EventSegmentDone
	// EventConcat is sent when all segments are extracted and concatenation starts.
	EventConcat
	// EventDone is sent when the destination has been written.
	EventDone
	// EventFailed is sent when the render aborts.
	EventFailed
)

// Event describes render progress.
type Event struct {
	Kind      EventKind
	Mode      Mode
	Total     int
	Completed int
	// Index and Segment identify the extracted segment for EventSegmentDone.
	Index   int
	Segment transcript.Segment
	// Path is the intermediate file for EventSegmentDone and the destination
	// for EventDone.
	Path string
	Err  error
}

// Reporter receives progress events. Pipelines with more than one worker call
// Report from several goroutines, so implementations must be safe for
// concurrent use. Pipeline.Run also holds a lock around each call so that
// Completed counts arrive in increasing order.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

type nopReporter struct{}

func (nopReporter) Report(Event) {}

// NopReporter discards all events.
var NopReporter Reporter = nopReporter{}

// LogReporter writes progress events to a logger.
type LogReporter struct {
	Log logrus.FieldLogger
}

func (r LogReporter) Report(e Event) {
	switch e.Kind {
	case EventStart:
		r.Log.WithField("mode", e.Mode.String()).Infof("Rendering %d segments", e.Total)
	case EventSegmentDone:
		r.Log.WithFields(logrus.Fields{
			"segment": e.Index,
			"start":   timeutil.FormatTimestamp(e.Segment.Start),
			"end":     timeutil.FormatTimestamp(e.Segment.End),
		}).Infof("Extracted %d/%d", e.Completed, e.Total)
	case EventConcat:
		r.Log.Infof("Concatenating %d segments", e.Total)
	case EventDone:
		r.Log.WithField("output", e.Path).Info("Render complete")
	case EventFailed:
		r.Log.WithError(e.Err).Error("Render failed")
	}
}
