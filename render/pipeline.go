// Package render cuts the surviving segments out of a source video and joins
// them into a single output file.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/user/vcut/pkg/ffmpeg"
	"github.com/user/vcut/pkg/timeutil"
	"github.com/user/vcut/transcript"
	"golang.org/x/sync/errgroup"
)

// ManifestName is the concat list written into the workspace.
const ManifestName = "concat.txt"

// Extractor cuts a single [start, end) range out of source into output.
type Extractor interface {
	ExtractSegment(ctx context.Context, source string, start, end float64, reencode bool, output string) error
}

// Concatenator joins the files listed in a concat manifest into output
// without re-encoding.
type Concatenator interface {
	Concat(ctx context.Context, manifest, output string) error
}

// Job describes a single render run.
type Job struct {
	Source      string
	Destination string
	// Workspace holds the intermediate files and the manifest. It is created
	// if missing and never removed by the pipeline.
	Workspace string
	Segments  []transcript.Segment
	Mode      Mode
}

// Result describes a successful render.
type Result struct {
	Destination   string
	Manifest      string
	Intermediates []string
	// Duration is the total length of the rendered segments in seconds.
	Duration float64
}

// Pipeline extracts every segment of a Job and concatenates the pieces.
type Pipeline struct {
	Extractor    Extractor
	Concatenator Concatenator
	// Workers bounds concurrent extractions. Values below 1 mean 1.
	Workers  int
	Reporter Reporter
	Log      logrus.FieldLogger
}

// New returns a sequential pipeline that drives tool for both extraction and
// concatenation.
func New(tool *ffmpeg.Tool, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		Extractor:    tool,
		Concatenator: tool,
		Workers:      1,
		Log:          log,
	}
}

// Run renders job. Any extraction failure aborts the run before concatenation;
// the first failure cancels extractions that are still running or queued.
func (p *Pipeline) Run(ctx context.Context, job Job) (*Result, error) {
	if len(job.Segments) == 0 {
		return nil, ErrNoSegments
	}

	rep := p.Reporter
	if rep == nil {
		rep = NopReporter
	}
	log := p.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	if err := os.MkdirAll(job.Workspace, 0755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	total := len(job.Segments)
	paths := IntermediatePaths(job.Workspace, job.Source, total)
	rep.Report(Event{Kind: EventStart, Mode: job.Mode, Total: total})

	if err := p.extractAll(ctx, job, paths, workers, rep, log); err != nil {
		rep.Report(Event{Kind: EventFailed, Mode: job.Mode, Total: total, Err: err})
		return nil, err
	}

	manifest := filepath.Join(job.Workspace, ManifestName)
	if err := ffmpeg.WriteManifest(manifest, paths); err != nil {
		err = fmt.Errorf("write manifest: %w", err)
		rep.Report(Event{Kind: EventFailed, Mode: job.Mode, Total: total, Err: err})
		return nil, err
	}

	rep.Report(Event{Kind: EventConcat, Mode: job.Mode, Total: total, Completed: total})
	log.WithField("manifest", manifest).Debug("concatenating segments")

	if err := p.Concatenator.Concat(ctx, manifest, job.Destination); err != nil {
		if rmErr := os.Remove(job.Destination); rmErr != nil && !os.IsNotExist(rmErr) {
			log.WithError(rmErr).Warn("could not remove incomplete output")
		}
		err = &ConcatenationError{Manifest: manifest, Err: err}
		rep.Report(Event{Kind: EventFailed, Mode: job.Mode, Total: total, Completed: total, Err: err})
		return nil, err
	}

	rep.Report(Event{Kind: EventDone, Mode: job.Mode, Total: total, Completed: total, Path: job.Destination})

	return &Result{
		Destination:   job.Destination,
		Manifest:      manifest,
		Intermediates: paths,
		Duration:      transcript.TotalDuration(job.Segments),
	}, nil
}

func (p *Pipeline) extractAll(ctx context.Context, job Job, paths []string, workers int, rep Reporter, log logrus.FieldLogger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	reencode := job.Mode == Reencode
	total := len(job.Segments)

	var mu sync.Mutex
	completed := 0

	for i, seg := range job.Segments {
		i, seg := i, seg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			entry := log.WithFields(logrus.Fields{
				"segment": i,
				"start":   timeutil.FormatTimestamp(seg.Start),
				"end":     timeutil.FormatTimestamp(seg.End),
				"mode":    job.Mode.String(),
			})
			entry.Debug("extracting segment")

			if err := p.Extractor.ExtractSegment(gctx, job.Source, seg.Start, seg.End, reencode, paths[i]); err != nil {
				entry.WithError(err).Debug("extraction failed")
				return &ExtractionError{Index: i, Segment: seg, Err: err}
			}

			mu.Lock()
			completed++
			rep.Report(Event{
				Kind:      EventSegmentDone,
				Mode:      job.Mode,
				Total:     total,
				Completed: completed,
				Index:     i,
				Segment:   seg,
				Path:      paths[i],
			})
			mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// IntermediatePaths returns n intermediate file paths inside workspace whose
// lexical order matches segment order. The source extension is kept so the
// container matches the input.
func IntermediatePaths(workspace, source string, n int) []string {
	ext := filepath.Ext(source)
	if ext == "" {
		ext = ".mp4"
	}
	width := 4
	if n > 0 {
		if w := len(strconv.Itoa(n - 1)); w > width {
			width = w
		}
	}

	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(workspace, fmt.Sprintf("seg_%0*d%s", width, i, ext))
	}
	return paths
}
