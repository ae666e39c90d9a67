package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/vcut/pkg/ffmpeg"
	"github.com/user/vcut/transcript"
)

type extraction struct {
	source   string
	start    float64
	end      float64
	reencode bool
	output   string
}

// fakeTool records calls and writes placeholder files instead of running ffmpeg.
type fakeTool struct {
	mu          sync.Mutex
	extractions []extraction
	concats     []string
	manifests   []string
	failIndex   int
	failConcat  bool
	delay       func(i int) time.Duration
	started     atomic.Int32
}

func newFakeTool() *fakeTool {
	return &fakeTool{failIndex: -1}
}

func (f *fakeTool) ExtractSegment(ctx context.Context, source string, start, end float64, reencode bool, output string) error {
	idx := int(f.started.Add(1)) - 1
	f.mu.Lock()
	f.extractions = append(f.extractions, extraction{source, start, end, reencode, output})
	f.mu.Unlock()

	i := segmentIndex(output)
	if f.delay != nil {
		select {
		case <-time.After(f.delay(i)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if i == f.failIndex {
		return &ffmpeg.ExitError{Output: fmt.Sprintf("segment %d: Invalid data found when processing input", idx), Err: errors.New("exit status 1")}
	}
	return os.WriteFile(output, []byte("segment"), 0644)
}

func (f *fakeTool) Concat(ctx context.Context, manifest, output string) error {
	data, err := os.ReadFile(manifest)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.concats = append(f.concats, output)
	f.manifests = append(f.manifests, string(data))
	f.mu.Unlock()

	if err := os.WriteFile(output, []byte("partial"), 0644); err != nil {
		return err
	}
	if f.failConcat {
		return &ffmpeg.ExitError{Output: "concat: unsafe file name", Err: errors.New("exit status 1")}
	}
	return nil
}

func segmentIndex(path string) int {
	var i int
	fmt.Sscanf(strings.TrimPrefix(filepath.Base(path), "seg_"), "%d", &i)
	return i
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newPipeline(tool *fakeTool, workers int, rep Reporter) *Pipeline {
	return &Pipeline{
		Extractor:    tool,
		Concatenator: tool,
		Workers:      workers,
		Reporter:     rep,
		Log:          quietLogger(),
	}
}

func threeSegments() []transcript.Segment {
	return []transcript.Segment{{Start: 0, End: 2}, {Start: 3, End: 5}, {Start: 7.5, End: 9}}
}

func newJob(t *testing.T, mode Mode, segs []transcript.Segment) Job {
	dir := t.TempDir()
	return Job{
		Source:      filepath.Join(dir, "video.mp4"),
		Destination: filepath.Join(dir, "video_edited.mp4"),
		Workspace:   filepath.Join(dir, "work"),
		Segments:    segs,
		Mode:        mode,
	}
}

func TestRunStreamCopy(t *testing.T) {
	tool := newFakeTool()
	job := newJob(t, StreamCopy, threeSegments())

	res, err := newPipeline(tool, 1, nil).Run(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, tool.extractions, 3)
	for i, e := range tool.extractions {
		assert.Equal(t, job.Source, e.source)
		assert.Equal(t, job.Segments[i].Start, e.start)
		assert.Equal(t, job.Segments[i].End, e.end)
		assert.False(t, e.reencode)
		assert.Equal(t, res.Intermediates[i], e.output)
	}

	require.Equal(t, []string{job.Destination}, tool.concats)
	assert.Equal(t, filepath.Join(job.Workspace, ManifestName), res.Manifest)
	assert.InDelta(t, 5.5, res.Duration, 1e-9)
}

func TestRunReencode(t *testing.T) {
	tool := newFakeTool()
	job := newJob(t, Reencode, threeSegments())

	_, err := newPipeline(tool, 1, nil).Run(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, tool.extractions, 3)
	for _, e := range tool.extractions {
		assert.True(t, e.reencode)
	}
	assert.Len(t, tool.concats, 1)
}

func TestRunManifestOrder(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			tool := newFakeTool()
			// later segments finish first
			tool.delay = func(i int) time.Duration { return time.Duration(5-i) * 5 * time.Millisecond }

			segs := []transcript.Segment{{Start: 0, End: 1}, {Start: 2, End: 3}, {Start: 4, End: 5}, {Start: 6, End: 7}, {Start: 8, End: 9}}
			job := newJob(t, StreamCopy, segs)

			res, err := newPipeline(tool, workers, nil).Run(context.Background(), job)
			require.NoError(t, err)

			require.Len(t, tool.manifests, 1)
			assert.Equal(t, ffmpeg.ManifestContent(res.Intermediates), tool.manifests[0])
			assert.True(t, sort.StringsAreSorted(res.Intermediates))

			lines := strings.Split(strings.TrimSuffix(tool.manifests[0], "\n"), "\n")
			require.Len(t, lines, 5)
			for i, line := range lines {
				assert.Equal(t, fmt.Sprintf("file '%s'", filepath.Join(job.Workspace, fmt.Sprintf("seg_%04d.mp4", i))), line)
			}
		})
	}
}

func TestRunExtractionFailureAbortsBeforeConcat(t *testing.T) {
	tool := newFakeTool()
	tool.failIndex = 1
	job := newJob(t, StreamCopy, threeSegments())

	var events []Event
	rep := ReporterFunc(func(e Event) { events = append(events, e) })

	res, err := newPipeline(tool, 1, rep).Run(context.Background(), job)
	require.Error(t, err)
	assert.Nil(t, res)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, 1, extErr.Index)
	assert.Equal(t, job.Segments[1], extErr.Segment)
	assert.Contains(t, extErr.Diagnostics(), "Invalid data found")

	assert.Len(t, tool.extractions, 2, "sequential run stops at the failing segment")
	assert.Empty(t, tool.concats)
	assert.NoFileExists(t, filepath.Join(job.Workspace, ManifestName))
	assert.NoFileExists(t, job.Destination)

	require.NotEmpty(t, events)
	assert.Equal(t, EventFailed, events[len(events)-1].Kind)
}

func TestRunParallelFailureCancelsOthers(t *testing.T) {
	tool := newFakeTool()
	tool.failIndex = 0
	tool.delay = func(i int) time.Duration {
		if i == 0 {
			return 0
		}
		return 2 * time.Second
	}

	segs := make([]transcript.Segment, 8)
	for i := range segs {
		segs[i] = transcript.Segment{Start: float64(i * 2), End: float64(i*2 + 1)}
	}
	job := newJob(t, StreamCopy, segs)

	start := time.Now()
	_, err := newPipeline(tool, 3, nil).Run(context.Background(), job)
	require.Error(t, err)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, 0, extErr.Index)
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, tool.concats)
	assert.LessOrEqual(t, len(tool.extractions), 3)
}

func TestRunConcatFailureRemovesOutput(t *testing.T) {
	tool := newFakeTool()
	tool.failConcat = true
	job := newJob(t, StreamCopy, threeSegments())

	_, err := newPipeline(tool, 1, nil).Run(context.Background(), job)
	require.Error(t, err)

	var catErr *ConcatenationError
	require.True(t, errors.As(err, &catErr))
	assert.Contains(t, catErr.Diagnostics(), "unsafe file name")
	assert.NoFileExists(t, job.Destination)
	assert.FileExists(t, filepath.Join(job.Workspace, ManifestName), "workspace is kept for inspection")
}

func TestRunRejectsEmptySegmentList(t *testing.T) {
	tool := newFakeTool()
	_, err := newPipeline(tool, 1, nil).Run(context.Background(), newJob(t, StreamCopy, nil))
	assert.ErrorIs(t, err, ErrNoSegments)
	assert.Empty(t, tool.extractions)
	assert.Empty(t, tool.concats)
}

func TestRunCancelledContext(t *testing.T) {
	tool := newFakeTool()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipeline(tool, 1, nil).Run(ctx, newJob(t, StreamCopy, threeSegments()))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, tool.concats)
}

func TestRunReportsProgress(t *testing.T) {
	tool := newFakeTool()
	job := newJob(t, Reencode, threeSegments())

	var kinds []EventKind
	var completed []int
	rep := ReporterFunc(func(e Event) {
		kinds = append(kinds, e.Kind)
		if e.Kind == EventSegmentDone {
			completed = append(completed, e.Completed)
		}
	})

	_, err := newPipeline(tool, 1, rep).Run(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, []EventKind{EventStart, EventSegmentDone, EventSegmentDone, EventSegmentDone, EventConcat, EventDone}, kinds)
	assert.Equal(t, []int{1, 2, 3}, completed)
}

func TestPipelineWithFFmpegRunner(t *testing.T) {
	var calls [][]string
	tool := &ffmpeg.Tool{Path: "ffmpeg", Run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, args)
		return nil, nil
	}}
	job := newJob(t, StreamCopy, threeSegments()[:2])

	_, err := New(tool, quietLogger()).Run(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, calls, 3)
	assert.Equal(t, ffmpeg.SegmentArgs(job.Source, 0, 2, false, filepath.Join(job.Workspace, "seg_0000.mp4")), calls[0])
	assert.Equal(t, ffmpeg.SegmentArgs(job.Source, 3, 5, false, filepath.Join(job.Workspace, "seg_0001.mp4")), calls[1])
	assert.Equal(t, ffmpeg.ConcatArgs(filepath.Join(job.Workspace, ManifestName), job.Destination), calls[2])
}

func TestIntermediatePaths(t *testing.T) {
	paths := IntermediatePaths("/w", "/videos/talk.mkv", 3)
	assert.Equal(t, []string{"/w/seg_0000.mkv", "/w/seg_0001.mkv", "/w/seg_0002.mkv"}, paths)

	assert.Equal(t, "/w/seg_0000.mp4", IntermediatePaths("/w", "noext", 1)[0])

	many := IntermediatePaths("/w", "a.mp4", 12000)
	assert.Equal(t, "/w/seg_00000.mp4", many[0])
	assert.Equal(t, "/w/seg_11999.mp4", many[11999])
	assert.True(t, sort.StringsAreSorted(many))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "stream copy", ModeFor(false).String())
	assert.Equal(t, "re-encode", ModeFor(true).String())
}

func TestRunParallelEventsArriveInOrder(t *testing.T) {
	tool := newFakeTool()
	tool.delay = func(i int) time.Duration { return time.Duration(i%3) * time.Millisecond }

	segs := make([]transcript.Segment, 12)
	for i := range segs {
		segs[i] = transcript.Segment{Start: float64(i * 2), End: float64(i*2 + 1)}
	}

	var mu sync.Mutex
	var completed []int
	var indexes []int
	rep := ReporterFunc(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		if e.Kind == EventSegmentDone {
			completed = append(completed, e.Completed)
			indexes = append(indexes, e.Index)
		}
	})

	_, err := newPipeline(tool, 4, rep).Run(context.Background(), newJob(t, StreamCopy, segs))
	require.NoError(t, err)

	require.Len(t, completed, 12)
	for i, c := range completed {
		assert.Equal(t, i+1, c)
	}
	sort.Ints(indexes)
	for i, idx := range indexes {
		assert.Equal(t, i, idx)
	}
}
