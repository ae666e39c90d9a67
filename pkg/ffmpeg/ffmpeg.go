// Package ffmpeg wraps the ffmpeg command line for segment extraction,
// concatenation and audio extraction.
package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a command and returns its combined stdout and stderr.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// ExitError is returned when an ffmpeg invocation fails. Output holds
// everything the tool printed.
type ExitError struct {
	Args   []string
	Output string
	Err    error
}

func (e *ExitError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("ffmpeg failed: %v", e.Err)
	}
	return fmt.Sprintf("ffmpeg failed: %v\n%s", e.Err, out)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Diagnostics returns the tool output captured for the failed run.
func (e *ExitError) Diagnostics() string {
	return e.Output
}

// Tool invokes a specific ffmpeg binary.
type Tool struct {
	// Path is the ffmpeg executable; "ffmpeg" resolves through $PATH.
	Path string
	// Run executes commands; nil means ExecRunner.
	Run Runner
}

// New returns a Tool for the ffmpeg binary at path.
func New(path string) *Tool {
	if path == "" {
		path = "ffmpeg"
	}
	return &Tool{Path: path, Run: ExecRunner}
}

func (t *Tool) exec(ctx context.Context, args []string) error {
	run := t.Run
	if run == nil {
		run = ExecRunner
	}
	path := t.Path
	if path == "" {
		path = "ffmpeg"
	}
	out, err := run(ctx, path, args...)
	if err != nil {
		return &ExitError{Args: args, Output: string(out), Err: err}
	}
	return nil
}

// ExtractSegment cuts [start, end) of source into output.
//
// Without reencode the seek happens before the input is opened, which snaps to
// the nearest keyframe, and the streams are copied as-is. With reencode the
// input is opened first and decoded up to start, so the cut is frame accurate.
func (t *Tool) ExtractSegment(ctx context.Context, source string, start, end float64, reencode bool, output string) error {
	return t.exec(ctx, SegmentArgs(source, start, end, reencode, output))
}

// Concat joins the files listed in manifest into output without re-encoding.
func (t *Tool) Concat(ctx context.Context, manifest, output string) error {
	return t.exec(ctx, ConcatArgs(manifest, output))
}

// ExtractAudio writes the audio track of video as mono 16 kHz 16-bit PCM WAV.
func (t *Tool) ExtractAudio(ctx context.Context, video, output string) error {
	return t.exec(ctx, AudioArgs(video, output))
}

// SegmentArgs builds the ffmpeg arguments for one segment extraction.
func SegmentArgs(source string, start, end float64, reencode bool, output string) []string {
	if reencode {
		return []string{
			"-y",
			"-i", source,
			"-ss", seconds(start),
			"-to", seconds(end),
			"-avoid_negative_ts", "make_zero",
			output,
		}
	}
	return []string{
		"-y",
		"-ss", seconds(start),
		"-i", source,
		"-t", seconds(end - start),
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		output,
	}
}

// ConcatArgs builds the arguments for the concat demuxer.
func ConcatArgs(manifest, output string) []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		output,
	}
}

// AudioArgs builds the arguments for speech-recognition audio extraction.
func AudioArgs(video, output string) []string {
	return []string{
		"-y",
		"-i", video,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		output,
	}
}

func seconds(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
