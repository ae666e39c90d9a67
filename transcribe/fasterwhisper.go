package transcribe

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

//go:embed assets/faster_whisper.py
var fwScript []byte

// ErrNoResult is returned when the helper exits without reporting a result.
var ErrNoResult = errors.New("transcription helper produced no result")

// FasterWhisper runs faster-whisper through a small embedded Python helper.
type FasterWhisper struct {
	// Python is the interpreter used to run the helper.
	Python string
	// Device is passed to faster-whisper: auto, cpu or cuda.
	Device string
	// ScriptDir is where the helper is written; empty means os.TempDir().
	ScriptDir string
	Log       logrus.FieldLogger
}

// NewFasterWhisper returns a backend using the given interpreter and device.
func NewFasterWhisper(python, device string, log logrus.FieldLogger) *FasterWhisper {
	return &FasterWhisper{Python: python, Device: device, Log: log}
}

// helperLine is one JSON line printed by the helper.
type helperLine struct {
	Type     string    `json:"type"`
	Done     float64   `json:"done"`
	Total    float64   `json:"total"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments"`
}

func (f *FasterWhisper) Transcribe(ctx context.Context, audioPath string, opts Options) ([]Segment, error) {
	dir := f.ScriptDir
	if dir == "" {
		dir = os.TempDir()
	}
	script, err := os.CreateTemp(dir, "vcut_faster_whisper_*.py")
	if err != nil {
		return nil, fmt.Errorf("write helper script: %w", err)
	}
	defer os.Remove(script.Name())
	if _, err := script.Write(fwScript); err != nil {
		script.Close()
		return nil, fmt.Errorf("write helper script: %w", err)
	}
	if err := script.Close(); err != nil {
		return nil, fmt.Errorf("write helper script: %w", err)
	}

	cmd := exec.CommandContext(ctx, f.python(), f.args(filepath.Clean(script.Name()), audioPath, opts)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("run helper: %w", err)
	}

	if f.Log != nil {
		f.Log.WithFields(logrus.Fields{"model": opts.Model, "device": f.device()}).Debug("starting transcription helper")
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("run helper: %w", err)
	}

	segments, readErr := readHelperOutput(stdout, opts.Progress, f.Log)
	// Wait must not run while the helper can still block on a full pipe.
	io.Copy(io.Discard, stdout)
	waitErr := cmd.Wait()
	if waitErr != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("faster-whisper failed: %w", waitErr)
		}
		return nil, fmt.Errorf("faster-whisper failed: %s", lastLine(msg))
	}
	if readErr != nil {
		return nil, readErr
	}
	return segments, nil
}

func (f *FasterWhisper) python() string {
	if f.Python == "" {
		return "python3"
	}
	return f.Python
}

func (f *FasterWhisper) device() string {
	if f.Device == "" {
		return "auto"
	}
	return f.Device
}

func (f *FasterWhisper) args(script, audioPath string, opts Options) []string {
	args := []string{script, "--audio", audioPath, "--model", ResolveModel(opts.Model), "--device", f.device()}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	if opts.WordTimestamps {
		args = append(args, "--word-timestamps")
	}
	return args
}

// readHelperOutput consumes the helper's JSON lines until its result line.
// Other output, such as model download messages, is logged and skipped.
func readHelperOutput(r io.Reader, progress func(done, total float64), log logrus.FieldLogger) ([]Segment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var result *helperLine
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var msg helperLine
		if err := json.Unmarshal(line, &msg); err != nil {
			if log != nil {
				log.WithField("line", truncateLine(line)).Debug("skipping helper output")
			}
			continue
		}
		switch msg.Type {
		case "progress":
			if progress != nil {
				progress(msg.Done, msg.Total)
			}
		case "result":
			result = &msg
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read helper output: %w", err)
	}
	if result == nil {
		return nil, ErrNoResult
	}
	if progress != nil {
		progress(result.Duration, result.Duration)
	}
	if result.Segments == nil {
		return []Segment{}, nil
	}
	return result.Segments, nil
}

func truncateLine(line []byte) string {
	const max = 200
	if len(line) > max {
		return string(line[:max]) + "..."
	}
	return string(line)
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
