package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/user/vcut/tui/forms"
)

// errAborted is returned when the user declines to overwrite an output.
var errAborted = errors.New("aborted")

// resolveVideo returns the absolute path of an existing, regular input file.
func resolveVideo(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a video file: %s", path)
	}
	return absPath, nil
}

// defaultTranscriptPath swaps the video's extension for .txt.
func defaultTranscriptPath(video string) string {
	return strings.TrimSuffix(video, filepath.Ext(video)) + ".txt"
}

// defaultOutputPath returns <dir>/<stem>_edited<ext> next to the video.
func defaultOutputPath(video string) string {
	ext := filepath.Ext(video)
	stem := strings.TrimSuffix(filepath.Base(video), ext)
	return filepath.Join(filepath.Dir(video), stem+"_edited"+ext)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// interactive reports whether prompts and the progress display can be shown.
var interactive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd())
}

// confirmOverwrite decides whether output may be written. Without a terminal
// to ask on, an existing output is an error unless force is set.
func confirmOverwrite(output string, force bool) error {
	if force || !fileExists(output) {
		return nil
	}
	if !interactive() {
		return fmt.Errorf("output already exists: %s\nUse --force to overwrite", output)
	}
	ok, err := forms.ConfirmOverwrite(output)
	if err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}
