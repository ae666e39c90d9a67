// Package mpv opens rendered output in the mpv player.
package mpv

import (
	"os/exec"

	"github.com/user/vcut/deps"
)

// Args returns the mpv command line for previewing path. The player stays
// open at the end so the cut can be scrubbed back.
func Args(path string) []string {
	return []string{"--keep-open=yes", "--force-window=yes", path}
}

// LaunchPreview starts mpv on the rendered file.
// It checks that mpv is installed first and returns an error with install link if not.
// Returns the *exec.Cmd for the running process; callers may Wait on it or leave it running.
func LaunchPreview(path string) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}

	cmd := exec.Command("mpv", Args(path)...)

	// Start the process (non-blocking)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
