// Package editor opens files in the user's text editor.
package editor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// DefaultEditor is used when neither $VISUAL nor $EDITOR is set.
const DefaultEditor = "vim"

// Command returns the editor command line: $VISUAL, then $EDITOR, then vim.
// The value is split on whitespace so settings like "code -w" work.
func Command() []string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(key)); len(fields) > 0 {
			return fields
		}
	}
	return []string{DefaultEditor}
}

// Open runs the editor on path attached to the current terminal and waits for
// it to exit. A non-zero exit is reported through the returned code with a nil
// error; err is only set when the editor could not be run at all.
func Open(ctx context.Context, path string) (int, error) {
	argv := append(Command(), path)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}
