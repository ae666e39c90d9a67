// Package deps checks for the external programs vcut shells out to.
package deps

import (
	"fmt"
	"os/exec"
)

const (
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
	PythonInstallURL = "https://www.python.org/downloads/"
	MpvInstallURL    = "https://mpv.io/installation/"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Dependency is an external program vcut may run.
type Dependency struct {
	Name       string
	Binary     string
	InstallURL string
	// Required dependencies are needed by every render.
	Required bool
	Purpose  string
}

// Status is the result of looking up a Dependency.
type Status struct {
	Dependency
	Path string
	Err  error
}

// Found reports whether the binary was located.
func (s Status) Found() bool { return s.Err == nil }

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

func check(name, binary, url string) error {
	if binary == "" {
		binary = name
	}
	if _, err := lookPath(binary); err != nil {
		return &DependencyError{Name: name, InstallURL: url}
	}
	return nil
}

// CheckFfmpeg checks that the ffmpeg binary (by default "ffmpeg" in PATH) is available.
func CheckFfmpeg(binary string) error {
	return check("ffmpeg", binary, FfmpegInstallURL)
}

// CheckPython checks that the Python interpreter used for transcription is available.
func CheckPython(binary string) error {
	if binary == "" {
		binary = "python3"
	}
	return check("python3", binary, PythonInstallURL)
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error {
	return check("mpv", "mpv", MpvInstallURL)
}

// Inspect looks up every dependency. ffmpegPath and pythonPath override the
// default binary names.
func Inspect(ffmpegPath, pythonPath string) []Status {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if pythonPath == "" {
		pythonPath = "python3"
	}
	all := []Dependency{
		{Name: "ffmpeg", Binary: ffmpegPath, InstallURL: FfmpegInstallURL, Required: true, Purpose: "cutting and joining video"},
		{Name: "python3", Binary: pythonPath, InstallURL: PythonInstallURL, Purpose: "transcription with faster-whisper"},
		{Name: "mpv", Binary: "mpv", InstallURL: MpvInstallURL, Purpose: "previewing rendered output"},
	}

	statuses := make([]Status, 0, len(all))
	for _, d := range all {
		s := Status{Dependency: d}
		path, err := lookPath(d.Binary)
		if err != nil {
			s.Err = &DependencyError{Name: d.Name, InstallURL: d.InstallURL}
		} else {
			s.Path = path
		}
		statuses = append(statuses, s)
	}
	return statuses
}

// CheckAll returns an error for each missing required dependency.
func CheckAll(ffmpegPath, pythonPath string) []error {
	var errors []error
	for _, s := range Inspect(ffmpegPath, pythonPath) {
		if s.Required && !s.Found() {
			errors = append(errors, s.Err)
		}
	}
	return errors
}
