package ffmpeg

import (
	"os"
	"strings"
)

// QuotePath quotes a path for a concat demuxer "file" directive.
func QuotePath(path string) string {
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

// ManifestContent renders a concat demuxer list for files, in order.
func ManifestContent(files []string) string {
	var sb strings.Builder
	for _, f := range files {
		sb.WriteString("file ")
		sb.WriteString(QuotePath(f))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteManifest writes the concat list for files to path.
func WriteManifest(path string, files []string) error {
	return os.WriteFile(path, []byte(ManifestContent(files)), 0644)
}
