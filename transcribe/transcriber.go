package transcribe

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/user/vcut/transcript"
)

// ErrNoSpeech is returned when the engine recognised nothing.
var ErrNoSpeech = errors.New("no speech detected in the video")

// AudioExtractor pulls a speech-recognition friendly audio track out of a video.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, video, output string) error
}

// Request describes one transcription run.
type Request struct {
	Video     string
	Workspace string
	Options   Options
	// ChunkSize regroups words into spans of about this many seconds. Zero
	// keeps the engine's own segmentation.
	ChunkSize float64
}

// Transcriber extracts audio from a video and runs it through a Backend.
type Transcriber struct {
	Audio   AudioExtractor
	Backend Backend
	Log     logrus.FieldLogger
}

// Run transcribes req.Video and returns spans ready for transcript.Format.
func (t *Transcriber) Run(ctx context.Context, req Request) ([]transcript.Span, error) {
	audioPath := filepath.Join(req.Workspace, "audio.wav")

	t.Log.WithField("video", req.Video).Info("Extracting audio")
	if err := t.Audio.ExtractAudio(ctx, req.Video, audioPath); err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}

	opts := req.Options
	opts.WordTimestamps = req.ChunkSize > 0
	t.Log.WithField("model", ResolveModel(opts.Model)).Info("Transcribing")

	segments, err := t.Backend.Transcribe(ctx, audioPath, opts)
	if err != nil {
		return nil, err
	}

	var spans []transcript.Span
	if req.ChunkSize > 0 {
		spans = ChunkWords(segments, req.ChunkSize)
	} else {
		spans = Spans(segments)
	}
	if len(spans) == 0 {
		return nil, ErrNoSpeech
	}

	t.Log.Debugf("transcribed %d segments into %d spans", len(segments), len(spans))
	return spans, nil
}
