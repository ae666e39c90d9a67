package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/user/vcut/db"
	"github.com/user/vcut/deps"
	"github.com/user/vcut/mpv"
	"github.com/user/vcut/pkg/ffmpeg"
	"github.com/user/vcut/pkg/timeutil"
	"github.com/user/vcut/render"
	"github.com/user/vcut/transcript"
	"github.com/user/vcut/tui"
)

// renderOptions are the flags shared by render, edit and watch.
type renderOptions struct {
	transcript string
	output     string
	reencode   bool
	force      bool
	workers    int
	strict     bool
	preview    bool
}

var renderOpts renderOptions

func addRenderFlags(cmd *cobra.Command, opts *renderOptions) {
	cmd.Flags().StringVarP(&opts.transcript, "transcript", "t", "", "transcript file (default: <input>.txt)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output video path (default: <input>_edited.<ext>)")
	cmd.Flags().BoolVarP(&opts.reencode, "reencode", "r", false, "re-encode for frame-accurate cuts")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite output without prompting")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "segments extracted in parallel (default from config)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject lines that are not timestamped transcript lines")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "open the result in mpv when done")
}

// resolve fills defaults from the config, letting flags that were set win.
func (o renderOptions) resolve(cmd *cobra.Command) renderOptions {
	if !cmd.Flags().Changed("reencode") {
		o.reencode = app.cfg.Reencode
	}
	if o.workers <= 0 {
		o.workers = app.cfg.Workers
	}
	return o
}

var renderCmd = &cobra.Command{
	Use:     "render <video-file>",
	Aliases: []string{"r"},
	Short:   "Render a video from its edited transcript",
	Long: `Render keeps only the parts of the video whose lines remain in the transcript.

Each line's range is cut out with ffmpeg and the pieces are joined in order.
Stream copy (the default) is fast but cuts on keyframes. --reencode is slower
and frame-accurate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := renderOpts.resolve(cmd)

		video, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		if err := deps.CheckFfmpeg(app.cfg.FFmpegPath); err != nil {
			return err
		}

		transcriptPath := opts.transcript
		if transcriptPath == "" {
			transcriptPath = defaultTranscriptPath(video)
		}
		if !fileExists(transcriptPath) {
			if opts.transcript == "" {
				return fmt.Errorf("transcript not found: %s\nRun first: vcut transcribe %s", transcriptPath, args[0])
			}
			return fmt.Errorf("transcript not found: %s", transcriptPath)
		}

		output := opts.output
		if output == "" {
			output = defaultOutputPath(video)
		}
		if err := confirmOverwrite(output, opts.force); err != nil {
			if errors.Is(err, errAborted) {
				fmt.Println("Aborted.")
			}
			return err
		}

		segments, err := transcript.ParseFile(transcriptPath, transcript.ParseOptions{Strict: opts.strict})
		if err != nil {
			return fmt.Errorf("%w\nPlease fix the transcript file and try again", err)
		}
		if len(segments) == 0 {
			color.Yellow("No segments in transcript. Nothing to render.")
			return nil
		}

		workspace, err := render.NewWorkspace()
		if err != nil {
			return err
		}
		return renderSegments(cmd.Context(), renderRun{
			video:      video,
			transcript: transcriptPath,
			output:     output,
			workspace:  workspace,
			segments:   segments,
			opts:       opts,
		})
	},
}

// renderRun is one render of already parsed segments.
type renderRun struct {
	video      string
	transcript string
	output     string
	workspace  string
	segments   []transcript.Segment
	opts       renderOptions
}

// renderSegments runs the pipeline, records history and cleans up. On failure
// the workspace is kept and its path printed.
func renderSegments(ctx context.Context, run renderRun) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := app.log
	mode := render.ModeFor(run.opts.reencode)

	pipeline := render.New(ffmpeg.New(app.cfg.FFmpegPath), log)
	pipeline.Workers = run.opts.workers

	job := render.Job{
		Source:      run.video,
		Destination: run.output,
		Workspace:   run.workspace,
		Segments:    run.segments,
		Mode:        mode,
	}

	history := startHistory(app.cfg, log, &db.Render{
		Source:      run.video,
		Transcript:  run.transcript,
		Destination: run.output,
		Workspace:   run.workspace,
		Segments:    len(run.segments),
		Duration:    transcript.TotalDuration(run.segments),
		Mode:        mode.String(),
	})

	color.New(color.Bold).Printf("Rendering %d segments (%s)...\n", len(run.segments), mode)

	var res *render.Result
	var err error
	if interactive() {
		err = tui.Run(ctx, filepath.Base(run.video), func(ctx context.Context, rep render.Reporter) error {
			pipeline.Reporter = rep
			var runErr error
			res, runErr = pipeline.Run(ctx, job)
			return runErr
		})
	} else {
		pipeline.Reporter = render.LogReporter{Log: log}
		res, err = pipeline.Run(ctx, job)
	}

	if err != nil {
		history.fail(err)
		var diag interface{ Diagnostics() string }
		if errors.As(err, &diag) && diag.Diagnostics() != "" {
			log.Debugf("ffmpeg output:\n%s", diag.Diagnostics())
		}
		fmt.Fprintf(os.Stderr, "Temp files preserved at: %s\n", run.workspace)
		return err
	}

	history.complete(res.Destination)
	if err := render.RemoveWorkspace(run.workspace); err != nil {
		log.WithError(err).Warn("could not remove workspace")
	}

	color.New(color.FgGreen, color.Bold).Print("Done! ")
	fmt.Printf("Output: %s (%s kept)\n", res.Destination, timeutil.FormatTime(res.Duration))

	if run.opts.preview {
		if _, err := mpv.LaunchPreview(res.Destination); err != nil {
			log.WithError(err).Warn("could not open preview")
		}
	}
	return nil
}

func init() {
	addRenderFlags(renderCmd, &renderOpts)
	rootCmd.AddCommand(renderCmd)
}
