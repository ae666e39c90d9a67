package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/user/vcut/deps"
	"github.com/user/vcut/render"
	"github.com/user/vcut/transcript"
	"github.com/user/vcut/watch"
)

var watchOpts renderOptions

var watchCmd = &cobra.Command{
	Use:     "watch <video-file>",
	Aliases: []string{"w"},
	Short:   "Re-render every time the transcript is saved",
	Long: `Watch renders once, then renders again each time the transcript file is
saved, until interrupted with ctrl+c. A transcript that fails to parse is
reported and skipped; the next save is tried again.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := watchOpts.resolve(cmd)

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
			return fmt.Errorf("transcript not found: %s\nRun first: vcut transcribe %s", transcriptPath, args[0])
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

		w, err := watch.New(transcriptPath, watch.DefaultDebounce, app.log)
		if err != nil {
			return err
		}
		defer w.Close()

		rerender := func(ctx context.Context) error {
			segments, err := transcript.ParseFile(transcriptPath, transcript.ParseOptions{Strict: opts.strict})
			if err != nil {
				return err
			}
			if len(segments) == 0 {
				color.Yellow("No segments in transcript. Nothing to render.")
				return nil
			}
			workspace, err := render.NewWorkspace()
			if err != nil {
				return err
			}
			return renderSegments(ctx, renderRun{
				video:      video,
				transcript: transcriptPath,
				output:     output,
				workspace:  workspace,
				segments:   segments,
				opts:       opts,
			})
		}

		ctx := cmd.Context()
		if err := rerender(ctx); err != nil {
			app.log.WithError(err).Error("render failed")
		}
		color.New(color.Faint).Printf("Watching %s for changes (ctrl+c to stop)\n", transcriptPath)

		err = w.Run(ctx, rerender)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	addRenderFlags(watchCmd, &watchOpts)
	rootCmd.AddCommand(watchCmd)
}
