package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/user/vcut/deps"
	"github.com/user/vcut/editor"
	"github.com/user/vcut/render"
	"github.com/user/vcut/transcript"
)

var editOpts renderOptions

var editCmd = &cobra.Command{
	Use:     "edit <video-file>",
	Aliases: []string{"e"},
	Short:   "Open the transcript in $EDITOR, then render",
	Long: `Edit copies the transcript into a scratch directory, opens the copy in
$VISUAL or $EDITOR (vim if neither is set) and renders the result when the
editor exits. The transcript next to the video is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := editOpts.resolve(cmd)

		video, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		if err := deps.CheckFfmpeg(app.cfg.FFmpegPath); err != nil {
			return err
		}

		source := opts.transcript
		if source == "" {
			source = defaultTranscriptPath(video)
		}
		if !fileExists(source) {
			return fmt.Errorf("transcript not found: %s\nRun first: vcut transcribe %s", source, args[0])
		}

		workspace, err := render.NewWorkspace()
		if err != nil {
			return err
		}
		working := filepath.Join(workspace, "transcript.txt")
		if err := copyFile(source, working); err != nil {
			return err
		}

		color.New(color.Bold).Print("Opening editor... ")
		fmt.Printf("(%s)\n", source)
		code, err := editor.Open(cmd.Context(), working)
		if err != nil {
			return fmt.Errorf("run editor: %w", err)
		}
		if code != 0 {
			return fmt.Errorf("editor exited with code %d. Aborting", code)
		}

		segments, err := transcript.ParseFile(working, transcript.ParseOptions{
			Name:   filepath.Base(source),
			Strict: opts.strict,
		})
		if err != nil {
			return fmt.Errorf("%w\nThe edited file is preserved at: %s\nPlease fix the issues and copy it back to: %s", err, working, source)
		}
		if len(segments) == 0 {
			color.Yellow("No segments remaining after edit. Nothing to render.")
			return render.RemoveWorkspace(workspace)
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

		return renderSegments(cmd.Context(), renderRun{
			video:      video,
			transcript: source,
			output:     output,
			workspace:  workspace,
			segments:   segments,
			opts:       opts,
		})
	},
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copy transcript: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy transcript: %w", err)
	}
	return out.Close()
}

func init() {
	addRenderFlags(editCmd, &editOpts)
	rootCmd.AddCommand(editCmd)
}
