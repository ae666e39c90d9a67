package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/user/vcut/deps"
	"github.com/user/vcut/pkg/ffmpeg"
	"github.com/user/vcut/render"
	"github.com/user/vcut/transcribe"
	"github.com/user/vcut/transcript"
)

// listModels as the model name prints the presets instead of transcribing.
const listModels = "list"

var transcribeOpts struct {
	output    string
	model     string
	language  string
	chunkSize float64
	force     bool
}

var transcribeCmd = &cobra.Command{
	Use:     "transcribe <video-file>",
	Aliases: []string{"t"},
	Short:   "Generate a transcript from a video",
	Long: `Transcribe extracts the audio track and runs it through faster-whisper,
writing one timestamped line per phrase.

Model presets: fast (tiny.en), balanced (base.en), quality (distil-large-v3, default).
Any faster-whisper model name is also accepted. Use -m list to show the presets.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if transcribeOpts.model == listModels {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if transcribeOpts.model == listModels {
			printModelPresets()
			return nil
		}

		model := app.cfg.Model
		if cmd.Flags().Changed("model") {
			model = transcribeOpts.model
		}
		language := app.cfg.Language
		if cmd.Flags().Changed("language") {
			language = transcribeOpts.language
		}
		chunkSize := app.cfg.ChunkSize
		if cmd.Flags().Changed("chunk-size") {
			chunkSize = transcribeOpts.chunkSize
		}
		if chunkSize < 0 {
			return fmt.Errorf("chunk size must be >= 0 (got %g)", chunkSize)
		}

		video, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		if err := deps.CheckFfmpeg(app.cfg.FFmpegPath); err != nil {
			return err
		}
		if err := deps.CheckPython(app.cfg.PythonPath); err != nil {
			return err
		}

		output := transcribeOpts.output
		if output == "" {
			output = defaultTranscriptPath(video)
		}
		if fileExists(output) && !transcribeOpts.force {
			return fmt.Errorf("transcript already exists: %s\nUse --force to overwrite", output)
		}

		workspace, err := render.NewWorkspace()
		if err != nil {
			return err
		}
		defer render.RemoveWorkspace(workspace)

		log := app.log
		backend := transcribe.NewFasterWhisper(app.cfg.PythonPath, app.cfg.Device, log)
		backend.ScriptDir = workspace
		t := &transcribe.Transcriber{
			Audio:   ffmpeg.New(app.cfg.FFmpegPath),
			Backend: backend,
			Log:     log,
		}

		resolved := transcribe.ResolveModel(model)
		color.New(color.Bold).Printf("Transcribing with %s...\n", resolved)

		lastPct := -1
		spans, err := t.Run(cmd.Context(), transcribe.Request{
			Video:     video,
			Workspace: workspace,
			ChunkSize: chunkSize,
			Options: transcribe.Options{
				Model:    resolved,
				Language: language,
				Progress: func(done, total float64) {
					if total <= 0 {
						return
					}
					if pct := int(done * 100 / total); pct/10 != lastPct/10 {
						lastPct = pct
						log.Infof("Transcribed %d%%", pct)
					}
				},
			},
		})
		if err != nil {
			return err
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create transcript: %w", err)
		}
		if err := transcript.Format(f, spans); err != nil {
			f.Close()
			return fmt.Errorf("write transcript: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}

		color.New(color.FgGreen, color.Bold).Print("Transcript saved: ")
		fmt.Println(output)
		color.New(color.Faint).Printf("Next: vcut edit %s  (or: vcut render %s)\n", args[0], args[0])
		return nil
	},
}

func printModelPresets() {
	color.New(color.Bold).Println("Available model presets:")
	for _, p := range transcribe.Presets {
		line := fmt.Sprintf("  %-10s → %s", p.Name, p.Model)
		if p.Name == transcribe.DefaultPreset {
			line += color.New(color.Faint).Sprint(" (default)")
		}
		fmt.Println(line)
	}
	fmt.Println("\nAny faster-whisper model name is also accepted (e.g. large-v3, small.en).")
}

func init() {
	f := transcribeCmd.Flags()
	f.StringVarP(&transcribeOpts.output, "output", "o", "", "output transcript path (default: <input>.txt)")
	f.StringVarP(&transcribeOpts.model, "model", "m", transcribe.DefaultPreset, "model preset or faster-whisper model name, or \"list\"")
	f.StringVarP(&transcribeOpts.language, "language", "l", "", "force transcription language (default: detect)")
	f.Float64VarP(&transcribeOpts.chunkSize, "chunk-size", "c", 3, "target line duration in seconds, 0 keeps the engine's segments")
	f.BoolVar(&transcribeOpts.force, "force", false, "overwrite an existing transcript")
	rootCmd.AddCommand(transcribeCmd)
}
