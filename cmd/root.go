package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/user/vcut/config"
	"github.com/user/vcut/deps"
	"github.com/user/vcut/pkg/logging"
)

var Version = "0.1.0"

// app holds what every command needs once flags are parsed.
var app struct {
	cfg      *config.Config
	log      *logrus.Logger
	closeLog func() error
}

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "vcut",
	Short: "Edit video by editing its transcript",
	Long: `vcut cuts a video by editing its transcript.

Workflow:
  1. vcut transcribe talk.mp4    writes talk.txt with one timestamped line per phrase
  2. delete the lines you don't want to keep
  3. vcut render talk.mp4        writes talk_edited.mp4 from the remaining lines

Lines look like:
  [00:00:01.000 -> 00:00:03.500] | Hello and welcome.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = logrus.DebugLevel.String()
		}
		log, closeLog, err := logging.New(logging.Options{Level: level, File: cfg.LogFile})
		if err != nil {
			return err
		}
		app.cfg, app.log, app.closeLog = cfg, log, closeLog
		log.WithField("config", cfg.Path()).Debug("configuration loaded")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app.closeLog != nil {
			return app.closeLog()
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vcut version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that ffmpeg is installed, and report whether the optional python3 (transcription) and mpv (preview) are available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		ok := color.New(color.FgGreen)
		bad := color.New(color.FgRed)
		warn := color.New(color.FgYellow)

		missing := 0
		for _, s := range deps.Inspect(app.cfg.FFmpegPath, app.cfg.PythonPath) {
			switch {
			case s.Found():
				ok.Printf("✓ %s: OK", s.Name)
				fmt.Printf(" (%s)\n", s.Path)
			case s.Required:
				bad.Printf("✗ %s: NOT FOUND", s.Name)
				fmt.Printf(" - needed for %s\n", s.Purpose)
				fmt.Printf("  Install from: %s\n", s.InstallURL)
				missing++
			default:
				warn.Printf("- %s: not found", s.Name)
				fmt.Printf(" (optional, used for %s)\n", s.Purpose)
				fmt.Printf("  Install from: %s\n", s.InstallURL)
			}
		}

		fmt.Println()
		if missing > 0 {
			return fmt.Errorf("%d required dependency missing", missing)
		}
		fmt.Println("All required dependencies are installed!")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $VCUT_CONFIG or ~/.config/vcut/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
