package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"minuteminder/internal/storage"
	"minuteminder/internal/ui/preferences"
)

const (
	appName = "MinuteMinder"
	appID   = "com.minuteminder.app"
)

var (
	tuiMode    bool
	minutes    int
	configPath string
	mute       bool
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "minuteminder",
	Short: "Minute Minder - a minute countdown timer",
	Long: `Minute Minder counts down from a number of minutes, beeps once at zero and
keeps counting into negative time until it is reset.

Pick a preset, type the minutes on the keyboard (the countdown starts 3 seconds
after the last digit, or right away on Enter) or pass --minutes to start at launch.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if minutes < 0 {
			return fmt.Errorf("--minutes must be positive, got %d", minutes)
		}
		var err error
		logger, err = buildLogger(verbose, tuiMode)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, settingsPath, err := loadSettings(configPath)
		if err != nil {
			return err
		}
		if tuiMode {
			return runTerminal(settings)
		}
		return runDesktop(settings, settingsPath)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVar(&tuiMode, "tui", false, "run in the terminal instead of a desktop window")
	flags.IntVarP(&minutes, "minutes", "m", 0, "start a countdown of this many minutes right away")
	flags.StringVar(&configPath, "config", "", "settings file (default: user config dir)")
	flags.BoolVar(&mute, "mute", false, "never play the alert tone")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// buildLogger logs to stderr, or to a file in the temp dir while the
// terminal UI owns the screen.
func buildLogger(verbose, toFile bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if toFile {
		logPath := filepath.Join(os.TempDir(), "minuteminder.log")
		config.OutputPaths = []string{logPath}
		config.ErrorOutputPaths = []string{logPath}
	}
	return config.Build()
}

func loadSettings(path string) (preferences.Settings, string, error) {
	if path == "" {
		defaultPath, err := storage.SettingsPath(appName)
		if err != nil {
			return preferences.DefaultSettings(), "", err
		}
		path = defaultPath
	}

	settings, err := storage.LoadSettingsFrom(path)
	if err != nil {
		logger.Warn("using default settings", zap.String("path", path), zap.Error(err))
	}
	settings, err = storage.ApplyEnv(settings)
	if err != nil {
		return settings, path, err
	}
	return withFlags(settings), path, nil
}

func withFlags(settings preferences.Settings) preferences.Settings {
	if mute {
		settings.Muted = true
	}
	return settings
}
