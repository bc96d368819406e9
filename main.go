// Package main provides the entry point for the speechclip CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/speechclip/speech"
	"github.com/dgnsrekt/speechclip/ui"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	headless   bool
	mouse      bool
	logCloser  = func() error { return nil }

	rootCmd = &cobra.Command{
		Use:   "speechclip [CLIP...]",
		Short: "Play speech clips with a lip-synced mouth, one at a time",
		Long: paragraph(
			fmt.Sprintf("\nQueue and play %s from a clip manifest. Each clip drives a mouth pose animation while it plays.", keyword("speech clips")),
		),
		Example:          paragraph("speechclip\nspeechclip --headless greeting farewell\nspeechclip -m ~/clips/clips.yml --backend oto"),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		RunE:             execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	if cmd.Flags().Changed("config") {
		configFile = expandPath(configFile)
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	headless = viper.GetBool("headless")
	mouse = viper.GetBool("mouse")

	// No terminal to draw on.
	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Debug("stdout is not a terminal, running headless")
		headless = true
	}

	closer, err := setupLog()
	if err != nil {
		return err
	}
	logCloser = closer

	// Log output would draw over the alt screen.
	if !headless && viper.GetString("log_file") == "" && cmd == rootCmd {
		log.SetOutput(io.Discard)
	}

	return nil
}

func execute(cmd *cobra.Command, args []string) error {
	cfg, err := speech.LoadConfigFromViper()
	if err != nil {
		return err
	}

	s, err := newSession(cfg, log.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Warn("Error closing audio", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.watch(ctx)

	if headless {
		return runHeadless(ctx, s, args, cmd.OutOrStdout())
	}
	return runTUI(s, args)
}

func envUIConfig() (ui.Config, error) {
	// Read environment to get display settings
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return cfg, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.EnableMouse = mouse
	return cfg, nil
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	_ = logCloser()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the rootCmd literal: validateOptions
	// refers to rootCmd, which would otherwise be an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return validateOptions(cmd)
	}

	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file")
	rootCmd.Flags().StringP("manifest", "f", "", "clip manifest (YAML)")
	rootCmd.Flags().StringP("backend", "b", "", "audio backend (mock/oto)")
	rootCmd.Flags().Duration("padding", 0, "silence between clips")
	rootCmd.Flags().Int("tick-rate", 0, "scheduler ticks per second")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "play the given clips without the TUI")
	rootCmd.Flags().Bool("watch", false, "reload the manifest when it changes")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse support (TUI-mode only)")
	_ = rootCmd.Flags().MarkHidden("mouse")

	// Config bindings
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("catalog.manifest", rootCmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("catalog.watch", rootCmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag("audio.backend", rootCmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("clip_padding", rootCmd.Flags().Lookup("padding"))
	_ = viper.BindPFlag("tick_rate", rootCmd.Flags().Lookup("tick-rate"))
	_ = viper.BindPFlag("headless", rootCmd.Flags().Lookup("headless"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))

	rootCmd.AddCommand(configCmd, manCmd)
}

func configDirs() ([]string, error) {
	scope := gap.NewScope(gap.User, "speechclip")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		return nil, err
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "speechclip")}, dirs...)
	}

	if c := os.Getenv("SPEECHCLIP_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	return dirs, nil
}

func tryLoadConfigFromDefaultPlaces() {
	dirs, err := configDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("speechclip")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("speechclip")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "speechclip.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
