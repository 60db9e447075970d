package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	apppkg "github.com/kk-code-lab/rtab/internal/app"
	"github.com/kk-code-lab/rtab/internal/config"
	"github.com/kk-code-lab/rtab/internal/logging"
	"github.com/kk-code-lab/rtab/internal/terminal"
)

var (
	cfgFile  string
	debug    bool
	logDir   string
	logLevel string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rtab [DIR]",
		Short:         "Tabbed terminal file browser",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDir := ""
			if len(args) == 1 {
				startDir = args[0]
			}
			return run(cmd, startDir)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/rtab/rtab.toml)")
	flags.BoolVar(&debug, "debug", false, "log at debug level")
	flags.StringVar(&logDir, "log-dir", "", "directory for rtab.log (overrides config)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	return rootCmd
}

func run(cmd *cobra.Command, startDir string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("rtab needs an interactive terminal")
	}

	path := cfgFile
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	opts, cfgErr := config.Load(path)

	logCfg := logging.Config{
		LogDir: opts.Log.Dir,
		Level:  opts.Log.Level,
		Format: opts.Log.Format,
		Debug:  debug,
	}
	if cmd.Flags().Changed("log-dir") {
		logCfg.LogDir = logDir
	}
	if cmd.Flags().Changed("log-level") {
		logCfg.Level = logLevel
	}
	logging.Init(logCfg)
	defer logging.Shutdown()

	log := logging.ForComponent(logging.CompApp)
	log.Info("starting", "config", path, "start_dir", startDir)
	if cfgErr != nil {
		log.Warn("config_load_failed", "path", path, "error", cfgErr)
	}

	// UTF-8 fallback for terminals that report an unknown encoding.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.NewApplication(opts, startDir)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	if cfgErr != nil {
		app.ReportError(cfgErr.Error() + " (using defaults)")
	}

	runErr := app.Run()

	var restoreErr *terminal.RestoreError
	if errors.As(runErr, &restoreErr) {
		// Leave the screen alone after a failed restore.
		log.Error("fatal", "error", runErr)
		return runErr
	}
	_ = app.Close()
	if runErr != nil {
		log.Error("exit", "error", runErr)
	}
	return runErr
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rtab: %v\n", err)
		os.Exit(1)
	}
}
