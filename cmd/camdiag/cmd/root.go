// Package cmd implements the camdiag CLI commands.
//
// camdiag evaluates the camera permission model offline: it resolves which
// runtime permissions apply to a given SDK level and combines a set of
// per-permission statuses into the single status an app would see.
package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/diagnostic/cmd/camdiag/internal/config"
	"github.com/go-drift/diagnostic/internal/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// app carries state resolved by the root command for its subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool

	cfg    *config.Resolved
	logger zerolog.Logger
	colors palette
}

// NewRootCommand builds the camdiag command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "camdiag",
		Short: "Camera permission diagnostics",
		Long: `camdiag evaluates camera and storage runtime permissions the way the
camera diagnostic does on a device.

Statuses are one of NOT_REQUESTED, DENIED, DENIED_ALWAYS, GRANTED, LIMITED.
Use "camdiag <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath, "path to camdiag.yaml")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (json, console, auto)")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newPermissionsCommand(a),
		newStatusCommand(a),
		newBandCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	a.cfg = cfg
	a.logger = logging.Init(logging.Config{
		Format:    cfg.LogFormat,
		Level:     cfg.LogLevel,
		Component: "camdiag",
		Output:    cmd.ErrOrStderr(),
	})
	a.colors = newPalette(a.noColor)
	a.logger.Debug().Str("config", cfg.Path).Int("sdk", cfg.SDKInt).Msg("configuration resolved")
	return nil
}

// sdk returns the --sdk flag if set, else the configured SDK level.
func (a *app) sdk(cmd *cobra.Command, flag int) int {
	if cmd.Flags().Changed("sdk") {
		return flag
	}
	return a.cfg.SDKInt
}

// includeStorage returns the --storage flag if set, else the configured default.
func (a *app) includeStorage(cmd *cobra.Command, flag bool) bool {
	if cmd.Flags().Changed("storage") {
		return flag
	}
	return a.cfg.IncludeStorage
}
