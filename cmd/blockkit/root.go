package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reoring/blockkit/i18n"
	"github.com/reoring/blockkit/internal/config"
	"github.com/reoring/blockkit/internal/report"
)

// version is set via -ldflags.
var version = "dev"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfgFile string
	cfg     *config.Config
	logger  *log.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "blockkit",
		Short: "Validate Slack Block Kit documents",
		Long: `blockkit checks messages, modals, blocks and elements against the
Block Kit limits and reports every violation with its JSON Pointer path.

Documents may be written as JSON or YAML (chosen by file extension).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./.blockkit.yaml, then ~/.blockkit.yaml)")
	pf.String("lang", "en", "language of violation messages (en, ja)")
	pf.String("format", config.FormatText, "output format (text, json)")
	pf.String("color", config.ColorAuto, "colorize text output (auto, always, never)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newSchemaCmd(a))
	root.AddCommand(newFamiliesCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, path, err := config.Load(config.LoadOptions{ConfigFilePath: a.cfgFile, Flags: cmd.Flags()})
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}
	a.cfg = cfg
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  cfg.Level(),
	})
	if path != "" {
		a.logger.Debug("loaded config", "path", path)
	}
	i18n.SetLanguage(cfg.Lang)
	return nil
}

func (a *app) writeResults(results []report.Result) error {
	if a.cfg.Format == config.FormatJSON {
		return report.WriteJSON(a.stdout, results)
	}
	return report.WriteText(a.stdout, report.NewStyles(a.stdout, a.cfg.Color), results)
}
