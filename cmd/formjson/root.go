package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tomasbasham/formjson"
	"github.com/tomasbasham/formjson/internal/config"
	"github.com/tomasbasham/formjson/internal/logging"
	"github.com/tomasbasham/formjson/internal/prompt"
)

// app carries the state shared by every subcommand once configuration has
// been loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger

	// newDriver creates the prompt driver used by fill; tests replace it.
	newDriver func() prompt.Driver
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func newApp() *app {
	return &app{
		v: config.New(),
		newDriver: func() prompt.Driver {
			return prompt.NewSurveyDriver()
		},
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formjson",
		Short: "Serialize HTML forms into key-value data",
		Long: `formjson finds the first element carrying the form marker class in an
HTML page and serializes its controls into an ordered key-value structure.
Multi-select controls contribute the list of their selected values; every
other control contributes its raw value.

Configuration is read from .formjson.yaml (or --config), FORMJSON_*
environment variables and flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default .formjson.yaml)")
	flags.String("class", formjson.DefaultClass, "marker class of the form to serialize")
	flags.StringP("format", "f", "json", "output format: json, yaml or urlencoded")
	flags.String("indent", "  ", "indentation for json and yaml output")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")

	cmd.AddCommand(newSubmitCmd(a), newWatchCmd(a), newFillCmd(a))
	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) driver() prompt.Driver {
	return a.newDriver()
}

func (a *app) encoder(w io.Writer) (*formjson.Encoder, error) {
	format, err := a.cfg.OutputFormat()
	if err != nil {
		return nil, err
	}
	enc := formjson.NewEncoder(w, format)
	enc.SetIndent(a.cfg.Indent)
	return enc, nil
}

// bind creates a handler for the configured form class that writes each
// serialized form to w.
func (a *app) bind(ctx context.Context, src formjson.DocumentSource, w io.Writer) (*formjson.Handler, error) {
	enc, err := a.encoder(w)
	if err != nil {
		return nil, err
	}
	return formjson.Bind(ctx, src, a.cfg.Class,
		formjson.WithLogger(a.logger),
		formjson.WithEncoder(enc),
	)
}
