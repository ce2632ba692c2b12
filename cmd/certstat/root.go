package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ============================================================================
// CERTSTAT CLI — Top-K certified applications per feature
// ============================================================================

// version is populated by build-time variables.
var version = "dev"

// app carries the per-invocation dependencies shared by commands.
type app struct {
	v       *viper.Viper
	fs      afero.Fs
	cfgFile string
}

func newApp(fs afero.Fs) *app {
	return &app{v: viper.New(), fs: fs}
}

// Execute runs the root command against the OS filesystem.
func Execute() error {
	cmd := newRootCmd(newApp(afero.NewOsFs()))
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		printError(cmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "certstat",
		Short: "Rank the most frequent occupations and states of certified applications",
		Long: `certstat reads a directory of ';'-delimited labor-certification exports,
counts CERTIFIED applications per occupation, state, or any configured feature,
and writes one top-K report per feature.

Examples:
  certstat --input ./input --output ./output
  certstat --top 5 --format json
  certstat --features features.yaml --workers 4`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			a.initLogging(cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCount(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.certstat/certstat.yaml)")
	pf.String("input", "./input", "directory of input files")
	pf.String("features", "", "YAML/JSON file declaring features and header aliases (default: STATUS, OCCUPATIONS, STATES)")
	pf.String("log-level", "disabled", "log level (debug, info, warn, error, disabled)")
	pf.BoolP("quiet", "q", false, "suppress progress output")

	f := cmd.Flags()
	f.String("output", "./output", "directory reports are written to")
	f.IntP("top", "k", 10, "number of entries per report")
	f.Int("workers", 1, "files ingested concurrently")
	f.String("format", "text", "report format (text, json, yaml)")
	f.String("metrics-file", "", "write ingestion metrics in Prometheus text format to this file")

	_ = a.v.BindPFlags(pf)
	_ = a.v.BindPFlags(f)

	cmd.AddCommand(newInspectCmd(a))
	return cmd
}

// initConfig reads in config file and ENV variables if set.
func (a *app) initConfig() error {
	_ = godotenv.Load()

	a.v.SetEnvPrefix("CERTSTAT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home + "/.certstat")
	}
	a.v.AddConfigPath(".")
	a.v.SetConfigName("certstat")
	a.v.SetConfigType("yaml")

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// initLogging configures the global logger
func (a *app) initLogging(w io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	switch a.v.GetString("log-level") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
}
