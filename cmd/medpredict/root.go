package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"medpredict/internal/common/fsutil"
	"medpredict/internal/config"
)

// options holds the persistent flags shared by all subcommands.
type options struct {
	configPath string
	modelsDir  string
	addr       string
	logLevel   string
	logFormat  string
}

func buildRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "medpredict",
		Short:         "Disease prediction forms backed by pre-trained classifiers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (.yaml, .yml, .json or .toml)")
	pf.StringVar(&opts.modelsDir, "models-dir", "", "Directory to scan for classifier artifacts (default ./models)")
	pf.StringVar(&opts.addr, "addr", "", "HTTP listen address (default :8080)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: console|json")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the prediction forms and JSON API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd, opts)
			},
		},
		newModelsCmd(opts),
		newSchemaCmd(),
		newPredictCmd(opts),
	)
	return root
}

// resolveConfig layers defaults, the config file, MEDPREDICT_* variables
// (including those from a local .env) and finally flags.
func resolveConfig(opts *options) (config.Config, error) {
	cfg := config.Defaults()
	if fsutil.PathExists(".env") {
		if err := godotenv.Load(); err != nil {
			return cfg, fmt.Errorf("load .env: %w", err)
		}
	}
	if opts.configPath != "" {
		fileCfg, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = config.Merge(cfg, fileCfg)
	}
	envCfg, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		return cfg, err
	}
	cfg = config.Merge(cfg, envCfg)
	cfg = config.Merge(cfg, config.Config{
		Addr:      opts.addr,
		ModelsDir: opts.modelsDir,
		LogLevel:  opts.logLevel,
		LogFormat: opts.logFormat,
	})
	return cfg, nil
}

func newLogger(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
