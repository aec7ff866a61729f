package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ratios/internal/buildinfo"
	"github.com/cleared-dev/ratios/internal/config"
	"github.com/cleared-dev/ratios/internal/logging"
)

// DefaultConfigFile is read from the working directory when --config is
// not given.
const DefaultConfigFile = "ratios.yaml"

type rootOptions struct {
	configPath string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "ratios",
		Short:   "Financial ratio analysis of balance sheets and income statements",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ./"+DefaultConfigFile+" when present)")

	rootCmd.AddCommand(newAnalyzeCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))

	return rootCmd
}

// loadConfig reads the --config file, falling back to ./ratios.yaml and
// then to defaults. Environment overrides apply in every case.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("checking %s: %w", DefaultConfigFile, err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) (*log.Logger, error) {
	logger, err := logging.New(w, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	return logger, nil
}
