package main

import (
	"github.com/spf13/cobra"

	"cix/internal/config"
	"cix/internal/logging"
	"cix/internal/query"
	"cix/internal/version"
)

var (
	rootFlag     string
	formatFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "cix",
	Short: "cix - code intelligence indexer",
	Long: `cix indexes source trees for fast symbol search, reference lookup and
change tracking. It keeps everything in memory and rebuilds from source,
so there is no database to manage.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("cix version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".", "Project root directory")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human", "Output format: json or human")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}

// newEngine loads configuration for the root flag and wires up an engine.
func newEngine() (*query.Engine, *config.Config, error) {
	cfg, err := config.LoadConfig(rootFlag)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(cfg.Logging.Format),
		Level:  logging.ParseLevel(level),
	})

	return query.NewEngine(cfg, logger), cfg, nil
}

// emit prints resp in the selected output format.
func emit(resp interface{}) error {
	out, err := FormatResponse(resp, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	rootCmd.Println(out)
	return nil
}
