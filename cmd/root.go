package cmd

import (
	"fmt"

	"github.com/cottand/typenv/internal/config"
	"github.com/cottand/typenv/internal/log"
	"github.com/spf13/cobra"
)

var cmdLogger = log.DefaultLogger.With("section", "cmd")

// loaded is the configuration picked up by Configure
var loaded = config.Default()

var (
	configPath *string
	logLevel   *string
)

// AddPersistentFlags registers the flags every subcommand accepts on root
func AddPersistentFlags(root *cobra.Command) {
	configPath = root.PersistentFlags().StringP("config", "c", "", "path to "+config.FileName+" (default: search upwards from the working directory)")
	logLevel = root.PersistentFlags().StringP("log-level", "l", "", "log level, overriding the config file")
}

// Configure loads the config file and sets up logging. It is meant as a PersistentPreRunE.
func Configure(cmd *cobra.Command, _ []string) error {
	var err error
	if configPath != nil && *configPath != "" {
		loaded, err = config.Load(*configPath)
	} else {
		loaded, err = config.LoadFrom(".")
	}
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if logLevel != nil && *logLevel != "" {
		loaded.Log.Level = *logLevel
	}
	if err := loaded.ConfigureLogging(); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	level, _ := loaded.SlogLevel()
	cmdLogger.Debug("configured", "root", loaded.Root, "level", level.String(), "command", cmd.Name())
	return nil
}
