// Package main provides the CLI entry point for lockersheet.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ukaji3/lockersheet-go/internal/config"
	"github.com/ukaji3/lockersheet-go/internal/logging"
)

// app holds the state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// flagKeys binds command-line flags to configuration keys.
var flagKeys = map[string]string{
	"verbose": config.KeyVerbose,
	"logo":    config.KeyLogoPath,
	"sheet":   config.KeySheet,
	"addr":    config.KeyAddr,
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "lockersheet",
		Short: "Generate Amazon Locker sheets from Excel files",
		Long: `lockersheet reads an Amazon Locker Excel file, lets you pick a record by
its Locker Name, and renders that record into a Word document with the
property and locker details.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./lockersheet.yaml or ~/.config/lockersheet/lockersheet.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newLockersCmd(a),
		newPreviewCmd(a),
		newRenderCmd(a),
		newInspectCmd(a),
		newServeCmd(a),
	)

	return rootCmd
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	v := viper.New()
	if err := config.Init(v, a.cfgFile); err != nil {
		return err
	}

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("Using config file", zap.String("path", used))
	}
	return nil
}
