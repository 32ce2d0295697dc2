// Package main provides the checkup CLI, which prints a completion report for
// a farm save and optionally records its summary in PostgreSQL.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cory-johannsen/checkup/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries state shared by every subcommand.
type app struct {
	v          *viper.Viper
	configPath string
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}
	root := &cobra.Command{
		Use:           "checkup",
		Short:         "Farm completion checkup",
		Long:          `checkup reads a farm save and reports which achievements, milestones and evaluation points are done and what remains.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to configuration file")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	_ = a.v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(a.newReportCmd())
	root.AddCommand(a.newHistoryCmd())
	return root
}

// loadConfig reads the config file when one was given, then validates the
// merged result of defaults, file, environment, and bound flags.
//
// Postcondition: Returns a valid Config or a non-nil error.
func (a *app) loadConfig() (config.Config, error) {
	if a.configPath != "" {
		a.v.SetConfigFile(a.configPath)
		if err := a.v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return config.LoadFromViper(a.v)
}
