package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/checkup/internal/config"
	"github.com/cory-johannsen/checkup/internal/evaluator"
	"github.com/cory-johannsen/checkup/internal/observability"
	"github.com/cory-johannsen/checkup/internal/render"
	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
	"github.com/cory-johannsen/checkup/internal/scripting"
	"github.com/cory-johannsen/checkup/internal/storage/postgres"
)

// errDatabaseDisabled is returned when a command needs report history but the
// database is switched off.
var errDatabaseDisabled = errors.New("report history requires database.enabled")

const dbTimeout = 10 * time.Second

type reportFlags struct {
	noColor bool
	record  bool
}

func (a *app) newReportCmd() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "report <save-file>",
		Short: "Print the completion report for a save file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd, args[0], f)
		},
	}
	cmd.Flags().String("format", "", "output format: text, yaml or json")
	cmd.Flags().String("goals", "", "directory of custom goal scripts")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable ANSI colour in text output")
	cmd.Flags().BoolVar(&f.record, "record", false, "store the report summary in the database")
	_ = a.v.BindPFlag("report.format", cmd.Flags().Lookup("format"))
	_ = a.v.BindPFlag("report.goals_dir", cmd.Flags().Lookup("goals"))
	return cmd
}

func (a *app) runReport(cmd *cobra.Command, path string, f reportFlags) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if f.record && !cfg.Database.Enabled {
		return errDatabaseDisabled
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	format, err := render.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	done := observability.Stage(logger, "load")
	doc, err := save.LoadFile(path)
	if err != nil {
		return err
	}
	snap, err := save.NewSnapshot(doc)
	if err != nil {
		return err
	}
	done(zap.String("path", path), zap.String("farmer", snap.FarmerName()))

	var opts []evaluator.Option
	if cfg.Report.GoalsDir != "" {
		done = observability.Stage(logger, "goals")
		goals, err := scripting.LoadGoals(cfg.Report.GoalsDir, cfg.Report.InstructionLimit, logger)
		if err != nil {
			return err
		}
		defer goals.Close()
		opts = append(opts, evaluator.WithSections(goals))
		done(zap.Int("goals", len(goals.Goals())))
	}

	done = observability.Stage(logger, "evaluate")
	full := evaluator.New(opts...).Assemble(snap)
	done(zap.Int("sections", len(full.Sections)))

	err = render.Render(cmd.OutOrStdout(), full, render.Options{
		Format: format,
		Color:  cfg.Report.Color && !f.noColor,
	})
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if f.record {
		return record(cmd.Context(), cfg.Database, logger, snap, full)
	}
	return nil
}

// record stores the summary of full.
//
// Precondition: db.Enabled must be true.
func record(ctx context.Context, db config.DatabaseConfig, logger *zap.Logger, snap *save.Snapshot, full report.Full) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	done := observability.Stage(logger, "record")
	pool, err := postgres.NewPool(ctx, db)
	if err != nil {
		return err
	}
	defer pool.Close()

	sum, err := pool.Reports().Save(ctx, postgres.SummaryFromReport(snap, full))
	if err != nil {
		return err
	}
	done(zap.String("id", sum.ID.String()), zap.Int("grandpa_score", sum.GrandpaScore))
	return nil
}
