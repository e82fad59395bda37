package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sweepWatch bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Discard the stored draft when it has expired",
	Long: `Check the stored draft against the retention window and remove it when
expired. With --watch the check repeats on the configured schedule until
interrupted.`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepWatch, "watch", false, "keep sweeping on the configured schedule")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	app, stop, err := startApp(ctx)
	if err != nil {
		return err
	}
	defer stop()

	var removed bool
	if err := app.Loop.Do(ctx, func() {
		removed = app.Drafts.Sweep()
	}); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if removed {
		fmt.Fprintln(out, "Rascunho expirado removido.")
	} else {
		fmt.Fprintln(out, "Nenhum rascunho expirado.")
	}
	if !sweepWatch {
		return nil
	}

	sweeper, err := app.Sweeper(cfg.Draft.SweepSchedule)
	if err != nil {
		return err
	}
	sweeper.Start()
	defer sweeper.Stop()
	logger.Info("sweeping on schedule",
		zap.String("schedule", cfg.Draft.SweepSchedule),
		zap.Time("next", sweeper.Next()),
	)
	<-ctx.Done()
	return nil
}
