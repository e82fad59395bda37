package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill and submit the contact form",
	Long: `Prompt for name, e-mail, interest and message. A stored draft is
restored first; every answer updates it. Declining or interrupting keeps the
draft for the next run.`,
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	app, stop, err := startApp(ctx)
	if err != nil {
		return err
	}
	defer stop()

	sweeper, err := app.Sweeper(cfg.Draft.SweepSchedule)
	if err != nil {
		return err
	}
	sweeper.Start()
	defer sweeper.Stop()

	session, err := app.Session(tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())))
	if err != nil {
		return err
	}

	result, err := session.Run(ctx)
	out := cmd.OutOrStdout()
	switch {
	case errors.Is(err, tui.ErrAborted):
		fmt.Fprintln(out, "Interrompido. O rascunho foi mantido.")
		return nil
	case err != nil:
		return err
	case result.Submitted:
		logger.Info("contact form submitted", zap.Int("attempts", result.Attempts))
	default:
		fmt.Fprintln(out, "Envio cancelado. O rascunho foi mantido.")
	}
	return nil
}
