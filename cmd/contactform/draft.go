package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/draft"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/storage"
)

var showJSON bool

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Inspect or discard the stored draft",
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored draft",
	RunE:  runDraftShow,
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored draft",
	RunE:  runDraftClear,
}

func init() {
	draftShowCmd.Flags().BoolVar(&showJSON, "json", false, "print the raw draft as JSON")
	draftCmd.AddCommand(draftShowCmd, draftClearCmd)
	rootCmd.AddCommand(draftCmd)
}

func runDraftShow(cmd *cobra.Command, _ []string) error {
	app, stop, err := startApp(cmd.Context())
	if err != nil {
		return err
	}
	defer stop()

	var (
		found   model.Draft
		readErr error
	)
	if err := app.Loop.Do(cmd.Context(), func() {
		found, readErr = app.Drafts.Peek()
	}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case errors.Is(readErr, storage.ErrNotFound):
		fmt.Fprintln(out, "Nenhum rascunho salvo.")
		return nil
	case errors.Is(readErr, draft.ErrExpiredDraft):
		fmt.Fprintln(out, "O rascunho salvo expirou e será descartado.")
		return nil
	case errors.Is(readErr, draft.ErrMalformedDraft):
		fmt.Fprintln(out, "O rascunho salvo está corrompido e será descartado.")
		return nil
	}
	if readErr != nil {
		return readErr
	}

	if showJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(found)
	}
	fmt.Fprintf(out, "Salvo em:   %s\n", found.SavedAt().Format(time.RFC3339))
	fmt.Fprintf(out, "Nome:       %s\n", found.Name)
	fmt.Fprintf(out, "E-mail:     %s\n", found.Email)
	fmt.Fprintf(out, "Interesse:  %s\n", model.InterestLabels[model.Interest(found.Interest)])
	fmt.Fprintf(out, "Mensagem:   %s\n", found.Message)
	return nil
}

func runDraftClear(cmd *cobra.Command, _ []string) error {
	app, stop, err := startApp(cmd.Context())
	if err != nil {
		return err
	}
	defer stop()

	var clearErr error
	if err := app.Loop.Do(cmd.Context(), func() {
		clearErr = app.Drafts.Clear()
	}); err != nil {
		return err
	}
	if clearErr != nil {
		return clearErr
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Rascunho removido.")
	return nil
}
