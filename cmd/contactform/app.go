package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/pkg/draft"
	"github.com/goliatone/go-contactform/pkg/storage"
	"github.com/goliatone/go-contactform/pkg/toast"
)

// buildApp wires the application from resolved configuration.
func buildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*contactform.App, error) {
	slots, err := storage.NewFile(cfg.Storage.Dir, storage.WithQuota(cfg.Storage.QuotaBytes))
	if err != nil {
		return nil, fmt.Errorf("open slots: %w", err)
	}

	selector := toast.ManifestSelector{Manifest: toast.NewManifest(cfg.Toast.Theme, cfg.Toast.Tokens)}
	return contactform.New(ctx, slots,
		contactform.WithLogger(logger),
		contactform.WithDraftOptions(
			draft.WithKey(cfg.Draft.Key),
			draft.WithRetention(cfg.Draft.Retention),
			draft.WithSavedDelay(cfg.Draft.SavedDelay),
		),
		contactform.WithToastOptions(
			toast.WithDisplay(cfg.Toast.Display),
			toast.WithExit(cfg.Toast.Exit),
		),
		contactform.WithThemeSelector(selector, cfg.Toast.Theme, cfg.Toast.Variant),
	)
}

// startApp builds the app and runs its loop until ctx is done. The returned
// stop function cancels the loop and waits for it.
func startApp(ctx context.Context) (*contactform.App, func(), error) {
	app, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = app.Loop.Run(loopCtx)
	}()
	return app, func() {
		cancel()
		<-done
	}, nil
}
