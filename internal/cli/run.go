package cli

import (
	"context"

	"quizdojo/internal/app"
)

func runTUI(ctx context.Context, cfg app.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}
