// Command api-server runs the checkout HTTP API.
package main

import (
	"context"

	sdkapp "github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/storesys/checkout/internal/app"
)

func main() {
	sdkapp.Run(run)
}

func run(ctx context.Context, lg *zap.Logger, m *sdkapp.Telemetry) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	return app.Run(ctx, lg, m, cfg)
}
