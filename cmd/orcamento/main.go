package main

import (
	"context"
	"os"

	"orcamento/internal/backend"
	"orcamento/internal/cli"
	"orcamento/internal/config"
	"orcamento/internal/ledger"
	"orcamento/internal/log"
	"orcamento/internal/menu"
	"orcamento/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig((*config.Config).Validate)

	ctx := context.Background()

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	b, err := backend.NewFactory(logger).Open(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to open backend", log.FieldError, err, log.FieldBackend, bcfg.Type)
		os.Exit(1)
	}

	opts := append(b.ServiceOptions(), services.WithLogger(logger))
	svc := services.NewLedgerService(ledger.New(), opts...)

	if _, err := svc.Restore(ctx, b.Loader); err != nil {
		logger.Error("Failed to restore ledger", log.FieldError, err, log.FieldBackend, bcfg.Type)
		svc.Close()
		os.Exit(1)
	}

	m := menu.New(svc, os.Stdin, os.Stdout,
		menu.WithCurrency(cfg.CurrencySymbol),
		menu.WithLogger(logger))
	runErr := m.Run(ctx)

	if err := svc.Close(); err != nil {
		logger.Warn("Failed to close backend", log.FieldError, err)
	}
	if runErr != nil {
		logger.Error("Menu stopped", log.FieldError, runErr)
		os.Exit(1)
	}
}
