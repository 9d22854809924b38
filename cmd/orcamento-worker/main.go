package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"orcamento/internal/amqp"
	"orcamento/internal/cli"
	"orcamento/internal/config"
	"orcamento/internal/log"
	"orcamento/internal/storage"
	"orcamento/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig((*config.Config).ValidateWorker)
	logger = logger.WithComponent(log.ComponentWorker)

	logger.Info("Starting orcamento-worker",
		log.FieldOperation, log.OpStartup,
		"archive", cfg.ArchiveDBPath,
		"queue", cfg.AMQPQueue)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	repo := cli.InitSQLite(logger, cfg.ArchiveDBPath)
	defer repo.Close()

	archiver := worker.NewArchiveWorker(repo, logger)
	dial := func() (*amqp.Client, error) {
		return amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqp.ConsumeWithReconnect(gctx, dial, archiver.HandleEntryRecorded)
	})
	g.Go(func() error {
		report(gctx, logger, repo, cfg.ReportInterval)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", log.FieldError, err)
		repo.Close()
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully", log.FieldOperation, log.OpShutdown)
}

// report logs the archived subtotal of every month at each interval.
func report(ctx context.Context, logger *log.Logger, repo *storage.SQLiteRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			totals, err := repo.MonthTotals(ctx)
			if err != nil {
				logger.WarnContext(ctx, "Failed to read archive totals", log.FieldError, err)
				continue
			}
			for month, total := range totals {
				logger.InfoContext(ctx, "Archive month total", log.FieldMonth, month, log.FieldAmountCents, total.Cents)
			}
		}
	}
}
