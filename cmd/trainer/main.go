package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"copra/internal/config"
	"copra/internal/storage"
	"copra/internal/trainer"
	"copra/internal/util"
	"copra/internal/warehouse"
	"copra/pkg/logger"
	"copra/pkg/logger/console"
)

// The trainer runs in one of two modes. The default is a batch run over
// the configured client allowlist; TRAIN_MODE=queue keeps the process
// alive consuming single-client retrain requests from RabbitMQ instead.
func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()

	conn, err := pgxpool.New(ctx, util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer conn.Close()

	s3, err := storage.NewS3Client(ctx)
	if err != nil {
		logger.Fatal("Failed to create S3 client", "err", err)
	}

	src := warehouse.New(conn)
	sink := storage.NewArtifactStore(s3, cfg.Bucket)
	params := trainer.Params{
		MinSupport:    cfg.MinSupport,
		MinConfidence: cfg.MinConfidence,
		Workers:       cfg.TrainWorkers,
	}

	if util.GetEnvString("TRAIN_MODE", "batch") == "queue" {
		queueConn, err := trainer.ConnectQueue()
		if err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", "err", err)
		}
		defer queueConn.Close()

		if err := trainer.Consume(ctx, queueConn, src, sink, params); err != nil {
			logger.Fatal("Retrain consumer stopped", "err", err)
		}
		return
	}

	if len(cfg.TrainClients) == 0 {
		logger.Fatal("No clients configured, set TRAIN_CLIENTS")
	}

	results := trainer.Run(ctx, src, sink, cfg.TrainClients, params)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed == len(results) {
		os.Exit(1)
	}
}
