package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/shoaib/notekeeper/internal/buildinfo"
	"github.com/shoaib/notekeeper/internal/cli"
	"github.com/shoaib/notekeeper/internal/config"
	"github.com/shoaib/notekeeper/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}
	defer app.Close(ctx)

	app.Run(ctx)
}
