package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/contactbook/internal/app"
	"github.com/dmitrijs2005/contactbook/internal/buildinfo"
	"github.com/dmitrijs2005/contactbook/internal/config"
	"github.com/dmitrijs2005/contactbook/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	a, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	err = a.Run(ctx)
	_ = a.Close()

	if err != nil {
		logger.Error(ctx, "stopped", "error", err)
		os.Exit(1)
	}
}
