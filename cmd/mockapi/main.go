package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/wardrobe/internal/buildinfo"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
	"github.com/dmitrijs2005/wardrobe/internal/mockapi"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := mockapi.NewConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := mockapi.New(*cfg, logger).Run(ctx); err != nil {
		logger.Error(ctx, err.Error())
		stop()
		os.Exit(1)
	}

}
