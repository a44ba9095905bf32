package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"memecoin-client-go/internal/common"
	"memecoin-client-go/internal/config"
	"memecoin-client-go/internal/scenarios"

	"go.uber.org/zap"
)

func main() {
	runFlag := flag.String("run", "all",
		"Comma-separated scenarios to run ("+strings.Join(scenarios.All(), ", ")+"), or all")
	listFlag := flag.Bool("list", false, "List the available scenarios and exit")
	flag.Parse()

	if *listFlag {
		for _, name := range scenarios.All() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logger, _ := zap.NewProduction()
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger, loggerCleanup := common.InitializeLogger(cfg.LogLevel)
	defer loggerCleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := common.InitializeServices(ctx, logger, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	names := scenarios.All()
	if *runFlag != "all" {
		names = strings.Split(*runFlag, ",")
	}

	err = scenarios.Run(ctx, services, names, os.Stdout)
	services.Close()
	if err != nil {
		logger.Error("Scenarios finished with errors", zap.Error(err))
		loggerCleanup()
		os.Exit(1)
	}
}
