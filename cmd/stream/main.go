package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"memecoin-client-go/internal/common"
	"memecoin-client-go/internal/config"
	"memecoin-client-go/internal/scenarios"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger, _ := zap.NewProduction()
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger, loggerCleanup := common.InitializeLogger(cfg.LogLevel)
	defer loggerCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Starting meme coin stream listener")

	services, err := common.InitializeServices(ctx, logger, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if services.API.Token() == "" {
		if _, err := services.API.Login(ctx, cfg.Auth.Email, cfg.Auth.Password); err != nil {
			logger.Fatal("Failed to log in", zap.Error(err))
		}
	}

	watchlist, err := common.LoadWatchlist(cfg.Stream.WatchlistFile)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(watchlist.Coins) == 0) {
		logger.Info("No watchlist configured, using defaults", zap.String("file", cfg.Stream.WatchlistFile))
		watchlist = common.DefaultWatchlist()
	} else if err != nil {
		logger.Fatal("Failed to load watchlist", zap.Error(err))
	}

	client := services.NewStreamClient()
	scenarios.RegisterHandlers(client, services, scenarios.NewPrinter(os.Stdout))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", services.Metrics.Handler())
		server := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			logger.Info("Serving metrics", zap.String("addr", cfg.Metrics.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		if _, err := client.Connect(gctx); err != nil {
			return err
		}
		if err := watchlist.Subscribe(client); err != nil {
			client.Disconnect()
			return err
		}

		logger.Info("Stream listener running - waiting for messages...")
		logger.Info("Press Ctrl+C to stop")

		select {
		case <-gctx.Done():
			client.Disconnect()
			return nil
		case <-client.Done():
			return errors.New("websocket connection closed by server")
		}
	})

	g.Go(func() error {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received, stopping stream listener...", zap.String("signal", sig.String()))
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Stream listener stopped", zap.Error(err))
	} else {
		logger.Info("Stream listener stopped gracefully")
	}

	printSummary(services)
}

func printSummary(services *common.Services) {
	if services.DbService == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts, err := services.DbService.CountEventsByType(ctx)
	if err != nil {
		services.Logger.Warn("Failed to count journaled events", zap.Error(err))
		return
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	fmt.Println()
	common.PrintHeader(os.Stdout, "JOURNALED STREAM EVENTS", common.DefaultWidth)
	if len(types) == 0 {
		fmt.Println("No events recorded")
	}
	for _, t := range types {
		fmt.Printf("%-20s %d\n", t, counts[t])
	}
	common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)
}
