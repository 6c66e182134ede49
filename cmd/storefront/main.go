package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"storefront/catalog"
	"storefront/config"
	"storefront/eventsource"
	"storefront/server"
	"storefront/session"
	"storefront/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	shutdownTracing, err := telemetry.Setup(cfg.TraceStdout, os.Stdout, server.ServiceName)
	if err != nil {
		logger.Fatal("failed to set up tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	products, err := cfg.LoadCatalog()
	if err != nil {
		logger.Fatal("failed to load catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	collation, err := cfg.CollationTag()
	if err != nil {
		logger.Fatal("invalid collation", zap.String("collation", cfg.Collation), zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("products", products.Len()),
		zap.Strings("categories", products.Categories()),
		zap.String("collation", collation.String()),
	)

	store := session.NewStore(products, logger, session.WithEngine(catalog.NewEngine(collation)))
	srv := server.New(store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = eventsource.RunServer(ctx, eventsource.ServerConfig{
		Name:            server.ServiceName,
		Port:            cfg.Port,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          logger,
		Options:         []grpc.ServerOption{grpc.StatsHandler(otelgrpc.NewServerHandler())},
	}, srv.Register())
	if err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
