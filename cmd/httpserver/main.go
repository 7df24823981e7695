// Command httpserver stands up the Exchange facade behind an HTTP surface,
// grounded on olyamironova-exchange-engine/cmd/server/main.go's wiring:
// load config, build dependencies, run the HTTP server.
package main

import (
	"log"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/myronova/obx/internal/cache"
	"github.com/myronova/obx/internal/config"
	"github.com/myronova/obx/internal/engine"
	"github.com/myronova/obx/internal/httpapi"
	"github.com/myronova/obx/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	logger, err := logging.New(logging.Options{Level: level, OutputPaths: []string{"stdout"}})
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	opts := []engine.Option{engine.WithEventBusCapacity(cfg.EventBusCapacity)}
	if cfg.Redis.Enabled {
		opts = append(opts, engine.WithSnapshotCache(
			cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, 5*time.Minute),
		))
	}

	exchange := engine.NewExchange(logger, opts...)
	defer exchange.Shutdown()

	server := httpapi.NewServer(exchange, logger)
	logger.Infow("starting HTTP server", "addr", cfg.HTTPAddr)
	if err := server.Router().Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
