package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/jonboulle/clockwork"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/config"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/db"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/engine"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/handler"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/middleware"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/repository"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/router"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "youcra-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)

	manager := engine.NewManager(clockwork.NewRealClock(), middleware.Logger)
	defer manager.CloseAll()

	handler.InitMetrics(pool, manager)
	manager.SetHooks(handler.EngineHooks())

	certRepo := repository.NewCertificationRepo(pool)
	playlistRepo := repository.NewPlaylistRepo(pool)

	certSvc := service.NewCertificationService(certRepo, manager, cache)
	playlistSvc := service.NewPlaylistService(playlistRepo, cache)

	worker := service.NewCertWorker(pool, certRepo, cache)
	go worker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "Youcra Certification API",
		ServerHeader: "Youcra",
	})

	h := &router.Handlers{
		Session:       handler.NewSessionHandler(manager, playlistSvc, certSvc),
		Certification: handler.NewCertificationHandler(certSvc),
		Playlist:      handler.NewPlaylistHandler(playlistSvc),
		Stats:         handler.NewStatsHandler(certSvc),
		Export:        handler.NewExportHandler(certSvc),
		Health:        handler.NewHealthHandler(pool, cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("shutting down")
		cancel()
		_ = app.Shutdown()
	}()

	log.Printf("youcra certification backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
