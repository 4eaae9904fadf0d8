package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hatatakip_backend/internals/configs"
	database "hatatakip_backend/internals/databases"
	statsService "hatatakip_backend/internals/features/stats/service"
	helper "hatatakip_backend/internals/helpers"
	"hatatakip_backend/internals/helpers/events"
	"hatatakip_backend/internals/helpers/imagex"
	"hatatakip_backend/internals/helpers/storage"
	"hatatakip_backend/internals/helpers/uploads"
	"hatatakip_backend/internals/middlewares"
	routes "hatatakip_backend/internals/route"
	routeDetails "hatatakip_backend/internals/route/details"
	"hatatakip_backend/internals/scheduler"
	"hatatakip_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()

	// 🔌 DB connect + pool
	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("❌ DB bağlantısı kurulamadı: %v", err)
	}
	database.TunePool(db, cfg.DB)

	if cfg.DB.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("❌ Migrasyon başarısız: %v", err)
		}
	}

	// 🌱 go run . seed
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seeds.RunAllSeeds(db); err != nil {
			log.Fatalf("❌ Seed başarısız: %v", err)
		}
		database.Close(db)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := database.Ping(ctx, db); err != nil {
		log.Printf("⚠️ DB ping başarısız: %v", err)
	}
	cancel()
	database.WarmUp(db)

	// 🖼️ blob store + upload pipeline
	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("❌ Storage yapılandırılamadı: %v", err)
	}
	uploader := uploads.New(store, cfg.Upload.MaxBytes, imagex.Options{
		ConvertWebP:  cfg.Upload.ConvertWebP,
		MaxDimension: cfg.Upload.MaxDimension,
		Quality:      cfg.Upload.WebPQuality,
	})

	publisher := events.FromConfig(cfg.Kafka.Broker, cfg.Kafka.Topic)
	reporter := middlewares.NewReporter(cfg.RollbarToken, cfg.AppEnv)
	stats := statsService.NewStatsService(db)

	// ⏱ DB hazır olduktan sonra scheduler
	keepAlive, err := scheduler.Start(cfg.KeepAliveCron, &scheduler.KeepAlive{DB: db, Stats: stats})
	if err != nil {
		log.Fatalf("❌ Scheduler başlatılamadı: %v", err)
	}

	app := routes.NewApp(routes.Deps{
		Deps: routeDetails.Deps{
			DB:        db,
			Validator: helper.NewValidator(),
			Store:     store,
			Uploader:  uploader,
			Events:    publisher,
			Stats:     stats,
		},
		Reporter: reporter,
		Config:   cfg,
	})

	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Kapatılıyor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	if keepAlive != nil {
		<-keepAlive.Stop().Done()
	}
	if err := publisher.Close(); err != nil {
		log.Printf("[EVENTS] close error: %v", err)
	}
	reporter.Close()
	database.Close(db)
}
