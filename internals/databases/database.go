package database

import (
	"context"
	"log"
	"time"

	"hatatakip_backend/internals/configs"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Supabase/PostgreSQL connection described by cfg.
func Connect(cfg configs.DBConfig) (*gorm.DB, error) {
	log.Println("🔌 PostgreSQL (Supabase) bağlantısı kuruluyor...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.PostgresDSN(),
		PreferSimpleProtocol: true, // PgBouncer (transaction pooling) uyumlu
	}), &gorm.Config{
		Logger: configs.NewGormLogger(cfg.LogLevel, cfg.SlowThreshold),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	log.Println("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.DBConfig) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[DB] pool tune err: %v", err)
		return
	}
	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if maxOpen <= 0 {
		maxOpen = 20
	}
	if maxIdle <= 0 || maxIdle > maxOpen {
		maxIdle = maxOpen / 2
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUp pings in the background so the first request finds a filled pool.
func WarmUp(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			log.Printf("[DB] warm-up ping err: %v", err)
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "sql db handle")
	}
	return errors.Wrap(sqlDB.PingContext(ctx), "ping")
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
