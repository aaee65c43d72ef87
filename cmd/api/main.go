package main

import (
	"context"
	"log"

	"github.com/smartsdlc/go-sdlc-backend/config"
	"github.com/smartsdlc/go-sdlc-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer pool.Close()

	sqlDB, err := bootstrap.OpenSQLDB(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("open sql database: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("open redis: %v", err)
	}
	defer redisClient.Close()

	router, analyticsService := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "sdlc-backend",
		Config:      cfg,
		DB:          pool,
		SQLDB:       sqlDB,
		Redis:       redisClient,
	})

	scheduler := analyticsService.StartScheduler()
	defer scheduler.Stop()

	log.Printf("[info] sdlc-backend listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
