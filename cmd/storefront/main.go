package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hoanglb/billiards-store/internal/admin"
	"github.com/hoanglb/billiards-store/internal/catalog"
	"github.com/hoanglb/billiards-store/internal/config"
	"github.com/hoanglb/billiards-store/internal/db"
	"github.com/hoanglb/billiards-store/internal/httpx"
	"github.com/hoanglb/billiards-store/internal/order"
	"github.com/hoanglb/billiards-store/internal/storage"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.PostgresDSN, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("[db] connect: %v", err)
	}
	if err := db.InitSchema(ctx, pool); err != nil {
		log.Fatalf("[db] schema: %v", err)
	}

	images, err := storage.New(cfg.ImageDir)
	if err != nil {
		log.Fatalf("[storage] %v", err)
	}

	itemRepo := catalog.NewPGRepo(pool)
	orderRepo := order.NewPGRepo(pool)
	orderSvc := order.NewService(orderRepo)
	adminRepo := admin.NewPGRepo(pool)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.CORS(cfg.CORSOrigins))
	r.Static("/images", cfg.ImageDir)

	registerRoutes(r, itemRepo, orderSvc, orderRepo, adminRepo, images)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[http] %v", err)
		}
	}()
	log.Printf("[http] storefront listening on :%s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[http] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http] shutdown: %v", err)
	}
	pool.Close()
}
