package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/trendhive/storefront/internal/config"
	"github.com/trendhive/storefront/internal/httpx"
	kafkax "github.com/trendhive/storefront/internal/kafka"
	"github.com/trendhive/storefront/internal/postgres"
	"github.com/trendhive/storefront/internal/redisx"
	"github.com/trendhive/storefront/internal/shop"
	"github.com/trendhive/storefront/internal/sqlite"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store shop.Store
	switch cfg.StoreBackend {
	case "postgres":
		store, err = postgres.Open(ctx, cfg.PostgresDSN)
	default:
		store, err = sqlite.Open(cfg.SQLitePath)
	}
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.StoreBackend, err)
	}
	defer store.Close()

	h := &httpx.Handler{Store: store, Service: cfg.ServiceName}

	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		h.Redis = rdb
	}

	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, shop.TopicOrderPlaced, 1024)
		prod.Start(ctx)
		h.Producer = prod
	}

	router := httpx.NewRouter(cfg.StaticDir)
	h.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.Printf("HTTP listening at %s (store=%s)", cfg.HTTPAddr, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(shutdownCtx)
	if prod != nil {
		prod.Close()
	}
}
