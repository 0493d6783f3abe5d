package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/config"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/metricsd"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "directorio del archivo de configuración")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	store := metricsd.NewStore(cfg.Metrics)
	router := metricsd.NewRouter(store)

	port := cfg.Metrics.Port
	if port == "" {
		port = "3001"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Metrics listener running on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down metrics listener...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Metrics listener exiting")
}
