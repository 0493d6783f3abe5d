// @title PAES Intelligence API
// @version 1.0
// @description Backend del sistema de preparación PAES: progreso, recomendaciones, planes inteligentes y diagnósticos.

// @contact.name Soporte API
// @contact.email soporte@puntaje-inteligente.cl

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/app"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/config"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/configwatcher"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "directorio del archivo de configuración")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig(filepath.Join(*configPath, "config.yaml"), cfg, func(newCfg interface{}) {
		if reloaded, ok := newCfg.(*config.Config); ok {
			application.ApplyConfig(reloaded)
		}
	})

	application.Run()
}
