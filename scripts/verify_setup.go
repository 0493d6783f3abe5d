// Verificación manual del entorno: conectividad a MySQL y Redis, catálogo
// PAES sembrado y conteo de nodos. Imprime un reporte y termina con código
// 0 si todo está en orden, 1 si algo falla.
//
// Uso: go run scripts/verify_setup.go

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/config"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/database"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("no se pudo leer la configuración: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("error al parsear la configuración: %v", err)
	}

	logger.InitLogger(&cfg)

	failures := 0
	report := func(name string, err error, detail string) {
		if err != nil {
			fmt.Printf("  [FAIL] %-28s %v\n", name, err)
			failures++
			return
		}
		fmt.Printf("  [OK]   %-28s %s\n", name, detail)
	}

	fmt.Println("==================================================")
	fmt.Println(" Verificación de entorno PAES Intelligence")
	fmt.Println("==================================================")

	db, err := database.InitDB(&cfg.Database)
	report("MySQL", err, fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName))
	if err != nil {
		fmt.Println("==================================================")
		os.Exit(1)
	}

	var testCount, skillCount, nodeCount int64
	db.Model(&model.PAESTest{}).Count(&testCount)
	db.Model(&model.PAESSkill{}).Count(&skillCount)
	db.Model(&model.LearningNode{}).Count(&nodeCount)

	catalogErr := error(nil)
	if testCount == 0 || skillCount == 0 {
		catalogErr = fmt.Errorf("catálogo incompleto: %d pruebas, %d habilidades", testCount, skillCount)
	}
	report("Catálogo PAES", catalogErr, fmt.Sprintf("%d pruebas, %d habilidades", testCount, skillCount))
	report("Nodos de aprendizaje", nil, fmt.Sprintf("%d nodos", nodeCount))

	rdb, err := database.InitRedis(&cfg.Redis)
	report("Redis", err, fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port))
	if err == nil {
		pingErr := rdb.Ping(context.Background()).Err()
		report("Redis ping", pingErr, "PONG")
	}

	fmt.Println("==================================================")
	if failures > 0 {
		fmt.Printf(" Resultado: %d verificaciones fallidas\n", failures)
		os.Exit(1)
	}
	fmt.Println(" Resultado: todo en orden")
}
