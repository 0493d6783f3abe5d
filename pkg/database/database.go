package database

import (
	"fmt"
	"log"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/config"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.PAESTest{},
		&model.PAESSkill{},
		&model.LearningNode{},
		&model.NodeProgress{},
		&model.GeneratedStudyPlan{},
		&model.StudyPlanNode{},
		&model.LearningPlan{},
		&model.DiagnosticSession{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Catálogo PAES por defecto si la base está vacía
	var testCount int64
	db.Model(&model.PAESTest{}).Count(&testCount)
	if testCount == 0 {
		defaultTests := []model.PAESTest{
			{Code: "COMPETENCIA_LECTORA", Name: "Competencia Lectora", Description: "Comprensión de lectura de textos diversos"},
			{Code: "MATEMATICA_1", Name: "Matemática M1", Description: "Competencia matemática común"},
			{Code: "MATEMATICA_2", Name: "Matemática M2", Description: "Competencia matemática electiva"},
			{Code: "CIENCIAS", Name: "Ciencias", Description: "Biología, Física y Química"},
			{Code: "HISTORIA", Name: "Historia y Ciencias Sociales", Description: "Historia, geografía y ciencias sociales"},
		}
		for i := range defaultTests {
			db.Create(&defaultTests[i])
		}
	}

	var skillCount int64
	db.Model(&model.PAESSkill{}).Count(&skillCount)
	if skillCount == 0 {
		defaultSkills := []model.PAESSkill{
			{Code: "TRACK_LOCATE", Name: "Rastrear y Localizar", TestID: 1, DisplayOrder: 1},
			{Code: "INTERPRET_RELATE", Name: "Interpretar y Relacionar", TestID: 1, DisplayOrder: 2},
			{Code: "EVALUATE_REFLECT", Name: "Evaluar y Reflexionar", TestID: 1, DisplayOrder: 3},
			{Code: "SOLVE_PROBLEMS", Name: "Resolver Problemas", TestID: 2, DisplayOrder: 4},
			{Code: "REPRESENT", Name: "Representar", TestID: 2, DisplayOrder: 5},
			{Code: "MODEL", Name: "Modelar", TestID: 2, DisplayOrder: 6},
			{Code: "ARGUE_COMMUNICATE", Name: "Argumentar y Comunicar", TestID: 3, DisplayOrder: 7},
			{Code: "IDENTIFY_THEORIES", Name: "Identificar Teorías", TestID: 4, DisplayOrder: 8},
			{Code: "PROCESS_ANALYZE", Name: "Procesar y Analizar", TestID: 4, DisplayOrder: 9},
			{Code: "TEMPORAL_THINKING", Name: "Pensamiento Temporal", TestID: 5, DisplayOrder: 10},
			{Code: "SOURCE_ANALYSIS", Name: "Análisis de Fuentes", TestID: 5, DisplayOrder: 11},
		}
		for i := range defaultSkills {
			db.Create(&defaultSkills[i])
		}
	}

	return db, nil
}
