package model

// DifficultyTier es el nivel de dificultad asignado por los autores de contenido.
type DifficultyTier string

const (
	DifficultyBasic        DifficultyTier = "basic"
	DifficultyIntermediate DifficultyTier = "intermediate"
	DifficultyAdvanced     DifficultyTier = "advanced"
)

// TierPriority es el bucket de importancia asignado a cada nodo.
type TierPriority string

const (
	Tier1Critico       TierPriority = "tier1_critico"
	Tier2Importante    TierPriority = "tier2_importante"
	Tier3Complementario TierPriority = "tier3_complementario"
)

// swagger:model
type PAESTest struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"size:50;unique;not null" json:"code"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (PAESTest) TableName() string {
	return "paes_tests"
}

// swagger:model
type PAESSkill struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code         string `gorm:"size:50;unique;not null" json:"code"`
	Name         string `gorm:"size:100;not null" json:"name"`
	TestID       uint   `gorm:"index;not null" json:"testId"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
}

func (PAESSkill) TableName() string {
	return "paes_skills"
}

// LearningNode es la unidad atómica de contenido, ligada a un test y una skill.
// Los nodos son de solo lectura para este servicio: los crean los autores.
type LearningNode struct {
	UUIDBase
	Title                string         `gorm:"size:255;not null" json:"title"`
	TestID               uint           `gorm:"index;not null" json:"testId"`
	SkillID              uint           `gorm:"index;not null" json:"skillId"`
	DifficultyTier       DifficultyTier `gorm:"type:enum('basic','intermediate','advanced');default:'basic'" json:"difficulty"`
	TierPriority         TierPriority   `gorm:"type:enum('tier1_critico','tier2_importante','tier3_complementario');default:'tier3_complementario'" json:"tierPriority"`
	EstimatedTimeMinutes int            `gorm:"default:45" json:"estimatedTimeMinutes"`
	DependsOn            []string       `gorm:"serializer:json;type:text" json:"dependsOn"`
	Position             int            `gorm:"default:0" json:"position"`
}

func (LearningNode) TableName() string {
	return "learning_nodes"
}
