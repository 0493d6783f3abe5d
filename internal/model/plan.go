package model

// GoalType define el objetivo del plan generado.
type GoalType string

const (
	GoalComprehensive   GoalType = "comprehensive"
	GoalWeaknessFocused GoalType = "weakness_focused"
	GoalSkillSpecific   GoalType = "skill_specific"
	GoalTestSpecific    GoalType = "test_specific"
)

// Intensity controla nodos y sesiones por semana.
type Intensity string

const (
	IntensityLight     Intensity = "light"
	IntensityModerate  Intensity = "moderate"
	IntensityIntensive Intensity = "intensive"
)

// GeneratedStudyPlan es el registro persistido de un plan inteligente.
// Un plan nunca se muta después de generado: regenerar crea una fila nueva.
type GeneratedStudyPlan struct {
	UUIDBase
	UserID                 uint                   `gorm:"index;not null" json:"userId"`
	Title                  string                 `gorm:"size:255;not null" json:"title"`
	Description            string                 `gorm:"type:text" json:"description"`
	PlanType               GoalType               `gorm:"type:enum('comprehensive','weakness_focused','skill_specific','test_specific');not null" json:"planType"`
	TargetTests            []string               `gorm:"serializer:json;type:text" json:"targetTests"`
	EstimatedDurationWeeks int                    `gorm:"not null" json:"estimatedDurationWeeks"`
	TotalNodes             int                    `gorm:"default:0" json:"totalNodes"`
	EstimatedHours         int                    `gorm:"default:0" json:"estimatedHours"`
	Schedule               []WeeklySchedule       `gorm:"serializer:json;type:longtext" json:"schedule"`
	Metrics                map[string]interface{} `gorm:"serializer:json;type:text" json:"metrics"`
}

func (GeneratedStudyPlan) TableName() string {
	return "generated_study_plans"
}

// StudyPlanNode asocia un nodo seleccionado con su semana y posición en el plan.
type StudyPlanNode struct {
	BaseModel
	PlanID         string  `gorm:"index;type:varchar(36);not null" json:"planId"`
	NodeID         string  `gorm:"type:varchar(36);not null" json:"nodeId"`
	WeekNumber     int     `gorm:"not null" json:"weekNumber"`
	Position       int     `gorm:"not null" json:"position"`
	EstimatedHours float64 `gorm:"default:0" json:"estimatedHours"`
}

func (StudyPlanNode) TableName() string {
	return "study_plan_nodes"
}

// LearningPlan es un plan manual de la bandeja del usuario (lista con reintentos).
type LearningPlan struct {
	UUIDBase
	UserID      uint   `gorm:"index;not null" json:"userId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	TargetDate  string `gorm:"size:20" json:"targetDate"`
}

func (LearningPlan) TableName() string {
	return "learning_plans"
}

// WeeklySchedule y SessionPlan viajan como JSON dentro del plan persistido.
type WeeklySchedule struct {
	Week           int           `json:"week"`
	Focus          string        `json:"focus"`
	Sessions       []SessionPlan `json:"sessions"`
	EstimatedHours float64       `json:"estimatedHours"`
}

type SessionPlan struct {
	Day             string   `json:"day"`
	SkillFocus      string   `json:"skillFocus"`
	NodeIDs         []string `json:"nodeIds"`
	DurationMinutes int      `json:"duration"`
}
