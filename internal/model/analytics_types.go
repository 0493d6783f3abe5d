package model

// Tipos derivados del agregado de progreso. Se calculan en cada pasada
// sobre un snapshot de nodos y progreso; no se persisten.

type WeaknessLevel string

const (
	WeaknessGood     WeaknessLevel = "good"
	WeaknessLow      WeaknessLevel = "low"
	WeaknessModerate WeaknessLevel = "moderate"
	WeaknessCritical WeaknessLevel = "critical"
)

type SkillPriority string

const (
	PriorityHigh   SkillPriority = "high"
	PriorityMedium SkillPriority = "medium"
	PriorityLow    SkillPriority = "low"
)

// swagger:model
type TestInfo struct {
	ID            uint          `json:"id"`
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	UserProgress  int           `json:"userProgress"`
	WeaknessLevel WeaknessLevel `json:"weaknessLevel"`
	SkillCount    int           `json:"skillCount"`
	NodeCount     int           `json:"nodeCount"`
}

// swagger:model
type SkillInfo struct {
	ID          uint          `json:"id"`
	Code        string        `json:"code"`
	Name        string        `json:"name"`
	TestID      uint          `json:"testId"`
	Performance int           `json:"performance"`
	Priority    SkillPriority `json:"priority"`
	NodeCount   int           `json:"nodeCount"`
}

type RecommendationType string

const (
	RecommendationWeakness    RecommendationType = "weakness"
	RecommendationOpportunity RecommendationType = "opportunity"
	RecommendationStrength    RecommendationType = "strength"
)

// Recommendation es una sugerencia accionable derivada de las métricas.
// La lista emitida está acotada y ordenada por impacto descendente.
type Recommendation struct {
	Type        RecommendationType `json:"type"`
	TestCode    string             `json:"testCode"`
	SkillCode   string             `json:"skillCode"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Impact      int                `json:"impact"`
}

// SmartPlanConfig es la entrada del generador de planes.
type SmartPlanConfig struct {
	GoalType    GoalType  `json:"goalType" binding:"required,oneof=comprehensive weakness_focused skill_specific test_specific"`
	TargetTests []string  `json:"targetTests" binding:"required,min=1"`
	Duration    int       `json:"duration" binding:"required,min=1,max=52"`
	Intensity   Intensity `json:"intensity" binding:"required,oneof=light moderate intensive"`
	FocusAreas  []string  `json:"focusAreas"`
}

type PlanMetrics struct {
	TotalNodes            int `json:"totalNodes"`
	TotalHours            int `json:"totalHours"`
	WeaknessesAddressed   int `json:"weaknessesAddressed"`
	OpportunitiesIncluded int `json:"opportunitiesIncluded"`
	StrengthsMaintained   int `json:"strengthsMaintained"`
}

type EstimatedOutcome struct {
	ExpectedImprovement int      `json:"expectedImprovement"`
	ConfidenceLevel     int      `json:"confidenceLevel"`
	KeyBenefits         []string `json:"keyBenefits"`
}

// GeneratedSmartPlan es la respuesta completa de una generación.
type GeneratedSmartPlan struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Config           SmartPlanConfig  `json:"config"`
	Schedule         []WeeklySchedule `json:"schedule"`
	Metrics          PlanMetrics      `json:"metrics"`
	EstimatedOutcome EstimatedOutcome `json:"estimatedOutcome"`
}
