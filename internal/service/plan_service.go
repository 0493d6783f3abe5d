package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/repository"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/cache"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/logger"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/monitoring"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlanService genera planes de estudio inteligentes y administra la bandeja
// de planes del usuario.
type PlanService struct {
	PlanRepo *repository.PlanRepository
	NodeRepo *repository.NodeRepository
	PAESRepo *repository.PAESRepository
	Cache    cache.Store
}

func NewPlanService(
	planRepo *repository.PlanRepository,
	nodeRepo *repository.NodeRepository,
	paesRepo *repository.PAESRepository,
	cacheStore cache.Store,
) *PlanService {
	return &PlanService{
		PlanRepo: planRepo,
		NodeRepo: nodeRepo,
		PAESRepo: paesRepo,
		Cache:    cacheStore,
	}
}

var sessionDays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// ScoredNode empareja un nodo con su prioridad escalar calculada.
type ScoredNode struct {
	Node     model.LearningNode
	Priority int
}

// GenerateSmartPlan arma y persiste un plan: resuelve los tests objetivo,
// prioriza y acota los nodos, construye el cronograma semanal, estima el
// resultado y escribe el plan con sus asociaciones de nodos. Cualquier error
// aborta la operación completa; las escrituras parciales no se revierten.
func (s *PlanService) GenerateSmartPlan(
	ctx context.Context,
	userID uint,
	cfg model.SmartPlanConfig,
	tests []model.TestInfo,
	skills []model.SkillInfo,
	recommendations []model.Recommendation,
) (*model.GeneratedSmartPlan, error) {
	testIDs := resolveTestIDs(cfg.TargetTests, tests)
	if len(testIDs) == 0 {
		return nil, util.ErrTestNotFound
	}

	nodes, err := s.NodeRepo.ListByTestIDs(ctx, testIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching nodes for plan: %w", err)
	}
	if len(nodes) == 0 {
		return nil, util.ErrNoNodesForPlan
	}

	prioritized := PrioritizeNodes(nodes, skills, recommendations, cfg)
	schedule := BuildWeeklySchedule(prioritized, skills, cfg)
	metrics := CalculatePlanMetrics(prioritized, recommendations)
	outcome := EstimateOutcome(cfg, recommendations)

	plan := &model.GeneratedStudyPlan{
		UserID:                 userID,
		Title:                  planTitle(cfg),
		Description:            planDescription(cfg, metrics),
		PlanType:               cfg.GoalType,
		TargetTests:            cfg.TargetTests,
		EstimatedDurationWeeks: cfg.Duration,
		TotalNodes:             metrics.TotalNodes,
		EstimatedHours:         metrics.TotalHours,
		Schedule:               schedule,
		Metrics: map[string]interface{}{
			"totalNodes":            metrics.TotalNodes,
			"totalHours":            metrics.TotalHours,
			"weaknessesAddressed":   metrics.WeaknessesAddressed,
			"opportunitiesIncluded": metrics.OpportunitiesIncluded,
			"strengthsMaintained":   metrics.StrengthsMaintained,
			"estimatedOutcome":      outcome,
			"generatedAt":           time.Now().Format(time.RFC3339),
			"aiGenerated":           true,
		},
	}

	if err := s.PlanRepo.CreateGeneratedPlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("persisting plan: %w", err)
	}

	npw := NodesPerWeek(cfg.Intensity)
	planNodes := lo.Map(prioritized, func(sn ScoredNode, i int) model.StudyPlanNode {
		return model.StudyPlanNode{
			PlanID:         plan.ID,
			NodeID:         sn.Node.ID,
			WeekNumber:     i/npw + 1,
			Position:       i%npw + 1,
			EstimatedHours: float64(sn.Node.EstimatedTimeMinutes) / 60,
		}
	})

	if err := s.PlanRepo.CreatePlanNodes(ctx, planNodes); err != nil {
		return nil, fmt.Errorf("persisting plan nodes: %w", err)
	}

	monitoring.PlansGenerated.WithLabelValues(string(cfg.GoalType), string(cfg.Intensity)).Inc()
	logger.Log.Info("smart plan generated",
		zap.Uint("user", userID),
		zap.String("plan", plan.ID),
		zap.Int("nodes", metrics.TotalNodes),
	)

	return &model.GeneratedSmartPlan{
		ID:               plan.ID,
		Title:            plan.Title,
		Description:      plan.Description,
		Config:           cfg,
		Schedule:         schedule,
		Metrics:          metrics,
		EstimatedOutcome: outcome,
	}, nil
}

func resolveTestIDs(codes []string, tests []model.TestInfo) []uint {
	codeSet := lo.SliceToMap(codes, func(c string) (string, struct{}) {
		return c, struct{}{}
	})
	return lo.FilterMap(tests, func(t model.TestInfo, _ int) (uint, bool) {
		_, ok := codeSet[t.Code]
		return t.ID, ok
	})
}

// PrioritizeNodes asigna a cada nodo una prioridad escalar (bono por tier +
// bono por recomendación + bono por prioridad de habilidad), ordena de mayor
// a menor y trunca a duration × nodesPerWeek(intensity).
func PrioritizeNodes(
	nodes []model.LearningNode,
	skills []model.SkillInfo,
	recommendations []model.Recommendation,
	cfg model.SmartPlanConfig,
) []ScoredNode {
	skillByID := lo.SliceToMap(skills, func(sk model.SkillInfo) (uint, model.SkillInfo) {
		return sk.ID, sk
	})
	recBySkillCode := make(map[string]model.Recommendation, len(recommendations))
	for _, rec := range recommendations {
		if _, ok := recBySkillCode[rec.SkillCode]; !ok {
			recBySkillCode[rec.SkillCode] = rec
		}
	}

	scored := lo.Map(nodes, func(node model.LearningNode, _ int) ScoredNode {
		priority := 0

		switch node.TierPriority {
		case model.Tier1Critico:
			priority += 100
		case model.Tier2Importante:
			priority += 50
		default:
			priority += 10
		}

		skill, hasSkill := skillByID[node.SkillID]
		if hasSkill {
			if rec, ok := recBySkillCode[skill.Code]; ok {
				if rec.Type == model.RecommendationWeakness {
					priority += 80
				} else {
					priority += 40
				}
			}
			switch skill.Priority {
			case model.PriorityHigh:
				priority += 60
			case model.PriorityMedium:
				priority += 30
			}
		}

		return ScoredNode{Node: node, Priority: priority}
	})

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Priority > scored[j].Priority
	})

	maxNodes := cfg.Duration * NodesPerWeek(cfg.Intensity)
	if len(scored) > maxNodes {
		scored = scored[:maxNodes]
	}
	return scored
}

// BuildWeeklySchedule particiona la lista priorizada en trozos contiguos de
// nodesPerWeek, uno por semana; dentro de cada semana arma hasta
// sessionsPerWeek sesiones de un nodo, rotando los días desde el lunes.
func BuildWeeklySchedule(
	prioritized []ScoredNode,
	skills []model.SkillInfo,
	cfg model.SmartPlanConfig,
) []model.WeeklySchedule {
	skillNameByID := lo.SliceToMap(skills, func(sk model.SkillInfo) (uint, string) {
		return sk.ID, sk.Name
	})

	npw := NodesPerWeek(cfg.Intensity)
	spw := SessionsPerWeek(cfg.Intensity)
	schedule := make([]model.WeeklySchedule, 0, cfg.Duration)

	for week := 1; week <= cfg.Duration; week++ {
		start := (week - 1) * npw
		end := week * npw
		if start > len(prioritized) {
			start = len(prioritized)
		}
		if end > len(prioritized) {
			end = len(prioritized)
		}
		weekNodes := prioritized[start:end]

		sessions := make([]model.SessionPlan, 0, spw)
		for i := 0; i < spw && i < len(weekNodes); i++ {
			node := weekNodes[i].Node
			skillFocus := skillNameByID[node.SkillID]
			if skillFocus == "" {
				skillFocus = "Práctica General"
			}
			duration := node.EstimatedTimeMinutes
			if duration == 0 {
				duration = 45
			}
			sessions = append(sessions, model.SessionPlan{
				Day:             sessionDays[i%len(sessionDays)],
				SkillFocus:      skillFocus,
				NodeIDs:         []string{node.ID},
				DurationMinutes: duration,
			})
		}

		hours := lo.SumBy(weekNodes, func(sn ScoredNode) float64 {
			return float64(sn.Node.EstimatedTimeMinutes) / 60
		})

		schedule = append(schedule, model.WeeklySchedule{
			Week:           week,
			Focus:          WeekFocus(week, cfg.Duration),
			Sessions:       sessions,
			EstimatedHours: hours,
		})
	}

	return schedule
}

func CalculatePlanMetrics(prioritized []ScoredNode, recommendations []model.Recommendation) model.PlanMetrics {
	totalHours := lo.SumBy(prioritized, func(sn ScoredNode) float64 {
		return float64(sn.Node.EstimatedTimeMinutes) / 60
	})

	countByType := func(t model.RecommendationType) int {
		return lo.CountBy(recommendations, func(r model.Recommendation) bool {
			return r.Type == t
		})
	}

	// Los contadores reflejan los tipos de recomendaciones presentes, no la
	// cobertura real de esas habilidades por los nodos seleccionados.
	return model.PlanMetrics{
		TotalNodes:            len(prioritized),
		TotalHours:            int(math.Round(totalHours)),
		WeaknessesAddressed:   countByType(model.RecommendationWeakness),
		OpportunitiesIncluded: countByType(model.RecommendationOpportunity),
		StrengthsMaintained:   countByType(model.RecommendationStrength),
	}
}

// EstimateOutcome proyecta la mejora esperada:
// min(base(intensidad) + 5×debilidades + min(2×semanas, 20), 50).
func EstimateOutcome(cfg model.SmartPlanConfig, recommendations []model.Recommendation) model.EstimatedOutcome {
	base := 15
	switch cfg.Intensity {
	case model.IntensityIntensive:
		base = 25
	case model.IntensityModerate:
		base = 20
	}

	weaknessBonus := 5 * lo.CountBy(recommendations, func(r model.Recommendation) bool {
		return r.Type == model.RecommendationWeakness
	})

	durationBonus := 2 * cfg.Duration
	if durationBonus > 20 {
		durationBonus = 20
	}

	improvement := base + weaknessBonus + durationBonus
	if improvement > 50 {
		improvement = 50
	}

	return model.EstimatedOutcome{
		ExpectedImprovement: improvement,
		ConfidenceLevel:     85,
		KeyBenefits: []string{
			"Enfoque en áreas de mayor impacto",
			"Cronograma optimizado por IA",
			"Seguimiento de progreso personalizado",
		},
	}
}

func NodesPerWeek(intensity model.Intensity) int {
	switch intensity {
	case model.IntensityIntensive:
		return 4
	case model.IntensityModerate:
		return 3
	default:
		return 2
	}
}

func SessionsPerWeek(intensity model.Intensity) int {
	switch intensity {
	case model.IntensityIntensive:
		return 5
	case model.IntensityModerate:
		return 4
	default:
		return 3
	}
}

// WeekFocus etiqueta la semana por su posición normalizada en el plan.
func WeekFocus(week, totalWeeks int) string {
	phase := float64(week) / float64(totalWeeks)
	if phase <= 0.33 {
		return "Fundamentos y Conceptos"
	}
	if phase <= 0.66 {
		return "Aplicación y Práctica"
	}
	return "Consolidación y Simulacros"
}

func planTitle(cfg model.SmartPlanConfig) string {
	typeNames := map[model.GoalType]string{
		model.GoalComprehensive:   "Plan Integral PAES",
		model.GoalWeaknessFocused: "Plan Enfocado en Debilidades",
		model.GoalSkillSpecific:   "Plan por Habilidades Específicas",
		model.GoalTestSpecific:    "Plan por Pruebas Específicas",
	}
	return fmt.Sprintf("%s - %d semanas", typeNames[cfg.GoalType], cfg.Duration)
}

func planDescription(cfg model.SmartPlanConfig, metrics model.PlanMetrics) string {
	return fmt.Sprintf(
		"Plan inteligente generado con IA, optimizado para %d semanas. "+
			"Incluye %d nodos de aprendizaje y %d horas estimadas. "+
			"Aborda %d debilidades críticas y %d oportunidades de mejora.",
		cfg.Duration, metrics.TotalNodes, metrics.TotalHours,
		metrics.WeaknessesAddressed, metrics.OpportunitiesIncluded,
	)
}

// ListLearningPlans devuelve la bandeja de planes del usuario, con caché de
// 30 minutos y un reintento con backoff acotado sobre la consulta.
func (s *PlanService) ListLearningPlans(ctx context.Context, userID uint) ([]model.LearningPlan, error) {
	key := util.PlanListCacheKey(userID)

	var cached []model.LearningPlan
	found, err := s.Cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Log.Warn("plan list cache read failed", zap.Error(err))
	}
	if found {
		monitoring.CacheHits.WithLabelValues(util.PlanListCachePrefix, "hit").Inc()
		return cached, nil
	}
	monitoring.CacheHits.WithLabelValues(util.PlanListCachePrefix, "miss").Inc()

	var plans []model.LearningPlan
	err = util.WithRetry(ctx, 3, func() error {
		var fetchErr error
		plans, fetchErr = s.PlanRepo.ListLearningPlans(ctx, userID)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	if err := s.Cache.Set(ctx, key, plans, util.PlanListCacheTTL); err != nil {
		logger.Log.Warn("plan list cache write failed", zap.Error(err))
	}
	return plans, nil
}

func (s *PlanService) CreateLearningPlan(ctx context.Context, plan *model.LearningPlan) error {
	if err := s.PlanRepo.CreateLearningPlan(ctx, plan); err != nil {
		return err
	}
	return s.Cache.Invalidate(ctx, util.PlanListCacheKey(plan.UserID))
}

func (s *PlanService) GetGeneratedPlan(ctx context.Context, userID uint, planID string) (*model.GeneratedStudyPlan, []model.StudyPlanNode, error) {
	plan, err := s.PlanRepo.FindGeneratedPlan(ctx, userID, planID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrPlanNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	nodes, err := s.PlanRepo.ListPlanNodes(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	return plan, nodes, nil
}

func (s *PlanService) ListGeneratedPlans(ctx context.Context, userID uint) ([]model.GeneratedStudyPlan, error) {
	return s.PlanRepo.ListGeneratedPlans(ctx, userID)
}
