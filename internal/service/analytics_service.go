package service

import (
	"context"
	"math"
	"time"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/repository"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/cache"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/logger"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/monitoring"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// AnalyticsService calcula las métricas agregadas por test y habilidad a
// partir de un snapshot de nodos y progreso, y las sirve desde un caché de
// lectura por usuario.
type AnalyticsService struct {
	PAESRepo     *repository.PAESRepository
	NodeRepo     *repository.NodeRepository
	ProgressRepo *repository.ProgressRepository
	Cache        cache.Store
}

func NewAnalyticsService(
	paesRepo *repository.PAESRepository,
	nodeRepo *repository.NodeRepository,
	progressRepo *repository.ProgressRepository,
	cacheStore cache.Store,
) *AnalyticsService {
	return &AnalyticsService{
		PAESRepo:     paesRepo,
		NodeRepo:     nodeRepo,
		ProgressRepo: progressRepo,
		Cache:        cacheStore,
	}
}

// PAESSnapshot es el payload agregado que consume el dashboard y el
// generador de planes. Es una función pura del snapshot de datos al momento
// del cálculo.
type PAESSnapshot struct {
	Tests           []model.TestInfo       `json:"tests"`
	Skills          []model.SkillInfo      `json:"skills"`
	Recommendations []model.Recommendation `json:"recommendations"`
	FetchedAt       time.Time              `json:"fetchedAt"`
}

// snapshotRetention mantiene el snapshot en el caché más allá de su ventana
// de frescura para poder servirlo obsoleto si una recarga falla.
const snapshotRetention = 24 * time.Hour

// GetUserSnapshot devuelve el agregado del usuario. Dentro de la ventana de
// frescura sirve el caché; si la recarga falla y existe un snapshot obsoleto,
// lo sirve en su lugar y solo registra el error.
func (s *AnalyticsService) GetUserSnapshot(ctx context.Context, userID uint) (*PAESSnapshot, error) {
	key := util.PAESDataCacheKey(userID)

	var cached PAESSnapshot
	found, err := s.Cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Log.Warn("paes cache read failed", zap.Error(err))
	}
	if found && time.Since(cached.FetchedAt) < util.PAESDataCacheTTL {
		monitoring.CacheHits.WithLabelValues(util.PAESDataCachePrefix, "hit").Inc()
		return &cached, nil
	}
	monitoring.CacheHits.WithLabelValues(util.PAESDataCachePrefix, "miss").Inc()

	snapshot, err := s.buildSnapshot(ctx, userID)
	if err != nil {
		if found {
			logger.Log.Warn("snapshot rebuild failed, serving stale data",
				zap.Uint("user", userID), zap.Error(err))
			return &cached, nil
		}
		return nil, err
	}

	if err := s.Cache.Set(ctx, key, snapshot, snapshotRetention); err != nil {
		logger.Log.Warn("paes cache write failed", zap.Error(err))
	}
	return snapshot, nil
}

// InvalidateUser borra el snapshot cacheado; se llama al escribir progreso.
func (s *AnalyticsService) InvalidateUser(ctx context.Context, userID uint) error {
	return s.Cache.Invalidate(ctx, util.PAESDataCacheKey(userID))
}

func (s *AnalyticsService) buildSnapshot(ctx context.Context, userID uint) (*PAESSnapshot, error) {
	tests, err := s.PAESRepo.ListTests(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := s.PAESRepo.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	nodes, err := s.NodeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := s.ProgressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	testInfos := AggregateTests(tests, skills, nodes, progress)
	skillInfos := AggregateSkills(skills, nodes, progress)
	recommendations := RankRecommendations(testInfos, skillInfos)

	return &PAESSnapshot{
		Tests:           testInfos,
		Skills:          skillInfos,
		Recommendations: recommendations,
		FetchedAt:       time.Now(),
	}, nil
}

// AggregateTests calcula el porcentaje de avance y el nivel de debilidad por
// test: completados/total × 100, redondeado al entero más cercano.
func AggregateTests(
	tests []model.PAESTest,
	skills []model.PAESSkill,
	nodes []model.LearningNode,
	progress []model.NodeProgress,
) []model.TestInfo {
	completed := completedNodeSet(progress)

	return lo.Map(tests, func(test model.PAESTest, _ int) model.TestInfo {
		testNodes := lo.Filter(nodes, func(n model.LearningNode, _ int) bool {
			return n.TestID == test.ID
		})
		doneCount := lo.CountBy(testNodes, func(n model.LearningNode) bool {
			return completed[n.ID]
		})

		pct := 0
		if len(testNodes) > 0 {
			pct = int(math.Round(float64(doneCount) / float64(len(testNodes)) * 100))
		}

		skillCount := lo.CountBy(skills, func(sk model.PAESSkill) bool {
			return sk.TestID == test.ID
		})

		return model.TestInfo{
			ID:            test.ID,
			Code:          test.Code,
			Name:          test.Name,
			UserProgress:  pct,
			WeaknessLevel: weaknessLevelFor(pct),
			SkillCount:    skillCount,
			NodeCount:     len(testNodes),
		}
	})
}

// AggregateSkills calcula el rendimiento y prioridad por habilidad de forma
// análoga al agregado por test.
func AggregateSkills(
	skills []model.PAESSkill,
	nodes []model.LearningNode,
	progress []model.NodeProgress,
) []model.SkillInfo {
	completed := completedNodeSet(progress)

	return lo.Map(skills, func(skill model.PAESSkill, _ int) model.SkillInfo {
		skillNodes := lo.Filter(nodes, func(n model.LearningNode, _ int) bool {
			return n.SkillID == skill.ID
		})
		doneCount := lo.CountBy(skillNodes, func(n model.LearningNode) bool {
			return completed[n.ID]
		})

		pct := 0
		if len(skillNodes) > 0 {
			pct = int(math.Round(float64(doneCount) / float64(len(skillNodes)) * 100))
		}

		return model.SkillInfo{
			ID:          skill.ID,
			Code:        skill.Code,
			Name:        skill.Name,
			TestID:      skill.TestID,
			Performance: pct,
			Priority:    skillPriorityFor(pct),
			NodeCount:   len(skillNodes),
		}
	})
}

func completedNodeSet(progress []model.NodeProgress) map[string]bool {
	set := make(map[string]bool, len(progress))
	for _, p := range progress {
		if p.Status == model.Completed {
			set[p.NodeID] = true
		}
	}
	return set
}

// Umbrales exactos: 75 ya es "good", 50 ya es "low", 25 ya es "moderate".
func weaknessLevelFor(progress int) model.WeaknessLevel {
	switch {
	case progress >= 75:
		return model.WeaknessGood
	case progress >= 50:
		return model.WeaknessLow
	case progress >= 25:
		return model.WeaknessModerate
	default:
		return model.WeaknessCritical
	}
}

func skillPriorityFor(performance int) model.SkillPriority {
	switch {
	case performance < 30:
		return model.PriorityHigh
	case performance < 60:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
