package service

import (
	"fmt"
	"testing"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankRecommendationsCap(t *testing.T) {
	// Muchas habilidades críticas y medias: la lista nunca pasa de 4.
	var skills []model.SkillInfo
	for i := 0; i < 10; i++ {
		skills = append(skills, model.SkillInfo{
			ID:          uint(i + 1),
			Code:        fmt.Sprintf("SKILL_%d", i),
			Name:        fmt.Sprintf("Habilidad %d", i),
			TestID:      1,
			Performance: 10,
			Priority:    model.PriorityHigh,
		})
	}
	for i := 10; i < 20; i++ {
		skills = append(skills, model.SkillInfo{
			ID:          uint(i + 1),
			Code:        fmt.Sprintf("SKILL_%d", i),
			TestID:      1,
			Performance: 40,
			Priority:    model.PriorityMedium,
		})
	}

	recs := RankRecommendations(nil, skills)
	assert.LessOrEqual(t, len(recs), 4)
	assert.Len(t, recs, 4)
}

func TestRankRecommendationsEmpty(t *testing.T) {
	recs := RankRecommendations(nil, nil)
	assert.Empty(t, recs)

	// Solo habilidades de prioridad baja: tampoco hay recomendaciones.
	skills := []model.SkillInfo{
		{Code: "A", Performance: 80, Priority: model.PriorityLow},
		{Code: "B", Performance: 95, Priority: model.PriorityLow},
	}
	assert.Empty(t, RankRecommendations(nil, skills))
}

func TestRankRecommendationsImpactAndOrder(t *testing.T) {
	tests := []model.TestInfo{{ID: 1, Code: "MATEMATICA_1"}}
	skills := []model.SkillInfo{
		{ID: 1, Code: "SOLVE_PROBLEMS", Name: "Resolver Problemas", TestID: 1, Performance: 20, Priority: model.PriorityHigh},
		{ID: 2, Code: "REPRESENT", Name: "Representar", TestID: 1, Performance: 40, Priority: model.PriorityMedium},
		{ID: 3, Code: "MODEL", Name: "Modelar", TestID: 1, Performance: 10, Priority: model.PriorityHigh},
	}

	recs := RankRecommendations(tests, skills)
	require.Len(t, recs, 3)

	// Impactos: MODEL 90, SOLVE_PROBLEMS 80, REPRESENT 40.
	assert.Equal(t, "MODEL", recs[0].SkillCode)
	assert.Equal(t, 90, recs[0].Impact)
	assert.Equal(t, model.RecommendationWeakness, recs[0].Type)

	assert.Equal(t, "SOLVE_PROBLEMS", recs[1].SkillCode)
	assert.Equal(t, 80, recs[1].Impact)

	assert.Equal(t, "REPRESENT", recs[2].SkillCode)
	assert.Equal(t, 40, recs[2].Impact)
	assert.Equal(t, model.RecommendationOpportunity, recs[2].Type)

	assert.Equal(t, "MATEMATICA_1", recs[0].TestCode)
}

func TestRankRecommendationsStableTieBreak(t *testing.T) {
	// Dos habilidades con el mismo impacto conservan el orden de iteración.
	skills := []model.SkillInfo{
		{ID: 1, Code: "FIRST", TestID: 1, Performance: 15, Priority: model.PriorityHigh},
		{ID: 2, Code: "SECOND", TestID: 1, Performance: 15, Priority: model.PriorityHigh},
	}

	recs := RankRecommendations(nil, skills)
	require.Len(t, recs, 2)
	assert.Equal(t, "FIRST", recs[0].SkillCode)
	assert.Equal(t, "SECOND", recs[1].SkillCode)
}

func TestRankRecommendationsDeterminism(t *testing.T) {
	skills := []model.SkillInfo{
		{ID: 1, Code: "A", TestID: 1, Performance: 25, Priority: model.PriorityHigh},
		{ID: 2, Code: "B", TestID: 1, Performance: 45, Priority: model.PriorityMedium},
	}

	first := RankRecommendations(nil, skills)
	second := RankRecommendations(nil, skills)
	assert.Equal(t, first, second)
}
