package service

import (
	"fmt"
	"sort"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
)

const (
	maxWeaknessRecommendations    = 2
	maxOpportunityRecommendations = 2
)

// RankRecommendations emite una lista acotada y ordenada de recomendaciones:
// hasta 2 habilidades de prioridad alta (debilidad, impacto 100−rendimiento)
// y hasta 2 de prioridad media (oportunidad, impacto 80−rendimiento),
// ordenadas por impacto descendente. El desempate entre impactos iguales es
// el orden de inserción, que sigue el orden de iteración de las habilidades.
func RankRecommendations(tests []model.TestInfo, skills []model.SkillInfo) []model.Recommendation {
	testCodeByID := make(map[uint]string, len(tests))
	for _, t := range tests {
		testCodeByID[t.ID] = t.Code
	}

	var recs []model.Recommendation

	weaknessCount := 0
	for _, skill := range skills {
		if weaknessCount == maxWeaknessRecommendations {
			break
		}
		if skill.Priority != model.PriorityHigh {
			continue
		}
		recs = append(recs, model.Recommendation{
			Type:        model.RecommendationWeakness,
			TestCode:    testCodeByID[skill.TestID],
			SkillCode:   skill.Code,
			Title:       "Área Crítica Detectada",
			Description: fmt.Sprintf("%s requiere atención inmediata", skill.Name),
			Impact:      100 - skill.Performance,
		})
		weaknessCount++
	}

	opportunityCount := 0
	for _, skill := range skills {
		if opportunityCount == maxOpportunityRecommendations {
			break
		}
		if skill.Priority != model.PriorityMedium {
			continue
		}
		recs = append(recs, model.Recommendation{
			Type:        model.RecommendationOpportunity,
			TestCode:    testCodeByID[skill.TestID],
			SkillCode:   skill.Code,
			Title:       "Oportunidad de Mejora",
			Description: fmt.Sprintf("%s tiene potencial de crecimiento", skill.Name),
			Impact:      80 - skill.Performance,
		})
		opportunityCount++
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Impact > recs[j].Impact
	})

	return recs
}
