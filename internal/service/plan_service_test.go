package service

import (
	"fmt"
	"testing"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planNodes(testID, skillID uint, tier model.TierPriority, count int) []model.LearningNode {
	nodes := make([]model.LearningNode, count)
	for i := range nodes {
		nodes[i] = model.LearningNode{
			Title:                fmt.Sprintf("Nodo %d", i+1),
			TestID:               testID,
			SkillID:              skillID,
			TierPriority:         tier,
			EstimatedTimeMinutes: 60,
			Position:             i,
		}
		nodes[i].ID = fmt.Sprintf("plan-node-%d-%d-%s-%d", testID, skillID, tier, i+1)
	}
	return nodes
}

func TestPrioritizeNodesScoring(t *testing.T) {
	skills := []model.SkillInfo{
		{ID: 1, Code: "SOLVE_PROBLEMS", Priority: model.PriorityHigh},
		{ID: 2, Code: "REPRESENT", Priority: model.PriorityMedium},
		{ID: 3, Code: "MODEL", Priority: model.PriorityLow},
	}
	recs := []model.Recommendation{
		{Type: model.RecommendationWeakness, SkillCode: "SOLVE_PROBLEMS"},
		{Type: model.RecommendationOpportunity, SkillCode: "REPRESENT"},
	}

	critical := planNodes(1, 1, model.Tier1Critico, 1)[0]     // 100 + 80 + 60 = 240
	important := planNodes(1, 2, model.Tier2Importante, 1)[0] // 50 + 40 + 30 = 120
	filler := planNodes(1, 3, model.Tier3Complementario, 1)[0] // 10

	cfg := model.SmartPlanConfig{Duration: 4, Intensity: model.IntensityModerate}
	scored := PrioritizeNodes([]model.LearningNode{filler, important, critical}, skills, recs, cfg)
	require.Len(t, scored, 3)

	assert.Equal(t, critical.ID, scored[0].Node.ID)
	assert.Equal(t, 240, scored[0].Priority)
	assert.Equal(t, important.ID, scored[1].Node.ID)
	assert.Equal(t, 120, scored[1].Priority)
	assert.Equal(t, filler.ID, scored[2].Node.ID)
	assert.Equal(t, 10, scored[2].Priority)
}

func TestPrioritizeNodesTruncation(t *testing.T) {
	nodes := planNodes(1, 1, model.Tier1Critico, 30)
	cfg := model.SmartPlanConfig{Duration: 4, Intensity: model.IntensityModerate}

	scored := PrioritizeNodes(nodes, nil, nil, cfg)
	assert.Len(t, scored, 12) // 4 semanas × 3 nodos

	cfg.Intensity = model.IntensityIntensive
	assert.Len(t, PrioritizeNodes(nodes, nil, nil, cfg), 16)

	cfg.Intensity = model.IntensityLight
	assert.Len(t, PrioritizeNodes(nodes, nil, nil, cfg), 8)
}

func TestPrioritizeNodesStableWithinEqualScores(t *testing.T) {
	nodes := planNodes(1, 1, model.Tier2Importante, 5)
	cfg := model.SmartPlanConfig{Duration: 10, Intensity: model.IntensityLight}

	scored := PrioritizeNodes(nodes, nil, nil, cfg)
	require.Len(t, scored, 5)
	for i, sn := range scored {
		assert.Equal(t, nodes[i].ID, sn.Node.ID)
	}
}

func TestBuildWeeklySchedulePartition(t *testing.T) {
	// Concatenar los nodeIds de todas las sesiones reproduce la lista
	// priorizada en orden, sin duplicados ni omisiones, cuando
	// sessionsPerWeek ≥ nodesPerWeek.
	nodes := planNodes(1, 1, model.Tier1Critico, 12)
	cfg := model.SmartPlanConfig{Duration: 4, Intensity: model.IntensityModerate}

	scored := PrioritizeNodes(nodes, nil, nil, cfg)
	schedule := BuildWeeklySchedule(scored, nil, cfg)
	require.Len(t, schedule, 4)

	var flattened []string
	for _, week := range schedule {
		assert.LessOrEqual(t, len(week.Sessions), SessionsPerWeek(cfg.Intensity))
		for _, session := range week.Sessions {
			flattened = append(flattened, session.NodeIDs...)
		}
	}

	var expected []string
	for _, sn := range scored {
		expected = append(expected, sn.Node.ID)
	}
	assert.Equal(t, expected, flattened)
}

func TestBuildWeeklyScheduleModerateExample(t *testing.T) {
	// config moderate de 4 semanas → npw=3, máximo 12 nodos, 4 semanas con
	// ≤3 sesiones cada una (acotadas por los nodos disponibles por semana).
	nodes := planNodes(1, 1, model.Tier1Critico, 20)
	cfg := model.SmartPlanConfig{
		GoalType:    model.GoalWeaknessFocused,
		TargetTests: []string{"MATEMATICA_1"},
		Duration:    4,
		Intensity:   model.IntensityModerate,
	}

	scored := PrioritizeNodes(nodes, nil, nil, cfg)
	require.Len(t, scored, 12)

	schedule := BuildWeeklySchedule(scored, nil, cfg)
	require.Len(t, schedule, 4)
	for _, week := range schedule {
		assert.Len(t, week.Sessions, 3)
		assert.Equal(t, "Lunes", week.Sessions[0].Day)
	}
}

func TestBuildWeeklyScheduleSessionDefaults(t *testing.T) {
	node := model.LearningNode{TestID: 1, SkillID: 99}
	node.ID = "sin-duracion"
	cfg := model.SmartPlanConfig{Duration: 1, Intensity: model.IntensityLight}

	schedule := BuildWeeklySchedule([]ScoredNode{{Node: node, Priority: 10}}, nil, cfg)
	require.Len(t, schedule, 1)
	require.Len(t, schedule[0].Sessions, 1)

	assert.Equal(t, "Práctica General", schedule[0].Sessions[0].SkillFocus)
	assert.Equal(t, 45, schedule[0].Sessions[0].DurationMinutes)
}

func TestWeekFocusPhases(t *testing.T) {
	assert.Equal(t, "Fundamentos y Conceptos", WeekFocus(1, 6))
	assert.Equal(t, "Fundamentos y Conceptos", WeekFocus(2, 6))
	assert.Equal(t, "Aplicación y Práctica", WeekFocus(3, 6))
	assert.Equal(t, "Aplicación y Práctica", WeekFocus(4, 6))
	assert.Equal(t, "Consolidación y Simulacros", WeekFocus(5, 6))
	assert.Equal(t, "Consolidación y Simulacros", WeekFocus(6, 6))
}

func TestCalculatePlanMetrics(t *testing.T) {
	nodes := planNodes(1, 1, model.Tier1Critico, 4) // 60 minutos cada uno
	scored := make([]ScoredNode, len(nodes))
	for i, n := range nodes {
		scored[i] = ScoredNode{Node: n}
	}
	recs := []model.Recommendation{
		{Type: model.RecommendationWeakness},
		{Type: model.RecommendationWeakness},
		{Type: model.RecommendationOpportunity},
	}

	metrics := CalculatePlanMetrics(scored, recs)
	assert.Equal(t, 4, metrics.TotalNodes)
	assert.Equal(t, 4, metrics.TotalHours)
	assert.Equal(t, 2, metrics.WeaknessesAddressed)
	assert.Equal(t, 1, metrics.OpportunitiesIncluded)
	assert.Equal(t, 0, metrics.StrengthsMaintained)
}

func TestEstimateOutcomeBounds(t *testing.T) {
	weakness := model.Recommendation{Type: model.RecommendationWeakness}

	for _, intensity := range []model.Intensity{model.IntensityLight, model.IntensityModerate, model.IntensityIntensive} {
		for weeks := 1; weeks <= 52; weeks++ {
			for weaknesses := 0; weaknesses <= 5; weaknesses++ {
				cfg := model.SmartPlanConfig{Duration: weeks, Intensity: intensity}
				recs := make([]model.Recommendation, weaknesses)
				for i := range recs {
					recs[i] = weakness
				}

				outcome := EstimateOutcome(cfg, recs)
				assert.GreaterOrEqual(t, outcome.ExpectedImprovement, 0)
				assert.LessOrEqual(t, outcome.ExpectedImprovement, 50)
				assert.Equal(t, 85, outcome.ConfidenceLevel)
			}
		}
	}
}

func TestEstimateOutcomeFormula(t *testing.T) {
	cfg := model.SmartPlanConfig{Duration: 4, Intensity: model.IntensityModerate}
	recs := []model.Recommendation{
		{Type: model.RecommendationWeakness},
		{Type: model.RecommendationOpportunity},
	}

	// base 20 + 5×1 debilidad + min(2×4, 20) = 33.
	outcome := EstimateOutcome(cfg, recs)
	assert.Equal(t, 33, outcome.ExpectedImprovement)
	assert.NotEmpty(t, outcome.KeyBenefits)
}

func TestIntensityTables(t *testing.T) {
	assert.Equal(t, 4, NodesPerWeek(model.IntensityIntensive))
	assert.Equal(t, 3, NodesPerWeek(model.IntensityModerate))
	assert.Equal(t, 2, NodesPerWeek(model.IntensityLight))

	assert.Equal(t, 5, SessionsPerWeek(model.IntensityIntensive))
	assert.Equal(t, 4, SessionsPerWeek(model.IntensityModerate))
	assert.Equal(t, 3, SessionsPerWeek(model.IntensityLight))
}

func TestResolveTestIDs(t *testing.T) {
	tests := []model.TestInfo{
		{ID: 1, Code: "MATEMATICA_1"},
		{ID: 2, Code: "CIENCIAS"},
	}

	assert.Equal(t, []uint{1}, resolveTestIDs([]string{"MATEMATICA_1"}, tests))
	assert.Equal(t, []uint{1, 2}, resolveTestIDs([]string{"CIENCIAS", "MATEMATICA_1"}, tests))
	assert.Empty(t, resolveTestIDs([]string{"HISTORIA"}, tests))
}
