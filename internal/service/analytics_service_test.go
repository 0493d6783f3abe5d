package service

import (
	"fmt"
	"testing"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeNodes(testID, skillID uint, count int) []model.LearningNode {
	nodes := make([]model.LearningNode, count)
	for i := range nodes {
		nodes[i] = model.LearningNode{
			Title:   fmt.Sprintf("Nodo %d", i+1),
			TestID:  testID,
			SkillID: skillID,
		}
		nodes[i].ID = fmt.Sprintf("node-%d-%d-%d", testID, skillID, i+1)
	}
	return nodes
}

func completeFirst(nodes []model.LearningNode, n int, userID uint) []model.NodeProgress {
	rows := make([]model.NodeProgress, 0, n)
	for i := 0; i < n && i < len(nodes); i++ {
		rows = append(rows, model.NodeProgress{
			UserID: userID,
			NodeID: nodes[i].ID,
			Status: model.Completed,
		})
	}
	return rows
}

func TestAggregateTestsWorkedExample(t *testing.T) {
	// 8 nodos en un test, 2 completados → 25% y nivel moderate.
	tests := []model.PAESTest{{ID: 1, Code: "MATEMATICA_1", Name: "Matemática M1"}}
	skills := []model.PAESSkill{{ID: 1, Code: "SOLVE_PROBLEMS", TestID: 1}}
	nodes := makeNodes(1, 1, 8)
	progress := completeFirst(nodes, 2, 7)

	infos := AggregateTests(tests, skills, nodes, progress)
	require.Len(t, infos, 1)

	assert.Equal(t, 25, infos[0].UserProgress)
	assert.Equal(t, model.WeaknessModerate, infos[0].WeaknessLevel)
	assert.Equal(t, 8, infos[0].NodeCount)
	assert.Equal(t, 1, infos[0].SkillCount)
}

func TestAggregateTestsNoNodes(t *testing.T) {
	tests := []model.PAESTest{{ID: 1, Code: "CIENCIAS"}}

	infos := AggregateTests(tests, nil, nil, nil)
	require.Len(t, infos, 1)
	assert.Equal(t, 0, infos[0].UserProgress)
	assert.Equal(t, model.WeaknessCritical, infos[0].WeaknessLevel)
}

func TestWeaknessLevelBoundaries(t *testing.T) {
	cases := []struct {
		progress int
		want     model.WeaknessLevel
	}{
		{100, model.WeaknessGood},
		{75, model.WeaknessGood},
		{74, model.WeaknessLow},
		{50, model.WeaknessLow},
		{49, model.WeaknessModerate},
		{25, model.WeaknessModerate},
		{24, model.WeaknessCritical},
		{0, model.WeaknessCritical},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("progress=%d", tc.progress), func(t *testing.T) {
			assert.Equal(t, tc.want, weaknessLevelFor(tc.progress))
		})
	}
}

func TestSkillPriorityBoundaries(t *testing.T) {
	cases := []struct {
		performance int
		want        model.SkillPriority
	}{
		{0, model.PriorityHigh},
		{29, model.PriorityHigh},
		{30, model.PriorityMedium},
		{59, model.PriorityMedium},
		{60, model.PriorityLow},
		{100, model.PriorityLow},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("performance=%d", tc.performance), func(t *testing.T) {
			assert.Equal(t, tc.want, skillPriorityFor(tc.performance))
		})
	}
}

func TestAggregateSkillsPerformance(t *testing.T) {
	skills := []model.PAESSkill{
		{ID: 1, Code: "TRACK_LOCATE", Name: "Rastrear y Localizar", TestID: 1},
		{ID: 2, Code: "INTERPRET_RELATE", Name: "Interpretar y Relacionar", TestID: 1},
	}
	nodesA := makeNodes(1, 1, 4)
	nodesB := makeNodes(1, 2, 2)
	nodes := append(nodesA, nodesB...)

	// Skill 1: 1 de 4 completados → 25%, high. Skill 2: 1 de 2 → 50%, medium.
	progress := append(completeFirst(nodesA, 1, 9), completeFirst(nodesB, 1, 9)...)

	infos := AggregateSkills(skills, nodes, progress)
	require.Len(t, infos, 2)

	assert.Equal(t, 25, infos[0].Performance)
	assert.Equal(t, model.PriorityHigh, infos[0].Priority)
	assert.Equal(t, 50, infos[1].Performance)
	assert.Equal(t, model.PriorityMedium, infos[1].Priority)
}

func TestAggregateIdempotence(t *testing.T) {
	tests := []model.PAESTest{{ID: 1, Code: "HISTORIA"}}
	skills := []model.PAESSkill{{ID: 5, Code: "SOURCE_ANALYSIS", TestID: 1}}
	nodes := makeNodes(1, 5, 6)
	progress := completeFirst(nodes, 3, 2)

	first := AggregateTests(tests, skills, nodes, progress)
	second := AggregateTests(tests, skills, nodes, progress)
	assert.Equal(t, first, second)

	firstSkills := AggregateSkills(skills, nodes, progress)
	secondSkills := AggregateSkills(skills, nodes, progress)
	assert.Equal(t, firstSkills, secondSkills)
}

func TestAggregateProgressWithinRange(t *testing.T) {
	tests := []model.PAESTest{{ID: 1, Code: "COMPETENCIA_LECTORA"}}
	nodes := makeNodes(1, 1, 10)

	for completedCount := 0; completedCount <= 10; completedCount++ {
		progress := completeFirst(nodes, completedCount, 1)
		infos := AggregateTests(tests, nil, nodes, progress)
		require.Len(t, infos, 1)
		assert.GreaterOrEqual(t, infos[0].UserProgress, 0)
		assert.LessOrEqual(t, infos[0].UserProgress, 100)
	}
}

func TestInProgressNodesDoNotCount(t *testing.T) {
	tests := []model.PAESTest{{ID: 1, Code: "MATEMATICA_2"}}
	nodes := makeNodes(1, 1, 4)
	progress := []model.NodeProgress{
		{UserID: 1, NodeID: nodes[0].ID, Status: model.InProgress, Progress: 90},
		{UserID: 1, NodeID: nodes[1].ID, Status: model.Completed},
	}

	infos := AggregateTests(tests, nil, nodes, progress)
	require.Len(t, infos, 1)
	assert.Equal(t, 25, infos[0].UserProgress)
}
