package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name      string
	questions []model.DiagnosticQuestion
	err       error
	calls     int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Questions(_ context.Context, _ model.PAESTest) ([]model.DiagnosticQuestion, error) {
	p.calls++
	return p.questions, p.err
}

func question(id, correct string) model.DiagnosticQuestion {
	return model.DiagnosticQuestion{
		ID:            id,
		Question:      "¿Pregunta " + id + "?",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: correct,
		SkillCode:     "SOLVE_PROBLEMS",
	}
}

func TestQuestionChainFirstSuccessWins(t *testing.T) {
	primary := &stubProvider{name: "primary", questions: []model.DiagnosticQuestion{question("q1", "a")}}
	secondary := &stubProvider{name: "secondary", questions: []model.DiagnosticQuestion{question("q2", "b")}}

	chain := NewQuestionChain(primary, secondary)
	questions, err := chain.Questions(context.Background(), model.PAESTest{Code: "MATEMATICA_1"})
	require.NoError(t, err)

	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, 0, secondary.calls)
}

func TestQuestionChainFallbackOrder(t *testing.T) {
	failing := &stubProvider{name: "ai", err: errors.New("api caída")}
	empty := &stubProvider{name: "demo"}
	last := &stubProvider{name: "fallback", questions: []model.DiagnosticQuestion{question("q9", "c")}}

	chain := NewQuestionChain(failing, empty, last)
	questions, err := chain.Questions(context.Background(), model.PAESTest{Code: "CIENCIAS"})
	require.NoError(t, err)

	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, empty.calls)
	require.Len(t, questions, 1)
	assert.Equal(t, "q9", questions[0].ID)
}

func TestQuestionChainAllFail(t *testing.T) {
	wantErr := errors.New("sin red")
	chain := NewQuestionChain(&stubProvider{name: "only", err: wantErr})

	_, err := chain.Questions(context.Background(), model.PAESTest{Code: "HISTORIA"})
	assert.ErrorIs(t, err, wantErr)
}

func TestDemoQuestionProviderKnownTests(t *testing.T) {
	provider := DemoQuestionProvider{}

	for _, code := range []string{"COMPETENCIA_LECTORA", "MATEMATICA_1"} {
		questions, err := provider.Questions(context.Background(), model.PAESTest{Code: code})
		require.NoError(t, err, code)
		assert.NotEmpty(t, questions)
		for _, q := range questions {
			assert.Len(t, q.Options, 4)
			assert.Contains(t, q.Options, q.CorrectAnswer)
			assert.NotEmpty(t, q.ID)
		}
	}

	_, err := provider.Questions(context.Background(), model.PAESTest{Code: "CIENCIAS"})
	assert.Error(t, err)
}

func TestFallbackQuestionProviderNeverFails(t *testing.T) {
	provider := FallbackQuestionProvider{}

	questions, err := provider.Questions(context.Background(), model.PAESTest{Code: "CUALQUIERA"})
	require.NoError(t, err)
	assert.NotEmpty(t, questions)
}

func TestScoreSession(t *testing.T) {
	questions := []model.DiagnosticQuestion{
		question("q1", "a"),
		question("q2", "b"),
		question("q3", "c"),
		question("q4", "d"),
	}
	answers := map[string]string{
		"q1": "a",
		"q2": "x",
		"q3": "c",
		// q4 sin responder
	}

	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	finish := start.Add(23 * time.Minute)

	result := ScoreSession(questions, answers, start, finish)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, 23, result.ElapsedMinutes)
	assert.Equal(t, 2, result.SkillBreakdown["SOLVE_PROBLEMS"])
}

func TestScoreSessionEmpty(t *testing.T) {
	result := ScoreSession(nil, nil, time.Time{}, time.Now())
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.ElapsedMinutes)
}

func TestScoreSessionRounding(t *testing.T) {
	questions := []model.DiagnosticQuestion{
		question("q1", "a"),
		question("q2", "a"),
		question("q3", "a"),
	}
	answers := map[string]string{"q1": "a"}

	// 1/3 → 33.33 redondea a 33; 2/3 → 66.67 redondea a 67.
	result := ScoreSession(questions, answers, time.Time{}, time.Time{})
	assert.Equal(t, 33, result.Score)

	answers["q2"] = "a"
	result = ScoreSession(questions, answers, time.Time{}, time.Time{})
	assert.Equal(t, 67, result.Score)
}
