package service

import (
	"context"
	"fmt"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/logger"

	"go.uber.org/zap"
)

// QuestionProvider entrega el set de preguntas para un diagnóstico. Los
// proveedores se prueban en orden y gana el primero que responde.
type QuestionProvider interface {
	Name() string
	Questions(ctx context.Context, test model.PAESTest) ([]model.DiagnosticQuestion, error)
}

// QuestionChain recorre la lista ordenada de proveedores y devuelve el primer
// resultado no vacío. Si todos fallan, devuelve el último error.
type QuestionChain struct {
	providers []QuestionProvider
}

func NewQuestionChain(providers ...QuestionProvider) *QuestionChain {
	return &QuestionChain{providers: providers}
}

func (c *QuestionChain) Questions(ctx context.Context, test model.PAESTest) ([]model.DiagnosticQuestion, error) {
	var lastErr error
	for _, p := range c.providers {
		questions, err := p.Questions(ctx, test)
		if err != nil {
			logger.Log.Warn("question provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.String("test", test.Code),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if len(questions) > 0 {
			return questions, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no question provider produced questions for %s", test.Code)
	}
	return nil, lastErr
}

// AIQuestionProvider genera preguntas vía el endpoint de chat completions.
type AIQuestionProvider struct {
	AI             *AIService
	QuestionsPer   int
	SkillsByTestID map[uint][]model.PAESSkill
}

func NewAIQuestionProvider(ai *AIService, skills []model.PAESSkill) *AIQuestionProvider {
	byTest := make(map[uint][]model.PAESSkill)
	for _, sk := range skills {
		byTest[sk.TestID] = append(byTest[sk.TestID], sk)
	}
	return &AIQuestionProvider{AI: ai, QuestionsPer: 4, SkillsByTestID: byTest}
}

func (p *AIQuestionProvider) Name() string { return "ai" }

func (p *AIQuestionProvider) Questions(ctx context.Context, test model.PAESTest) ([]model.DiagnosticQuestion, error) {
	skills := p.SkillsByTestID[test.ID]
	if len(skills) == 0 {
		return nil, fmt.Errorf("no skills registered for test %s", test.Code)
	}

	questions := make([]model.DiagnosticQuestion, 0, p.QuestionsPer)
	for i := 0; i < p.QuestionsPer; i++ {
		skill := skills[i%len(skills)]
		q, err := p.AI.GenerateQuestion(ctx, test.Code, skill.Code)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, nil
}

// DemoQuestionProvider sirve el set de demostración por código de prueba.
type DemoQuestionProvider struct{}

func (DemoQuestionProvider) Name() string { return "demo" }

func (DemoQuestionProvider) Questions(_ context.Context, test model.PAESTest) ([]model.DiagnosticQuestion, error) {
	questions, ok := demoQuestionSets[test.Code]
	if !ok {
		return nil, fmt.Errorf("no demo questions for test %s", test.Code)
	}
	out := make([]model.DiagnosticQuestion, len(questions))
	copy(out, questions)
	for i := range out {
		out[i].ID = fmt.Sprintf("%s-demo-q%d", test.Code, i+1)
	}
	return out, nil
}

// FallbackQuestionProvider es el último eslabón: un set mínimo fijo que
// nunca falla.
type FallbackQuestionProvider struct{}

func (FallbackQuestionProvider) Name() string { return "fallback" }

func (FallbackQuestionProvider) Questions(_ context.Context, test model.PAESTest) ([]model.DiagnosticQuestion, error) {
	return []model.DiagnosticQuestion{
		{
			ID:            fmt.Sprintf("%s-fallback-q1", test.Code),
			Question:      "Si 3x + 5 = 17, ¿cuál es el valor de x?",
			Options:       []string{"2", "4", "6", "12"},
			CorrectAnswer: "4",
			SkillCode:     "SOLVE_PROBLEMS",
			TestCode:      test.Code,
		},
		{
			ID:            fmt.Sprintf("%s-fallback-q2", test.Code),
			Question:      "¿Cuál es el área de un círculo con radio 5 cm?",
			Options:       []string{"25π cm²", "10π cm²", "5π cm²", "15π cm²"},
			CorrectAnswer: "25π cm²",
			Explanation:   "El área de un círculo se calcula con la fórmula A = πr², donde r es el radio.",
			SkillCode:     "REPRESENT",
			TestCode:      test.Code,
		},
	}, nil
}

var demoQuestionSets = map[string][]model.DiagnosticQuestion{
	"COMPETENCIA_LECTORA": {
		{
			Question: "Según el texto, ¿cuál es la idea principal?",
			Options: []string{
				"La importancia de la lectura en el desarrollo cognitivo",
				"Las diferencias entre lectores novatos y experimentados",
				"El impacto de la tecnología en los hábitos de lectura",
				"La relación entre comprensión lectora y rendimiento académico",
			},
			CorrectAnswer: "La relación entre comprensión lectora y rendimiento académico",
			SkillCode:     "TRACK_LOCATE",
			TestCode:      "COMPETENCIA_LECTORA",
		},
		{
			Question: "¿Qué se puede inferir del párrafo final?",
			Options: []string{
				"El autor está en desacuerdo con las conclusiones del estudio",
				"La metodología de la investigación presenta fallos graves",
				"Se necesita más investigación para confirmar los hallazgos",
				"Los resultados contradicen estudios previos sobre el tema",
			},
			CorrectAnswer: "Se necesita más investigación para confirmar los hallazgos",
			SkillCode:     "INTERPRET_RELATE",
			TestCode:      "COMPETENCIA_LECTORA",
		},
		{
			Question: "¿Cuál es la función del segundo párrafo en la estructura del texto?",
			Options: []string{
				"Presentar un contraargumento",
				"Ejemplificar la tesis planteada",
				"Introducir un nuevo tema",
				"Resumir las conclusiones",
			},
			CorrectAnswer: "Ejemplificar la tesis planteada",
			SkillCode:     "EVALUATE_REFLECT",
			TestCode:      "COMPETENCIA_LECTORA",
		},
	},
	"MATEMATICA_1": {
		{
			Question:      "Si 3x + 5 = 17, ¿cuál es el valor de x?",
			Options:       []string{"2", "4", "6", "12"},
			CorrectAnswer: "4",
			SkillCode:     "SOLVE_PROBLEMS",
			TestCode:      "MATEMATICA_1",
		},
		{
			Question:      "¿Cuál es el área de un círculo con radio 5 cm?",
			Options:       []string{"25π cm²", "10π cm²", "5π cm²", "15π cm²"},
			CorrectAnswer: "25π cm²",
			Explanation:   "El área de un círculo se calcula con la fórmula A = πr², donde r es el radio.",
			SkillCode:     "REPRESENT",
			TestCode:      "MATEMATICA_1",
		},
		{
			Question:      "Un artículo cuesta $12.000 y tiene un descuento del 25%. ¿Cuál es el precio final?",
			Options:       []string{"$3.000", "$8.000", "$9.000", "$10.000"},
			CorrectAnswer: "$9.000",
			Explanation:   "El descuento es 12.000 × 0,25 = 3.000, por lo que el precio final es 9.000.",
			SkillCode:     "SOLVE_PROBLEMS",
			TestCode:      "MATEMATICA_1",
		},
	},
}
