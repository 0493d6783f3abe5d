package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedQuestion = `{
	"questionText": "¿Cuánto es 2 + 2?",
	"options": ["3", "4", "5", "6"],
	"correctAnswer": "4",
	"explanation": "Suma directa.",
	"questionType": "multiple_choice",
	"bloomLevel": "recordar"
}`

func TestParseQuestionPayload(t *testing.T) {
	payload, ok := parseQuestionPayload(wellFormedQuestion)
	require.True(t, ok)
	assert.Equal(t, "¿Cuánto es 2 + 2?", payload.QuestionText)
	assert.Len(t, payload.Options, 4)
}

func TestParseQuestionPayloadCodeFence(t *testing.T) {
	fenced := "```json\n" + wellFormedQuestion + "\n```"
	payload, ok := parseQuestionPayload(fenced)
	require.True(t, ok)
	assert.Equal(t, "4", payload.CorrectAnswer)
}

func TestParseQuestionPayloadSurroundingText(t *testing.T) {
	noisy := "Aquí está la pregunta solicitada:\n" + wellFormedQuestion + "\nEspero que sea útil."
	_, ok := parseQuestionPayload(noisy)
	assert.True(t, ok)
}

func TestParseQuestionPayloadRejectsMalformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"sin JSON", "no hay objeto aquí"},
		{"JSON truncado", `{"questionText": `},
		{"sin pregunta", `{"options":["a","b","c","d"],"correctAnswer":"a"}`},
		{"tres opciones", `{"questionText":"x","options":["a","b","c"],"correctAnswer":"a"}`},
		{"sin respuesta correcta", `{"questionText":"x","options":["a","b","c","d"]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := parseQuestionPayload(tc.content)
			assert.False(t, ok)
		})
	}
}

func completionResponse(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func TestGenerateQuestionMalformedUsesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse("esto no es JSON válido")))
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL, Model: "test-model"})

	q, err := svc.GenerateQuestion(context.Background(), "MATEMATICA_1", "SOLVE_PROBLEMS")
	require.NoError(t, err)
	assert.Equal(t, "4", q.CorrectAnswer)
	assert.Equal(t, "SOLVE_PROBLEMS", q.SkillCode)
	assert.Equal(t, "MATEMATICA_1", q.TestCode)
}

func TestGenerateQuestionWellFormed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse(wellFormedQuestion)))
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL, Model: "test-model"})

	q, err := svc.GenerateQuestion(context.Background(), "MATEMATICA_1", "REPRESENT")
	require.NoError(t, err)
	assert.Equal(t, "¿Cuánto es 2 + 2?", q.Question)
	assert.Equal(t, "REPRESENT", q.SkillCode)
	assert.NotEmpty(t, q.ID)
}

func TestGenerateQuestionTransportErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL, Model: "test-model"})

	_, err := svc.GenerateQuestion(context.Background(), "CIENCIAS", "PROCESS_ANALYZE")
	assert.Error(t, err)
}
