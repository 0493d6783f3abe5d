package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/config"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/logger"

	"go.uber.org/zap"
)

// AIService habla con un endpoint de chat completions compatible con OpenRouter.
// La configuración puede recargarse en caliente, de ahí el mutex.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// UpdateConfig reemplaza la configuración del proveedor de IA sin reiniciar.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIService) currentConfig() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// aiQuestionPayload es el objeto JSON que el modelo debe devolver.
type aiQuestionPayload struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	QuestionType  string   `json:"questionType"`
	BloomLevel    string   `json:"bloomLevel"`
}

const questionSystemPrompt = "Eres un generador de preguntas de práctica para la prueba PAES de Chile. " +
	"Responde únicamente con un objeto JSON con los campos questionText, options (arreglo de 4 strings), " +
	"correctAnswer, explanation, questionType y bloomLevel. Sin texto adicional ni markdown."

// GenerateQuestion pide una pregunta al modelo. Un fallo de red o de API se
// propaga como error; un JSON malformado se sustituye por la pregunta de
// respaldo sin error para el llamador.
func (s *AIService) GenerateQuestion(ctx context.Context, testCode, skillCode string) (*model.DiagnosticQuestion, error) {
	userPrompt := fmt.Sprintf(
		"Genera una pregunta de selección múltiple para la prueba %s, habilidad %s. Nivel de dificultad intermedio.",
		testCode, skillCode,
	)

	cfg := s.currentConfig()
	reqBody := ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: questionSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, err
	}
	if completion.Error != nil {
		return nil, fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("AI API returned no choices")
	}

	payload, ok := parseQuestionPayload(completion.Choices[0].Message.Content)
	if !ok {
		logger.Log.Warn("malformed AI question payload, using fallback question",
			zap.String("test", testCode),
			zap.String("skill", skillCode),
		)
		return fallbackAIQuestion(testCode, skillCode), nil
	}

	return &model.DiagnosticQuestion{
		ID:            model.GenerateUUID(),
		Question:      payload.QuestionText,
		Options:       payload.Options,
		CorrectAnswer: payload.CorrectAnswer,
		Explanation:   payload.Explanation,
		QuestionType:  payload.QuestionType,
		BloomLevel:    payload.BloomLevel,
		SkillCode:     skillCode,
		TestCode:      testCode,
	}, nil
}

// parseQuestionPayload tolera respuestas envueltas en cercas de código o con
// texto alrededor del objeto JSON.
func parseQuestionPayload(content string) (*aiQuestionPayload, bool) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, false
	}

	var payload aiQuestionPayload
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, false
	}
	if payload.QuestionText == "" || len(payload.Options) != 4 || payload.CorrectAnswer == "" {
		return nil, false
	}
	return &payload, true
}

func fallbackAIQuestion(testCode, skillCode string) *model.DiagnosticQuestion {
	return &model.DiagnosticQuestion{
		ID:            model.GenerateUUID(),
		Question:      "Si 3x + 5 = 17, ¿cuál es el valor de x?",
		Options:       []string{"2", "4", "6", "12"},
		CorrectAnswer: "4",
		Explanation:   "Despejando: 3x = 12, por lo tanto x = 4.",
		QuestionType:  "multiple_choice",
		BloomLevel:    "aplicar",
		SkillCode:     skillCode,
		TestCode:      testCode,
	}
}
