package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/repository"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DiagnosticService maneja el ciclo de vida de una sesión de diagnóstico:
// selección de prueba, inicio, respuestas, navegación y cierre con resultado.
type DiagnosticService struct {
	DiagnosticRepo *repository.DiagnosticRepository
	PAESRepo       *repository.PAESRepository
	Questions      *QuestionChain
	now            func() time.Time
}

func NewDiagnosticService(diagRepo *repository.DiagnosticRepository, paesRepo *repository.PAESRepository, chain *QuestionChain) *DiagnosticService {
	return &DiagnosticService{
		DiagnosticRepo: diagRepo,
		PAESRepo:       paesRepo,
		Questions:      chain,
		now:            time.Now,
	}
}

// SelectTest crea una sesión en fase test_selected para la prueba indicada.
func (s *DiagnosticService) SelectTest(ctx context.Context, userID uint, testCode string) (*model.DiagnosticSession, error) {
	test, err := s.PAESRepo.FindTestByCode(ctx, testCode)
	if err != nil {
		return nil, util.ErrTestNotFound
	}

	session := &model.DiagnosticSession{
		UserID:  userID,
		TestID:  test.ID,
		Phase:   model.PhaseTestSelected,
		Answers: map[string]string{},
	}
	if err := s.DiagnosticRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("crear sesión de diagnóstico: %w", err)
	}
	return session, nil
}

// StartSession obtiene las preguntas desde la cadena de proveedores y pasa la
// sesión a fase activa.
func (s *DiagnosticService) StartSession(ctx context.Context, userID uint, sessionID string) (*model.DiagnosticSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase == model.PhaseFinished {
		return nil, util.ErrSessionFinished
	}

	test, err := s.PAESRepo.FindTestByID(ctx, session.TestID)
	if err != nil {
		return nil, util.ErrTestNotFound
	}

	questions, err := s.Questions.Questions(ctx, *test)
	if err != nil {
		return nil, fmt.Errorf("obtener preguntas para %s: %w", test.Code, err)
	}

	session.Questions = questions
	session.Phase = model.PhaseActive
	session.CurrentIndex = 0
	session.StartedAt = s.now()
	if err := s.DiagnosticRepo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("activar sesión: %w", err)
	}

	logger.Log.Info("diagnostic session started",
		zap.String("session", session.ID),
		zap.String("test", test.Code),
		zap.Int("questions", len(questions)),
	)
	return session, nil
}

// Answer registra la respuesta de la pregunta indicada. Responder la misma
// pregunta otra vez sobreescribe la respuesta anterior.
func (s *DiagnosticService) Answer(ctx context.Context, userID uint, sessionID string, questionIndex int, answer string) (*model.DiagnosticSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase != model.PhaseActive {
		return nil, util.ErrSessionFinished
	}
	if questionIndex < 0 || questionIndex >= len(session.Questions) {
		return nil, util.ErrQuestionOutOfRange
	}

	if session.Answers == nil {
		session.Answers = map[string]string{}
	}
	session.Answers[session.Questions[questionIndex].ID] = answer
	session.ShowHint = false
	if err := s.DiagnosticRepo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("registrar respuesta: %w", err)
	}
	return session, nil
}

// Navigate mueve el índice actual a la pregunta indicada, en cualquier
// dirección. La navegación oculta el hint de la pregunta anterior.
func (s *DiagnosticService) Navigate(ctx context.Context, userID uint, sessionID string, targetIndex int) (*model.DiagnosticSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase != model.PhaseActive {
		return nil, util.ErrSessionFinished
	}
	if targetIndex < 0 || targetIndex >= len(session.Questions) {
		return nil, util.ErrQuestionOutOfRange
	}

	session.CurrentIndex = targetIndex
	session.ShowHint = false
	if err := s.DiagnosticRepo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("navegar sesión: %w", err)
	}
	return session, nil
}

// ToggleHint alterna la visibilidad del hint de la pregunta actual.
func (s *DiagnosticService) ToggleHint(ctx context.Context, userID uint, sessionID string) (*model.DiagnosticSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase != model.PhaseActive {
		return nil, util.ErrSessionFinished
	}

	session.ShowHint = !session.ShowHint
	if err := s.DiagnosticRepo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("alternar hint: %w", err)
	}
	return session, nil
}

// Finish cierra la sesión, calcula el resultado y lo persiste.
func (s *DiagnosticService) Finish(ctx context.Context, userID uint, sessionID string) (*model.DiagnosticSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase == model.PhaseFinished {
		return nil, util.ErrSessionFinished
	}

	session.Results = ScoreSession(session.Questions, session.Answers, session.StartedAt, s.now())
	session.Phase = model.PhaseFinished
	if err := s.DiagnosticRepo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("finalizar sesión: %w", err)
	}

	logger.Log.Info("diagnostic session finished",
		zap.String("session", session.ID),
		zap.Int("score", session.Results.Score),
		zap.Int("elapsedMinutes", session.Results.ElapsedMinutes),
	)
	return session, nil
}

// GetSession devuelve la sesión si pertenece al usuario.
func (s *DiagnosticService) GetSession(ctx context.Context, userID uint, sessionID string) (*model.DiagnosticSession, error) {
	return s.ownedSession(ctx, userID, sessionID)
}

// History lista las sesiones finalizadas del usuario, más reciente primero.
func (s *DiagnosticService) History(ctx context.Context, userID uint) ([]model.DiagnosticSession, error) {
	return s.DiagnosticRepo.ListFinishedByUser(ctx, userID)
}

func (s *DiagnosticService) ownedSession(ctx context.Context, userID uint, sessionID string) (*model.DiagnosticSession, error) {
	session, err := s.DiagnosticRepo.FindSession(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return session, nil
}

// ScoreSession calcula el resultado final: puntaje porcentual redondeado,
// minutos transcurridos y aciertos por habilidad.
func ScoreSession(questions []model.DiagnosticQuestion, answers map[string]string, startedAt, finishedAt time.Time) *model.DiagnosticResult {
	result := &model.DiagnosticResult{
		TotalQuestions: len(questions),
		SkillBreakdown: map[string]int{},
	}

	for _, q := range questions {
		if answers[q.ID] == q.CorrectAnswer {
			result.CorrectAnswers++
			result.SkillBreakdown[q.SkillCode]++
		}
	}
	if result.TotalQuestions > 0 {
		result.Score = int(float64(result.CorrectAnswers)/float64(result.TotalQuestions)*100 + 0.5)
	}
	if !startedAt.IsZero() && finishedAt.After(startedAt) {
		result.ElapsedMinutes = int(finishedAt.Sub(startedAt).Minutes())
	}
	return result
}
