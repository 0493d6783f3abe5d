package model

import "time"

type DiagnosticPhase string

const (
	PhaseIdle         DiagnosticPhase = "idle"
	PhaseTestSelected DiagnosticPhase = "test_selected"
	PhaseActive       DiagnosticPhase = "active"
	PhaseFinished     DiagnosticPhase = "finished"
)

// DiagnosticQuestion es una pregunta de selección múltiple con cuatro opciones.
type DiagnosticQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
	QuestionType  string   `json:"questionType,omitempty"`
	BloomLevel    string   `json:"bloomLevel,omitempty"`
	SkillCode     string   `json:"skill"`
	TestCode      string   `json:"prueba"`
}

// DiagnosticSession lleva la contabilidad de un diagnóstico en curso:
// test elegido, índice actual, respuestas por pregunta y resultado final.
type DiagnosticSession struct {
	UUIDBase
	UserID       uint                 `gorm:"index;not null" json:"userId"`
	TestID       uint                 `gorm:"not null" json:"testId"`
	Phase        DiagnosticPhase      `gorm:"type:enum('idle','test_selected','active','finished');default:'test_selected'" json:"phase"`
	CurrentIndex int                  `gorm:"default:0" json:"currentIndex"`
	ShowHint     bool                 `gorm:"default:false" json:"showHint"`
	StartedAt    time.Time            `json:"startedAt"`
	Questions    []DiagnosticQuestion `gorm:"serializer:json;type:longtext" json:"questions"`
	Answers      map[string]string    `gorm:"serializer:json;type:text" json:"answers"`
	Results      *DiagnosticResult    `gorm:"serializer:json;type:text" json:"results,omitempty"`
}

func (DiagnosticSession) TableName() string {
	return "diagnostic_sessions"
}

// DiagnosticResult es el resultado calculado al finalizar la sesión.
type DiagnosticResult struct {
	TotalQuestions int            `json:"totalQuestions"`
	CorrectAnswers int            `json:"correctAnswers"`
	Score          int            `json:"score"`
	ElapsedMinutes int            `json:"elapsedMinutes"`
	SkillBreakdown map[string]int `json:"skillBreakdown"`
}
