package models

import "time"

// Question вопрос с вариантами ответа. После создания не изменяется.
type Question struct {
	ID            int64     `json:"id"`
	Text          string    `json:"text"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Subject       string    `json:"subject"`
	ExamType      string    `json:"exam_type"`
	Difficulty    string    `json:"difficulty"`
	CreatedByIA   bool      `json:"created_by_ia"`
	CreatedAt     time.Time `json:"created_at"`
}

// Типы взаимодействий с ИИ.
const (
	InteractionChat               = "chat"
	InteractionQuestionGeneration = "question_generation"
)

// AIInteraction запись об одном успешном обращении к модели.
type AIInteraction struct {
	ID              int64
	UserUID         string
	InteractionType string
	Prompt          string
	Response        string
	Timestamp       time.Time
}
