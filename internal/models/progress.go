package models

import "time"

// UserProgress счетчики ответов пользователя за один календарный день (UTC).
type UserProgress struct {
	UserUID           string
	Date              time.Time
	QuestionsAnswered int
	CorrectAnswers    int
}
