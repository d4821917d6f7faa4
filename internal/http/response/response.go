// Package response единый формат JSON-ответов HTTP-обработчиков.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Message тело ответа с ошибкой: {"msg": "..."}.
type Message struct {
	Msg string `json:"msg" example:"Assunto e tipo de prova são obrigatórios"`
}

// Status тело ответа со статусом: {"status": "..."}.
type Status struct {
	Status string `json:"status" example:"success"`
}

// Статусы ответов.
const (
	StatusOK      = "OK"
	StatusSuccess = "success"
)

// Error возвращает Message с текстом ошибки.
func Error(msg string) Message {
	return Message{Msg: msg}
}

// OK возвращает Status с переданным значением.
func OK(status string) Status {
	return Status{Status: status}
}

// ValidationError собирает нарушения валидации в одно сообщение.
func ValidationError(errs validator.ValidationErrors) Message {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param()))
		case "uuid":
			msgs = append(msgs, fmt.Sprintf("field %s must be a uuid", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Message{Msg: strings.Join(msgs, ", ")}
}
