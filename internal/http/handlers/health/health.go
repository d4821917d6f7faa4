// Package health отвечает на проверку живости HTTP-сервера.
package health

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/Edu92337/quizmaster-backend/internal/http/response"
)

// Handler обработчик /health.
type Handler struct{}

// New создает Handler.
func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Health
// @Produce json
// @Success 200 {object} response.Status
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OK(response.StatusOK))
}
