// Package register HTTP-обработчик регистрации пользователя.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Edu92337/quizmaster-backend/internal/http/response"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/services/auth"
)

// Request тело запроса регистрации.
type Request struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Response тело успешного ответа.
type Response struct {
	UserUID string `json:"user_uid"`
	Msg     string `json:"msg"`
}

// Service регистрация пользователя.
type Service interface {
	Register(ctx context.Context, email, rawPassword string) (string, error)
}

// Handler обработчик регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя без подписки.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Email и пароль"
// @Success 200 {object} Response
// @Failure 400 {object} response.Message
// @Failure 409 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Corpo da requisição inválido"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	uid, err := h.service.Register(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("Email já cadastrado"))
		return
	}
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erro ao registrar usuário"))
		return
	}

	log.Info("user registered", slog.String("user_uid", uid))
	render.JSON(w, r, Response{UserUID: uid, Msg: "Usuário registrado com sucesso"})
}
