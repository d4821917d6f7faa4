package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Edu92337/quizmaster-backend/internal/http/response"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/storage/repository"
)

// SubscriptionChecker читает флаг доступа пользователя из хранилища.
type SubscriptionChecker interface {
	IsSubscribed(ctx context.Context, userUID string) (bool, error)
}

// SubscriptionRequiredMiddleware пропускает только пользователей с активной подпиской.
// Флаг читается из хранилища на каждый запрос, а не из токена.
func SubscriptionRequiredMiddleware(log *slog.Logger, checker SubscriptionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SubscriptionRequiredMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userUID, ok := UserUIDFrom(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Usuário não identificado"))
				return
			}

			subscribed, err := checker.IsSubscribed(r.Context(), userUID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				log.Error("failed to read subscription flag", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Erro interno"))
				return
			}
			if !subscribed {
				log.Info("access denied without subscription", slog.String("user_uid", userUID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Assinatura necessária"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
