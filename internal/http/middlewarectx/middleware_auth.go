// Package middlewarectx HTTP middleware: проверка токена доступа, проверка подписки
// и ограничение частоты запросов. Данные пользователя передаются дальше через контекст.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Edu92337/quizmaster-backend/internal/http/response"
	"github.com/Edu92337/quizmaster-backend/internal/lib/jwt"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
)

// Key тип ключей контекста запроса.
type Key string

const (
	// UserUID идентификатор пользователя из токена.
	UserUID Key = "user_uid"
	// Email адрес пользователя из токена.
	Email Key = "email"
)

// TokenParser разбирает токен доступа.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.Claims, error)
}

// UserUIDFrom достает идентификатор пользователя из контекста.
func UserUIDFrom(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserUID).(string)
	return uid, ok && uid != ""
}

// WithUser кладет данные пользователя в контекст.
func WithUser(ctx context.Context, userUID, email string) context.Context {
	ctx = context.WithValue(ctx, UserUID, userUID)
	return context.WithValue(ctx, Email, email)
}

// JWTMiddleware проверяет заголовок Authorization: Bearer <token>. При успехе кладет
// user_uid и email в контекст, иначе отвечает 401.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Token de acesso ausente"))
				return
			}

			claims, err := parser.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Token inválido ou expirado"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.UserUID, claims.Email)))
		})
	}
}
