package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/YVINAY2005/task-manager/internal/token"
	"github.com/YVINAY2005/task-manager/pkg/respond"
)

type ctxKey int

const userIDKey ctxKey = iota

// Authenticator проверяет bearer-токен и кладет id пользователя в контекст.
// Без валидного токена до хэндлеров запрос не доходит.
func Authenticator(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				respond.Error(w, r, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			userID, err := tokens.Parse(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userIDKey).(uuid.UUID)
	return id
}
