package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// HeaderUserID заголовок с ID аутентифицированного пользователя
// Аутентификацию выполняет API-гейтвей, сервис доверяет заголовку
const HeaderUserID = "X-User-ID"

type userIDContextKey struct{}

// Auth извлекает ID пользователя из заголовка и кладет его в контекст запроса
// Запросы без корректного заголовка пропускаются дальше: обязательность
// проверяют сами обработчики через GetUserID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(HeaderUserID)
		if header != "" {
			if userID, err := strconv.ParseInt(header, 10, 64); err == nil && userID > 0 {
				r = r.WithContext(context.WithValue(r.Context(), userIDContextKey{}, userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey{}).(int64)
	return userID, ok
}
