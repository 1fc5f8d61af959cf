package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type sessionKey string

const SessionIDKey sessionKey = "sessionID"

// SessionHeader — заголовок, связывающий клиента с его корзиной
const SessionHeader = "X-Session-ID"

// SessionMiddleware извлекает идентификатор сессии из заголовка
// или выдаёт новый; идентификатор всегда возвращается в ответе
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		w.Header().Set(SessionHeader, sessionID)
		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext извлекает идентификатор сессии из контекста
func SessionFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok && id != ""
}
