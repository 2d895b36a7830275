package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// Тип для ключа контекста.
type contextKey string

// Ключи для хранения данных аутентифицированного пользователя в контексте.
const (
	UserIDKey   contextKey = "userID"
	UsernameKey contextKey = "username"
)

// TokenVerifier проверяет токен и возвращает ID и имя пользователя.
// Единственная реализация - сервис аутентификации; middleware - единственное
// место, где проверяется валидность токена.
type TokenVerifier interface {
	VerifyToken(tokenString string) (int64, string, error)
}

// NewAuthenticator возвращает middleware, проверяющее bearer-токен.
// Запрос без токена отклоняется со статусом 401, запрос с невалидным или
// истекшим токеном - со статусом 403; до обработчика такие запросы не доходят.
func NewAuthenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем заголовок Authorization и извлекаем токен формата "Bearer <token>"
			authHeader := r.Header.Get("Authorization")
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" || headerParts[1] == "" {
				log.Printf("[AuthMiddleware] Токен отсутствует (заголовок: %q)", authHeader)
				writeJSONMessage(w, http.StatusUnauthorized, "Access token missing")
				return
			}

			tokenString := headerParts[1]

			// Делегируем проверку сервису токенов
			userID, username, err := verifier.VerifyToken(tokenString)
			if err != nil {
				log.Printf("[AuthMiddleware] Ошибка проверки токена: %v", err)
				writeJSONMessage(w, http.StatusForbidden, "Invalid token")
				return
			}

			// Добавляем данные пользователя в контекст запроса
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, UsernameKey, username)

			log.Printf("[AuthMiddleware] Пользователь %d (%s) успешно аутентифицирован", userID, username)

			// Передаем управление следующему обработчику с обновленным контекстом
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext извлекает UserID из контекста запроса.
// Возвращает ID пользователя и true, если ID найден, иначе 0 и false.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// GetUsernameFromContext извлекает имя пользователя из контекста запроса.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// writeJSONMessage отправляет JSON-ответ вида {"message": "..."} - формат
// ответов middleware исходного API.
func writeJSONMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		log.Printf("[AuthMiddleware] Ошибка кодирования ответа: %v", err)
	}
}
