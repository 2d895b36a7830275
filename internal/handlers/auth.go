package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/maynagashev/minitwitter/internal/models"
	"github.com/maynagashev/minitwitter/internal/services"
)

// AuthService определяет интерфейс для сервиса аутентификации.
// Это позволит нам легко подменять реализацию (например, для тестов).
type AuthService interface {
	Register(username, password string) error
	Login(username, password string) (string, error) // Возвращает JWT токен или ошибку
}

// AuthHandler обрабатывает HTTP-запросы, связанные с аутентификацией.
type AuthHandler struct {
	service AuthService // Зависимость от интерфейса, а не конкретной реализации
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(s AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
// Любая ошибка хранилища, включая занятое имя пользователя, отдается как
// 500 с общим текстом - деталь остается в серверных логах.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	// Декодируем JSON из тела запроса
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[AuthHandler] Ошибка декодирования запроса регистрации: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация входных данных (простая)
	if req.Username == "" || req.Password == "" {
		log.Printf("[AuthHandler] Пустое имя пользователя или пароль при регистрации")
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	log.Printf("[AuthHandler] Попытка регистрации пользователя: %s", req.Username)

	if err := h.service.Register(req.Username, req.Password); err != nil {
		log.Printf("[AuthHandler] Ошибка регистрации '%s': %v", req.Username, err)
		http.Error(w, "Error registering user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated) // 201 Created
	_, _ = w.Write([]byte("User registered successfully"))
	log.Printf("[AuthHandler] Успешная регистрация: %s", req.Username)
}

// Login обрабатывает запрос на вход пользователя.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	// Декодируем JSON из тела запроса
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[AuthHandler] Ошибка декодирования запроса входа: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация входных данных (простая)
	if req.Username == "" || req.Password == "" {
		log.Printf("[AuthHandler] Пустое имя пользователя или пароль при входе")
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	log.Printf("[AuthHandler] Попытка входа пользователя: %s", req.Username)

	token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidCredentials):
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		default:
			log.Printf("[AuthHandler] Ошибка входа '%s': %v", req.Username, err)
			http.Error(w, "Error logging in", http.StatusInternalServerError)
		}
		return
	}

	resp := models.LoginResponse{
		Message: "Login successful",
		Token:   token,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK) // 200 OK
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[AuthHandler] Ошибка кодирования ответа входа: %v", err)
		// Клиент уже получил статус 200, сложно что-то изменить
		return
	}
	log.Printf("[AuthHandler] Успешный вход: %s", req.Username)
}
