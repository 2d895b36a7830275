package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/maynagashev/minitwitter/internal/middleware"
	"github.com/maynagashev/minitwitter/internal/models"
	"github.com/maynagashev/minitwitter/internal/services"
)

// PostService определяет интерфейс сервиса публикаций, используемый обработчиком.
type PostService interface {
	CreatePost(userID int64, content string) (int64, error)
	ListPosts() ([]models.Post, error)
	UpdatePost(postID, userID int64, content string) error
	DeletePost(postID, userID int64) error
}

// PostHandler обрабатывает HTTP-запросы, связанные с публикациями.
type PostHandler struct {
	service PostService // Зависимость от интерфейса, а не конкретной реализации
}

// NewPostHandler создает новый экземпляр PostHandler.
func NewPostHandler(s PostService) *PostHandler {
	return &PostHandler{service: s}
}

// parseIDParam извлекает из URL параметр с именем name и разбирает его как
// положительное целое. Любой другой идентификатор отклоняется до обращения
// к хранилищу.
func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("идентификатор должен быть положительным целым числом")
	}
	return id, nil
}

// List обрабатывает GET запрос на получение всех публикаций (новые первыми).
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	log.Printf("[PostHandler:List] Запрос ленты от пользователя %d", userID)

	posts, err := h.service.ListPosts()
	if err != nil {
		log.Printf("[PostHandler:List] Ошибка сервиса при получении публикаций: %v", err)
		http.Error(w, "Error loading posts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(posts); err != nil {
		log.Printf("[PostHandler:List] Ошибка кодирования ответа: %v", err)
	}
}

// Create обрабатывает POST запрос на создание публикации.
// Владелец публикации берется из контекста запроса, а не из тела.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[PostHandler:Create] Не удалось получить userID из контекста")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var req models.ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[PostHandler:Create] Ошибка декодирования запроса: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		log.Printf("[PostHandler:Create] Пустое содержимое публикации от пользователя %d", userID)
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	postID, err := h.service.CreatePost(userID, req.Content)
	if err != nil {
		log.Printf("[PostHandler:Create] Ошибка сервиса при создании публикации: %v", err)
		http.Error(w, "Error creating post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(models.CreatePostResponse{PostID: postID}); err != nil {
		log.Printf("[PostHandler:Create] Ошибка кодирования ответа: %v", err)
	}
}

// Update обрабатывает PUT запрос на изменение публикации.
// "Не найдено" и "чужая публикация" сознательно неразличимы в ответе.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[PostHandler:Update] Не удалось получить userID из контекста")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	postID, err := parseIDParam(r, "postID")
	if err != nil {
		log.Printf("[PostHandler:Update] Неверный ID публикации: %v", err)
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var req models.ContentRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[PostHandler:Update] Ошибка декодирования запроса: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	err = h.service.UpdatePost(postID, userID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			http.Error(w, "Post not found or unauthorized", http.StatusNotFound)
		} else {
			log.Printf("[PostHandler:Update] Ошибка сервиса при обновлении публикации %d: %v", postID, err)
			http.Error(w, "Error updating post", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Post updated successfully"))
}

// Delete обрабатывает DELETE запрос на удаление публикации.
// Комментарии и реакции удаляются каскадом на уровне схемы.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[PostHandler:Delete] Не удалось получить userID из контекста")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	postID, err := parseIDParam(r, "postID")
	if err != nil {
		log.Printf("[PostHandler:Delete] Неверный ID публикации: %v", err)
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	err = h.service.DeletePost(postID, userID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			http.Error(w, "Post not found or unauthorized", http.StatusNotFound)
		} else {
			log.Printf("[PostHandler:Delete] Ошибка сервиса при удалении публикации %d: %v", postID, err)
			http.Error(w, "Error deleting post", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Post deleted successfully"))
}
