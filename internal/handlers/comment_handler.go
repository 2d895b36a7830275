package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/maynagashev/minitwitter/internal/middleware"
	"github.com/maynagashev/minitwitter/internal/models"
	"github.com/maynagashev/minitwitter/internal/services"
)

// CommentService определяет интерфейс сервиса комментариев, используемый обработчиком.
type CommentService interface {
	CreateComment(postID, userID int64, content string) (int64, error)
	ListComments(postID int64) ([]models.Comment, error)
	UpdateComment(commentID, postID, userID int64, content string) error
	DeleteComment(commentID, postID, userID int64) error
}

// CommentHandler обрабатывает HTTP-запросы, связанные с комментариями.
type CommentHandler struct {
	service CommentService // Зависимость от интерфейса, а не конкретной реализации
}

// NewCommentHandler создает новый экземпляр CommentHandler.
func NewCommentHandler(s CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// List обрабатывает GET запрос на получение комментариев публикации (старые первыми).
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "postID")
	if err != nil {
		log.Printf("[CommentHandler:List] Неверный ID публикации: %v", err)
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := h.service.ListComments(postID)
	if err != nil {
		log.Printf("[CommentHandler:List] Ошибка сервиса при получении комментариев публикации %d: %v", postID, err)
		http.Error(w, "Error loading comments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(comments); err != nil {
		log.Printf("[CommentHandler:List] Ошибка кодирования ответа: %v", err)
	}
}

// Create обрабатывает POST запрос на создание комментария.
// Владелец комментария берется из контекста запроса, а не из тела.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[CommentHandler:Create] Не удалось получить userID из контекста")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	postID, err := parseIDParam(r, "postID")
	if err != nil {
		log.Printf("[CommentHandler:Create] Неверный ID публикации: %v", err)
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var req models.ContentRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[CommentHandler:Create] Ошибка декодирования запроса: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		log.Printf("[CommentHandler:Create] Пустое содержимое комментария от пользователя %d", userID)
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	commentID, err := h.service.CreateComment(postID, userID, req.Content)
	if err != nil {
		log.Printf("[CommentHandler:Create] Ошибка сервиса при создании комментария: %v", err)
		http.Error(w, "Error creating comment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(models.CreateCommentResponse{CommentID: commentID}); err != nil {
		log.Printf("[CommentHandler:Create] Ошибка кодирования ответа: %v", err)
	}
}

// Update обрабатывает PUT запрос на изменение комментария.
// "Не найдено" и "чужой комментарий" сознательно неразличимы в ответе.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[CommentHandler:Update] Не удалось получить userID из контекста")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	postID, err := parseIDParam(r, "postID")
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	commentID, err := parseIDParam(r, "commentID")
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	var req models.ContentRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[CommentHandler:Update] Ошибка декодирования запроса: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	err = h.service.UpdateComment(commentID, postID, userID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			http.Error(w, "Comment not found or unauthorized", http.StatusNotFound)
		} else {
			log.Printf("[CommentHandler:Update] Ошибка сервиса при обновлении комментария %d: %v", commentID, err)
			http.Error(w, "Error updating comment", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Comment updated successfully"))
}

// Delete обрабатывает DELETE запрос на удаление комментария.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[CommentHandler:Delete] Не удалось получить userID из контекста")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	postID, err := parseIDParam(r, "postID")
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	commentID, err := parseIDParam(r, "commentID")
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	err = h.service.DeleteComment(commentID, postID, userID)
	if err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			http.Error(w, "Comment not found or unauthorized", http.StatusNotFound)
		} else {
			log.Printf("[CommentHandler:Delete] Ошибка сервиса при удалении комментария %d: %v", commentID, err)
			http.Error(w, "Error deleting comment", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Comment deleted successfully"))
}
