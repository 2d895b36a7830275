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

// ReactionService определяет интерфейс сервиса реакций, используемый обработчиком.
type ReactionService interface {
	React(postID, userID int64, kind models.ReactionType) (*models.ReactionCounts, error)
}

// ReactionHandler обрабатывает HTTP-запросы лайков и дизлайков.
type ReactionHandler struct {
	service ReactionService // Зависимость от интерфейса, а не конкретной реализации
}

// NewReactionHandler создает новый экземпляр ReactionHandler.
func NewReactionHandler(s ReactionService) *ReactionHandler {
	return &ReactionHandler{service: s}
}

// Like обрабатывает POST запрос на лайк публикации.
func (h *ReactionHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, models.ReactionLike)
}

// Dislike обрабатывает POST запрос на дизлайк публикации.
func (h *ReactionHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, models.ReactionDislike)
}

// react сохраняет реакцию и возвращает свежие счетчики публикации.
// Повторная реакция с другим видом перезаписывает предыдущую.
func (h *ReactionHandler) react(w http.ResponseWriter, r *http.Request, kind models.ReactionType) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[ReactionHandler] Не удалось получить userID из контекста")
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	postID, err := parseIDParam(r, "postID")
	if err != nil {
		log.Printf("[ReactionHandler] Неверный ID публикации: %v", err)
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	counts, err := h.service.React(postID, userID, kind)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReaction) {
			http.Error(w, "Invalid reaction type", http.StatusBadRequest)
		} else {
			log.Printf("[ReactionHandler] Ошибка сервиса при реакции '%s' на публикацию %d: %v", kind, postID, err)
			http.Error(w, "Error reacting to post", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(counts); err != nil {
		log.Printf("[ReactionHandler] Ошибка кодирования ответа: %v", err)
	}
}
