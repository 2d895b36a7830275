package services

import (
	"context"
	"errors"
	"log"

	"github.com/maynagashev/minitwitter/internal/models"
	"github.com/maynagashev/minitwitter/internal/repository"
)

// ReactionService определяет интерфейс для сервиса реакций (лайки/дизлайки).
type ReactionService interface {
	React(postID, userID int64, kind models.ReactionType) (*models.ReactionCounts, error)
}

// reactionService реализует логику работы с реакциями.
var _ ReactionService = (*reactionService)(nil) // Проверка соответствия интерфейсу

type reactionService struct {
	reactionRepo repository.ReactionRepository // Зависимость от репозитория реакций
}

// NewReactionService создает новый экземпляр сервиса реакций.
func NewReactionService(reactionRepo repository.ReactionRepository) ReactionService {
	return &reactionService{reactionRepo: reactionRepo}
}

// React сохраняет реакцию пользователя на публикацию и возвращает свежие
// счетчики. Повторная реакция перезаписывает вид, а не добавляет новую.
func (s *reactionService) React(postID, userID int64, kind models.ReactionType) (*models.ReactionCounts, error) {
	ctx := context.Background()

	if !kind.Valid() {
		log.Printf("[ReactionService] Недопустимый вид реакции: %s", kind)
		return nil, ErrInvalidReaction
	}

	if err := s.reactionRepo.SetReaction(ctx, postID, userID, kind); err != nil {
		log.Printf("[ReactionService] Ошибка репозитория при сохранении реакции на публикацию %d: %v", postID, err)
		return nil, errors.New("внутренняя ошибка сервера при сохранении реакции")
	}

	counts, err := s.reactionRepo.GetReactionCounts(ctx, postID)
	if err != nil {
		log.Printf("[ReactionService] Ошибка репозитория при подсчете реакций публикации %d: %v", postID, err)
		return nil, errors.New("внутренняя ошибка сервера при подсчете реакций")
	}

	log.Printf("[ReactionService] Реакция '%s' пользователя %d на публикацию %d учтена", kind, userID, postID)
	return counts, nil
}

// Кастомная ошибка сервиса.
var (
	ErrInvalidReaction = errors.New("недопустимый вид реакции")
)
