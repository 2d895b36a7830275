package services

import (
	"context"
	"errors"
	"log"

	"github.com/maynagashev/minitwitter/internal/models"
	"github.com/maynagashev/minitwitter/internal/repository"
)

// CommentService определяет интерфейс для сервиса работы с комментариями.
type CommentService interface {
	CreateComment(postID, userID int64, content string) (int64, error)
	ListComments(postID int64) ([]models.Comment, error)
	UpdateComment(commentID, postID, userID int64, content string) error
	DeleteComment(commentID, postID, userID int64) error
}

// commentService реализует логику работы с комментариями.
var _ CommentService = (*commentService)(nil) // Проверка соответствия интерфейсу

type commentService struct {
	commentRepo repository.CommentRepository // Зависимость от репозитория комментариев
}

// NewCommentService создает новый экземпляр сервиса комментариев.
func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

// CreateComment создает комментарий к публикации от имени пользователя.
func (s *commentService) CreateComment(postID, userID int64, content string) (int64, error) {
	ctx := context.Background()

	commentID, err := s.commentRepo.CreateComment(ctx, postID, userID, content)
	if err != nil {
		log.Printf("[CommentService] Ошибка репозитория при создании комментария к публикации %d: %v", postID, err)
		return 0, errors.New("внутренняя ошибка сервера при создании комментария")
	}

	log.Printf("[CommentService] Комментарий %d к публикации %d создан", commentID, postID)
	return commentID, nil
}

// ListComments возвращает комментарии публикации, старые первыми.
func (s *commentService) ListComments(postID int64) ([]models.Comment, error) {
	ctx := context.Background()

	comments, err := s.commentRepo.ListCommentsByPost(ctx, postID)
	if err != nil {
		log.Printf("[CommentService] Ошибка репозитория при получении комментариев публикации %d: %v", postID, err)
		return nil, errors.New("внутренняя ошибка сервера при получении комментариев")
	}

	return comments, nil
}

// UpdateComment изменяет комментарий, если он принадлежит пользователю.
// Возвращает ErrCommentNotFound, когда комментария нет или он чужой.
func (s *commentService) UpdateComment(commentID, postID, userID int64, content string) error {
	ctx := context.Background()

	err := s.commentRepo.UpdateComment(ctx, commentID, postID, userID, content)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			log.Printf("[CommentService] Комментарий %d недоступен пользователю %d для обновления", commentID, userID)
			return ErrCommentNotFound // Возвращаем ошибку сервисного слоя
		}
		log.Printf("[CommentService] Ошибка репозитория при обновлении комментария %d: %v", commentID, err)
		return errors.New("внутренняя ошибка сервера при обновлении комментария")
	}

	return nil
}

// DeleteComment удаляет комментарий, если он принадлежит пользователю.
// Возвращает ErrCommentNotFound, когда комментария нет или он чужой.
func (s *commentService) DeleteComment(commentID, postID, userID int64) error {
	ctx := context.Background()

	err := s.commentRepo.DeleteComment(ctx, commentID, postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			log.Printf("[CommentService] Комментарий %d недоступен пользователю %d для удаления", commentID, userID)
			return ErrCommentNotFound
		}
		log.Printf("[CommentService] Ошибка репозитория при удалении комментария %d: %v", commentID, err)
		return errors.New("внутренняя ошибка сервера при удалении комментария")
	}

	return nil
}

// Кастомная ошибка сервиса. Сознательно не различает "не найдено" и
// "принадлежит другому пользователю".
var (
	ErrCommentNotFound = errors.New("комментарий не найден или недоступен")
)
