package services

import (
	"context"
	"errors"
	"log"

	"github.com/maynagashev/minitwitter/internal/models"
	"github.com/maynagashev/minitwitter/internal/repository"
)

// PostService определяет интерфейс для сервиса работы с публикациями.
type PostService interface {
	CreatePost(userID int64, content string) (int64, error)
	ListPosts() ([]models.Post, error)
	UpdatePost(postID, userID int64, content string) error
	DeletePost(postID, userID int64) error
}

// postService реализует логику работы с публикациями.
var _ PostService = (*postService)(nil) // Проверка соответствия интерфейсу

type postService struct {
	postRepo repository.PostRepository // Зависимость от репозитория публикаций
}

// NewPostService создает новый экземпляр сервиса публикаций.
func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

// CreatePost создает публикацию от имени пользователя.
// Владелец всегда берется из аутентифицированной личности, а не из тела запроса.
func (s *postService) CreatePost(userID int64, content string) (int64, error) {
	ctx := context.Background()

	postID, err := s.postRepo.CreatePost(ctx, userID, content)
	if err != nil {
		log.Printf("[PostService] Ошибка репозитория при создании публикации пользователя %d: %v", userID, err)
		return 0, errors.New("внутренняя ошибка сервера при создании публикации")
	}

	log.Printf("[PostService] Публикация %d пользователя %d создана", postID, userID)
	return postID, nil
}

// ListPosts возвращает все публикации, новые первыми.
func (s *postService) ListPosts() ([]models.Post, error) {
	ctx := context.Background()

	posts, err := s.postRepo.ListPosts(ctx)
	if err != nil {
		log.Printf("[PostService] Ошибка репозитория при получении публикаций: %v", err)
		return nil, errors.New("внутренняя ошибка сервера при получении публикаций")
	}

	return posts, nil
}

// UpdatePost изменяет публикацию, если она принадлежит пользователю.
// Возвращает ErrPostNotFound, когда публикации нет или она чужая.
func (s *postService) UpdatePost(postID, userID int64, content string) error {
	ctx := context.Background()

	err := s.postRepo.UpdatePost(ctx, postID, userID, content)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			log.Printf("[PostService] Публикация %d недоступна пользователю %d для обновления", postID, userID)
			return ErrPostNotFound // Возвращаем ошибку сервисного слоя
		}
		log.Printf("[PostService] Ошибка репозитория при обновлении публикации %d: %v", postID, err)
		return errors.New("внутренняя ошибка сервера при обновлении публикации")
	}

	return nil
}

// DeletePost удаляет публикацию, если она принадлежит пользователю.
// Возвращает ErrPostNotFound, когда публикации нет или она чужая.
func (s *postService) DeletePost(postID, userID int64) error {
	ctx := context.Background()

	err := s.postRepo.DeletePost(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			log.Printf("[PostService] Публикация %d недоступна пользователю %d для удаления", postID, userID)
			return ErrPostNotFound
		}
		log.Printf("[PostService] Ошибка репозитория при удалении публикации %d: %v", postID, err)
		return errors.New("внутренняя ошибка сервера при удалении публикации")
	}

	return nil
}

// Кастомная ошибка сервиса. Сознательно не различает "не найдено" и
// "принадлежит другому пользователю".
var (
	ErrPostNotFound = errors.New("публикация не найдена или недоступна")
)
