package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/maynagashev/minitwitter/internal/models"
)

// CommentRepository определяет методы для работы с комментариями в хранилище.
type CommentRepository interface {
	CreateComment(ctx context.Context, postID, userID int64, content string) (int64, error)
	ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	UpdateComment(ctx context.Context, commentID, postID, userID int64, content string) error
	DeleteComment(ctx context.Context, commentID, postID, userID int64) error
}

// postgresCommentRepository реализует CommentRepository для PostgreSQL.
type postgresCommentRepository struct {
	db *sqlx.DB
}

// NewPostgresCommentRepository создает новый экземпляр репозитория комментариев для PostgreSQL.
func NewPostgresCommentRepository(db *sqlx.DB) CommentRepository {
	return &postgresCommentRepository{db: db}
}

// CreateComment создает комментарий к публикации от имени указанного пользователя.
// Возвращает ID созданного комментария или ошибку.
func (r *postgresCommentRepository) CreateComment(ctx context.Context, postID, userID int64, content string) (int64, error) {
	query := `INSERT INTO comments (tweet_id, user_id, content) VALUES ($1, $2, $3) RETURNING id`
	var commentID int64

	err := r.db.QueryRowxContext(ctx, query, postID, userID, content).Scan(&commentID)
	if err != nil {
		log.Printf("[CommentRepo] Ошибка при создании комментария к публикации %d: %v", postID, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на создание комментария: %w", err)
	}

	log.Printf("[CommentRepo] Комментарий %d к публикации %d успешно создан", commentID, postID)
	return commentID, nil
}

// ListCommentsByPost возвращает комментарии публикации, старые первыми,
// вместе с именем автора.
func (r *postgresCommentRepository) ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `SELECT c.id, c.tweet_id, c.user_id, u.username, c.content, c.created_at
	          FROM comments c
	          JOIN users u ON u.id = c.user_id
	          WHERE c.tweet_id = $1
	          ORDER BY c.created_at ASC, c.id ASC`
	comments := []models.Comment{}

	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		log.Printf("[CommentRepo] Ошибка при получении комментариев публикации %d: %v", postID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение комментариев: %w", err)
	}

	log.Printf("[CommentRepo] Получено комментариев к публикации %d: %d", postID, len(comments))
	return comments, nil
}

// UpdateComment изменяет содержимое комментария. Запрос обусловлен ID комментария,
// ID публикации и ID владельца, поэтому "не найдено" и "чужой комментарий"
// неразличимы: в обоих случаях возвращается ErrCommentNotFound.
func (r *postgresCommentRepository) UpdateComment(ctx context.Context, commentID, postID, userID int64, content string) error {
	query := `UPDATE comments SET content = $1 WHERE id = $2 AND tweet_id = $3 AND user_id = $4`

	result, err := r.db.ExecContext(ctx, query, content, commentID, postID, userID)
	if err != nil {
		log.Printf("[CommentRepo] Ошибка при обновлении комментария %d: %v", commentID, err)
		return fmt.Errorf("ошибка выполнения запроса на обновление комментария: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения количества обновленных строк: %w", err)
	}
	if rows == 0 {
		log.Printf("[CommentRepo] Комментарий %d не найден или принадлежит не пользователю %d", commentID, userID)
		return ErrCommentNotFound
	}

	log.Printf("[CommentRepo] Комментарий %d пользователя %d успешно обновлен", commentID, userID)
	return nil
}

// DeleteComment удаляет комментарий. Условие владения то же, что и в UpdateComment.
func (r *postgresCommentRepository) DeleteComment(ctx context.Context, commentID, postID, userID int64) error {
	query := `DELETE FROM comments WHERE id = $1 AND tweet_id = $2 AND user_id = $3`

	result, err := r.db.ExecContext(ctx, query, commentID, postID, userID)
	if err != nil {
		log.Printf("[CommentRepo] Ошибка при удалении комментария %d: %v", commentID, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление комментария: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения количества удаленных строк: %w", err)
	}
	if rows == 0 {
		log.Printf("[CommentRepo] Комментарий %d не найден или принадлежит не пользователю %d", commentID, userID)
		return ErrCommentNotFound
	}

	log.Printf("[CommentRepo] Комментарий %d пользователя %d успешно удален", commentID, userID)
	return nil
}

// Кастомная ошибка репозитория.
var (
	ErrCommentNotFound = errors.New("комментарий не найден или принадлежит другому пользователю")
)
