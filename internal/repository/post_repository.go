package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/maynagashev/minitwitter/internal/models"
)

// PostRepository определяет методы для работы с публикациями в хранилище.
type PostRepository interface {
	CreatePost(ctx context.Context, userID int64, content string) (int64, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	UpdatePost(ctx context.Context, postID, userID int64, content string) error
	DeletePost(ctx context.Context, postID, userID int64) error
}

// postgresPostRepository реализует PostRepository для PostgreSQL.
type postgresPostRepository struct {
	db *sqlx.DB
}

// NewPostgresPostRepository создает новый экземпляр репозитория публикаций для PostgreSQL.
func NewPostgresPostRepository(db *sqlx.DB) PostRepository {
	return &postgresPostRepository{db: db}
}

// CreatePost создает новую публикацию от имени указанного пользователя.
// Возвращает ID созданной публикации или ошибку.
func (r *postgresPostRepository) CreatePost(ctx context.Context, userID int64, content string) (int64, error) {
	query := `INSERT INTO tweets (user_id, content) VALUES ($1, $2) RETURNING id`
	var postID int64

	err := r.db.QueryRowxContext(ctx, query, userID, content).Scan(&postID)
	if err != nil {
		log.Printf("[PostRepo] Ошибка при создании публикации пользователя %d: %v", userID, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на создание публикации: %w", err)
	}

	log.Printf("[PostRepo] Публикация %d пользователя %d успешно создана", postID, userID)
	return postID, nil
}

// ListPosts возвращает все публикации, новые первыми, вместе с именем автора
// и счетчиками реакций.
func (r *postgresPostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	query := `SELECT t.id, t.user_id, u.username, t.content, t.created_at,
	                 COUNT(l.id) FILTER (WHERE l.type = 'like') AS likes,
	                 COUNT(l.id) FILTER (WHERE l.type = 'dislike') AS dislikes
	          FROM tweets t
	          JOIN users u ON u.id = t.user_id
	          LEFT JOIN likes l ON l.post_id = t.id
	          GROUP BY t.id, t.user_id, u.username, t.content, t.created_at
	          ORDER BY t.created_at DESC, t.id DESC`
	posts := []models.Post{}

	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		log.Printf("[PostRepo] Ошибка при получении списка публикаций: %v", err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение публикаций: %w", err)
	}

	log.Printf("[PostRepo] Получено публикаций: %d", len(posts))
	return posts, nil
}

// UpdatePost изменяет содержимое публикации. Запрос обусловлен и ID публикации,
// и ID владельца, поэтому "не найдено" и "чужая публикация" неразличимы:
// в обоих случаях возвращается ErrPostNotFound.
func (r *postgresPostRepository) UpdatePost(ctx context.Context, postID, userID int64, content string) error {
	query := `UPDATE tweets SET content = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.ExecContext(ctx, query, content, postID, userID)
	if err != nil {
		log.Printf("[PostRepo] Ошибка при обновлении публикации %d: %v", postID, err)
		return fmt.Errorf("ошибка выполнения запроса на обновление публикации: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения количества обновленных строк: %w", err)
	}
	if rows == 0 {
		log.Printf("[PostRepo] Публикация %d не найдена или принадлежит не пользователю %d", postID, userID)
		return ErrPostNotFound
	}

	log.Printf("[PostRepo] Публикация %d пользователя %d успешно обновлена", postID, userID)
	return nil
}

// DeletePost удаляет публикацию вместе с комментариями и реакциями
// (каскад на уровне схемы). Условие владения то же, что и в UpdatePost.
func (r *postgresPostRepository) DeletePost(ctx context.Context, postID, userID int64) error {
	query := `DELETE FROM tweets WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		log.Printf("[PostRepo] Ошибка при удалении публикации %d: %v", postID, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление публикации: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения количества удаленных строк: %w", err)
	}
	if rows == 0 {
		log.Printf("[PostRepo] Публикация %d не найдена или принадлежит не пользователю %d", postID, userID)
		return ErrPostNotFound
	}

	log.Printf("[PostRepo] Публикация %d пользователя %d успешно удалена", postID, userID)
	return nil
}

// Кастомная ошибка репозитория.
var (
	ErrPostNotFound = errors.New("публикация не найдена или принадлежит другому пользователю")
)
