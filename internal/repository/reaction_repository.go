package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/maynagashev/minitwitter/internal/models"
)

// ReactionRepository определяет методы для работы с реакциями (лайки/дизлайки).
type ReactionRepository interface {
	SetReaction(ctx context.Context, postID, userID int64, kind models.ReactionType) error
	GetReactionCounts(ctx context.Context, postID int64) (*models.ReactionCounts, error)
}

// postgresReactionRepository реализует ReactionRepository для PostgreSQL.
type postgresReactionRepository struct {
	db *sqlx.DB
}

// NewPostgresReactionRepository создает новый экземпляр репозитория реакций для PostgreSQL.
func NewPostgresReactionRepository(db *sqlx.DB) ReactionRepository {
	return &postgresReactionRepository{db: db}
}

// SetReaction сохраняет реакцию пользователя на публикацию.
// На пару (публикация, пользователь) приходится не более одной реакции:
// повторная реакция перезаписывает вид, а не добавляет строку.
func (r *postgresReactionRepository) SetReaction(ctx context.Context, postID, userID int64, kind models.ReactionType) error {
	query := `INSERT INTO likes (post_id, user_id, type) VALUES ($1, $2, $3)
	          ON CONFLICT (post_id, user_id) DO UPDATE SET type = EXCLUDED.type`

	_, err := r.db.ExecContext(ctx, query, postID, userID, kind)
	if err != nil {
		log.Printf("[ReactionRepo] Ошибка при сохранении реакции '%s' пользователя %d на публикацию %d: %v",
			kind, userID, postID, err)
		return fmt.Errorf("ошибка выполнения запроса на сохранение реакции: %w", err)
	}

	log.Printf("[ReactionRepo] Реакция '%s' пользователя %d на публикацию %d сохранена", kind, userID, postID)
	return nil
}

// GetReactionCounts возвращает количество лайков и дизлайков публикации.
func (r *postgresReactionRepository) GetReactionCounts(ctx context.Context, postID int64) (*models.ReactionCounts, error) {
	query := `SELECT COUNT(*) FILTER (WHERE type = 'like') AS likes,
	                 COUNT(*) FILTER (WHERE type = 'dislike') AS dislikes
	          FROM likes WHERE post_id = $1`
	var counts models.ReactionCounts

	err := r.db.GetContext(ctx, &counts, query, postID)
	if err != nil {
		log.Printf("[ReactionRepo] Ошибка при подсчете реакций публикации %d: %v", postID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на подсчет реакций: %w", err)
	}

	log.Printf("[ReactionRepo] Публикация %d: лайков %d, дизлайков %d", postID, counts.Likes, counts.Dislikes)
	return &counts, nil
}
