package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/maynagashev/minitwitter/internal/models"
	"github.com/maynagashev/minitwitter/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Вспомогательная функция для создания мока БД и репозитория.
func setupReactionRepoMock(t *testing.T) (repository.ReactionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := repository.NewPostgresReactionRepository(sqlxDB)
	return repo, mock
}

func TestSetReaction(t *testing.T) {
	// Достаточно отличительного фрагмента запроса
	query := regexp.QuoteMeta(`INSERT INTO likes (post_id, user_id, type) VALUES ($1, $2, $3)`)

	t.Run("Успешное сохранение лайка", func(t *testing.T) {
		repo, mock := setupReactionRepoMock(t)
		mock.ExpectExec(query).WithArgs(int64(3), int64(1), models.ReactionLike).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetReaction(context.Background(), 3, 1, models.ReactionLike)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Перезапись реакции на дизлайк", func(t *testing.T) {
		repo, mock := setupReactionRepoMock(t)
		// ON CONFLICT DO UPDATE: повторная реакция также затрагивает одну строку
		mock.ExpectExec(query).WithArgs(int64(3), int64(1), models.ReactionDislike).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetReaction(context.Background(), 3, 1, models.ReactionDislike)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		repo, mock := setupReactionRepoMock(t)
		mock.ExpectExec(query).WithArgs(int64(3), int64(1), models.ReactionLike).
			WillReturnError(errors.New("database error"))

		err := repo.SetReaction(context.Background(), 3, 1, models.ReactionLike)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка выполнения запроса")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetReactionCounts(t *testing.T) {
	// Достаточно отличительного фрагмента запроса
	query := regexp.QuoteMeta(`FROM likes WHERE post_id = $1`)

	t.Run("Успешный подсчет", func(t *testing.T) {
		repo, mock := setupReactionRepoMock(t)
		rows := sqlmock.NewRows([]string{"likes", "dislikes"}).AddRow(int64(5), int64(2))
		mock.ExpectQuery(query).WithArgs(int64(3)).WillReturnRows(rows)

		counts, err := repo.GetReactionCounts(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, int64(5), counts.Likes)
		assert.Equal(t, int64(2), counts.Dislikes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Публикация без реакций", func(t *testing.T) {
		repo, mock := setupReactionRepoMock(t)
		rows := sqlmock.NewRows([]string{"likes", "dislikes"}).AddRow(int64(0), int64(0))
		mock.ExpectQuery(query).WithArgs(int64(3)).WillReturnRows(rows)

		counts, err := repo.GetReactionCounts(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, int64(0), counts.Likes)
		assert.Equal(t, int64(0), counts.Dislikes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		repo, mock := setupReactionRepoMock(t)
		mock.ExpectQuery(query).WithArgs(int64(3)).WillReturnError(errors.New("database error"))

		counts, err := repo.GetReactionCounts(context.Background(), 3)

		require.Error(t, err)
		assert.Nil(t, counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
