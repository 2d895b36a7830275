package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// DDL-выражения схемы. Выполняются при старте сервера в указанном порядке,
// так как таблицы связаны внешними ключами.
const (
	usersTable = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username VARCHAR(255) NOT NULL UNIQUE,
    password VARCHAR(255) NOT NULL
)`

	tweetsTable = `
CREATE TABLE IF NOT EXISTS tweets (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users (id),
    content VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

	commentsTable = `
CREATE TABLE IF NOT EXISTS comments (
    id BIGSERIAL PRIMARY KEY,
    tweet_id BIGINT NOT NULL REFERENCES tweets (id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users (id),
    content TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

	likesTable = `
CREATE TABLE IF NOT EXISTS likes (
    id BIGSERIAL PRIMARY KEY,
    post_id BIGINT NOT NULL REFERENCES tweets (id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users (id),
    type VARCHAR(10) NOT NULL CHECK (type IN ('like', 'dislike')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (post_id, user_id)
)`
)

// Migrate создает таблицы приложения, если они еще не существуют.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	log.Println("Инициализация схемы БД...")

	statements := []string{usersTable, tweetsTable, commentsTable, likesTable}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ошибка выполнения DDL-запроса: %w", err)
		}
	}

	log.Println("Схема БД успешно инициализирована.")
	return nil
}
