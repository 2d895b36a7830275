package models

import "time"

// Comment представляет комментарий к публикации.
// Поле Username заполняется из JOIN-запроса при выборке.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"tweet_id" json:"post_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
