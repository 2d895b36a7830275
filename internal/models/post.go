package models

import "time"

// Post представляет короткую публикацию пользователя (твит).
// Поля Username, Likes и Dislikes заполняются из JOIN-запроса при выборке
// ленты и не хранятся в таблице tweets.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Likes     int64     `db:"likes" json:"likes"`
	Dislikes  int64     `db:"dislikes" json:"dislikes"`
}
