package models

// ReactionType задает вид реакции на публикацию.
type ReactionType string

// Допустимые виды реакций (совпадают со значениями в колонке likes.type).
const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Valid сообщает, является ли значение допустимым видом реакции.
func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// ReactionCounts содержит агрегированные счетчики реакций публикации.
// Возвращается в ответе на POST /posts/{id}/like и /dislike.
type ReactionCounts struct {
	Likes    int64 `db:"likes" json:"likes"`
	Dislikes int64 `db:"dislikes" json:"dislikes"`
}
