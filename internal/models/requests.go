package models

// RegisterRequest представляет тело запроса на регистрацию.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest представляет тело запроса на вход.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse представляет тело ответа при успешном входе.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ContentRequest представляет тело запроса на создание или изменение
// публикации либо комментария.
type ContentRequest struct {
	Content string `json:"content"`
}

// CreatePostResponse представляет тело ответа при создании публикации.
type CreatePostResponse struct {
	PostID int64 `json:"postId"`
}

// CreateCommentResponse представляет тело ответа при создании комментария.
type CreateCommentResponse struct {
	CommentID int64 `json:"commentId"`
}
