package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/maynagashev/minitwitter/internal/handlers"
	"github.com/maynagashev/minitwitter/internal/middleware"
	"github.com/maynagashev/minitwitter/internal/models"
	"github.com/maynagashev/minitwitter/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock PostService --- //

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(userID int64, content string) (int64, error) {
	args := m.Called(userID, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostService) ListPosts() ([]models.Post, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(postID, userID int64, content string) error {
	args := m.Called(postID, userID, content)
	return args.Error(0)
}

func (m *MockPostService) DeletePost(postID, userID int64) error {
	args := m.Called(postID, userID)
	return args.Error(0)
}

// newAuthRequest создает запрос с userID в контексте - так его видят
// обработчики после middleware аутентификации.
func newAuthRequest(method, target string, body io.Reader, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

// newPostsRouter монтирует обработчик публикаций на маршруты, совпадающие
// с боевыми, чтобы chi разбирал URL-параметры.
func newPostsRouter(h *handlers.PostHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/posts", h.List)
	r.Post("/posts", h.Create)
	r.Put("/posts/{postID}", h.Update)
	r.Delete("/posts/{postID}", h.Delete)
	return r
}

// --- Tests --- //

func TestPostHandler_List(t *testing.T) {
	expectedPosts := []models.Post{
		{ID: 2, UserID: 1, Username: "alice", Content: "второй", Likes: 3, Dislikes: 1, CreatedAt: time.Now()},
		{ID: 1, UserID: 2, Username: "bob", Content: "первый", CreatedAt: time.Now().Add(-time.Minute)},
	}

	t.Run("Успешное получение ленты", func(t *testing.T) {
		mockService := new(MockPostService)
		mockService.On("ListPosts").Return(expectedPosts, nil).Once()

		router := newPostsRouter(handlers.NewPostHandler(mockService))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, newAuthRequest(http.MethodGet, "/posts", http.NoBody, 1))

		assert.Equal(t, http.StatusOK, rr.Code)
		var posts []models.Post
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
		require.Len(t, posts, 2)
		assert.Equal(t, expectedPosts[0].ID, posts[0].ID)
		assert.Equal(t, expectedPosts[0].Username, posts[0].Username)
		assert.Equal(t, expectedPosts[0].Likes, posts[0].Likes)
		mockService.AssertExpectations(t)
	})

	t.Run("Ошибка сервиса", func(t *testing.T) {
		mockService := new(MockPostService)
		mockService.On("ListPosts").Return(nil, errors.New("some service error")).Once()

		router := newPostsRouter(handlers.NewPostHandler(mockService))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, newAuthRequest(http.MethodGet, "/posts", http.NoBody, 1))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Error loading posts")
		mockService.AssertExpectations(t)
	})
}

func TestPostHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		mockSetup      func(mockService *MockPostService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Успешное создание",
			requestBody: `{"content": "hello world"}`,
			mockSetup: func(mockService *MockPostService) {
				mockService.On("CreatePost", int64(1), "hello world").
					Return(int64(10), nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"postId":10`,
		},
		{
			name:           "Невалидный JSON",
			requestBody:    `{"content":`,
			mockSetup:      func(_ *MockPostService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request body",
		},
		{
			name:           "Пустое содержимое",
			requestBody:    `{"content": ""}`,
			mockSetup:      func(_ *MockPostService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Content is required",
		},
		{
			name:        "Ошибка сервиса",
			requestBody: `{"content": "hello world"}`,
			mockSetup: func(mockService *MockPostService) {
				mockService.On("CreatePost", int64(1), "hello world").
					Return(int64(0), errors.New("some service error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Error creating post",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPostService)
			tt.mockSetup(mockService)

			router := newPostsRouter(handlers.NewPostHandler(mockService))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, newAuthRequest(http.MethodPost, "/posts", strings.NewReader(tt.requestBody), 1))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

// Без userID в контексте обработчик отвечает 500 - до него такой
// запрос в боевой конфигурации не доходит.
func TestPostHandler_Create_NoIdentity(t *testing.T) {
	mockService := new(MockPostService)
	router := newPostsRouter(handlers.NewPostHandler(mockService))

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"content": "hi"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	mockService.AssertNotCalled(t, "CreatePost")
}

func TestPostHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		requestBody    string
		mockSetup      func(mockService *MockPostService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Успешное обновление",
			target:      "/posts/5",
			requestBody: `{"content": "edited"}`,
			mockSetup: func(mockService *MockPostService) {
				mockService.On("UpdatePost", int64(5), int64(1), "edited").Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Post updated successfully",
		},
		{
			name:           "Нечисловой ID публикации",
			target:         "/posts/abc",
			requestBody:    `{"content": "edited"}`,
			mockSetup:      func(_ *MockPostService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid post ID",
		},
		{
			name:           "Отрицательный ID публикации",
			target:         "/posts/-5",
			requestBody:    `{"content": "edited"}`,
			mockSetup:      func(_ *MockPostService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid post ID",
		},
		{
			name:           "Пустое содержимое",
			target:         "/posts/5",
			requestBody:    `{"content": ""}`,
			mockSetup:      func(_ *MockPostService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Content is required",
		},
		{
			name:        "Публикация не найдена или чужая",
			target:      "/posts/5",
			requestBody: `{"content": "edited"}`,
			mockSetup: func(mockService *MockPostService) {
				mockService.On("UpdatePost", int64(5), int64(1), "edited").
					Return(services.ErrPostNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Post not found or unauthorized",
		},
		{
			name:        "Ошибка сервиса",
			target:      "/posts/5",
			requestBody: `{"content": "edited"}`,
			mockSetup: func(mockService *MockPostService) {
				mockService.On("UpdatePost", int64(5), int64(1), "edited").
					Return(errors.New("some service error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Error updating post",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPostService)
			tt.mockSetup(mockService)

			router := newPostsRouter(handlers.NewPostHandler(mockService))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, newAuthRequest(http.MethodPut, tt.target, strings.NewReader(tt.requestBody), 1))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

func TestPostHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		mockSetup      func(mockService *MockPostService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Успешное удаление",
			target: "/posts/5",
			mockSetup: func(mockService *MockPostService) {
				mockService.On("DeletePost", int64(5), int64(1)).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Post deleted successfully",
		},
		{
			name:           "Нулевой ID публикации",
			target:         "/posts/0",
			mockSetup:      func(_ *MockPostService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid post ID",
		},
		{
			name:   "Публикация не найдена или чужая",
			target: "/posts/5",
			mockSetup: func(mockService *MockPostService) {
				mockService.On("DeletePost", int64(5), int64(1)).
					Return(services.ErrPostNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Post not found or unauthorized",
		},
		{
			name:   "Ошибка сервиса",
			target: "/posts/5",
			mockSetup: func(mockService *MockPostService) {
				mockService.On("DeletePost", int64(5), int64(1)).
					Return(errors.New("some service error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Error deleting post",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPostService)
			tt.mockSetup(mockService)

			router := newPostsRouter(handlers.NewPostHandler(mockService))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, newAuthRequest(http.MethodDelete, tt.target, http.NoBody, 1))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
