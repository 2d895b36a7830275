package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/maynagashev/minitwitter/internal/handlers"
	appmiddleware "github.com/maynagashev/minitwitter/internal/middleware"
	"github.com/maynagashev/minitwitter/internal/repository"
	"github.com/maynagashev/minitwitter/internal/services"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 30 * time.Second
)

// Структура для хранения инициализированных зависимостей.
type dependencies struct {
	authService     services.AuthService // Используется и обработчиками, и middleware
	authHandler     *handlers.AuthHandler
	postHandler     *handlers.PostHandler
	commentHandler  *handlers.CommentHandler
	reactionHandler *handlers.ReactionHandler
}

// main - точка входа. Вызывает run и обрабатывает ошибку.
func main() {
	if err := run(); err != nil {
		log.Printf("Ошибка выполнения сервера: %v", err) // Используем Printf
		os.Exit(1)                                       // Выход с кодом ошибки
	}
}

// run содержит основную логику запуска сервера и возвращает ошибку.
func run() error {
	log.Println("Запуск сервера minitwitter...")

	cfg := parseFlags()
	if cfg.JWTSecret == defaultJWTSecret {
		log.Printf("ВНИМАНИЕ: используется секрет подписи JWT по умолчанию. "+
			"Задайте %s для любого окружения кроме локальной разработки!", envJWTSecret)
	}

	// Подключение к БД
	db, err := repository.NewPostgresDB(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("ошибка инициализации БД: %w", err)
	}
	// Отложенное закрытие соединения с БД
	// Это гарантированно выполнится при выходе из run()
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Ошибка закрытия соединения с БД: %v", closeErr)
		}
	}()

	// Инициализация схемы
	if err = repository.Migrate(context.Background(), db); err != nil {
		return fmt.Errorf("ошибка инициализации схемы БД: %w", err)
	}

	// Инициализация зависимостей
	deps := setupDependencies(db, cfg)

	// Настройка роутера
	r := setupRouter(deps, cfg.StaticDir)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	log.Printf("Запуск HTTP-сервера на порту %s...", cfg.Port)

	if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		// Возвращаем ошибку вместо Fatalf
		return fmt.Errorf("ошибка запуска HTTP-сервера: %w", err)
	}
	return nil // Успешное завершение run()
}

// setupDependencies инициализирует и возвращает все необходимые зависимости сервера.
func setupDependencies(db *sqlx.DB, cfg *config) *dependencies {
	// 1. Создание репозиториев
	userRepo := repository.NewPostgresUserRepository(db)
	postRepo := repository.NewPostgresPostRepository(db)
	commentRepo := repository.NewPostgresCommentRepository(db)
	reactionRepo := repository.NewPostgresReactionRepository(db)

	// 2. Создание сервисов. Секрет подписи передается явно из конфигурации.
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	postService := services.NewPostService(postRepo)
	commentService := services.NewCommentService(commentRepo)
	reactionService := services.NewReactionService(reactionRepo)

	// 3. Создание обработчиков
	return &dependencies{
		authService:     authService,
		authHandler:     handlers.NewAuthHandler(authService),
		postHandler:     handlers.NewPostHandler(postService),
		commentHandler:  handlers.NewCommentHandler(commentService),
		reactionHandler: handlers.NewReactionHandler(reactionService),
	}
}

// setupRouter настраивает и возвращает роутер chi.
func setupRouter(deps *dependencies, staticDir string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Все ответы отдаются с заголовками подавления кэширования
	r.Use(middleware.NoCache)

	// --- Маршруты --- //
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})

	// Публичные маршруты (регистрация, вход)
	r.Post("/register", deps.authHandler.Register)
	r.Post("/login", deps.authHandler.Login)

	// Приватные маршруты (требуют аутентификации)
	r.Group(func(r chi.Router) {
		// Применяем middleware аутентификации ко всей группе
		r.Use(appmiddleware.NewAuthenticator(deps.authService))

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", deps.postHandler.List)
			r.Post("/", deps.postHandler.Create)

			r.Route("/{postID}", func(r chi.Router) {
				r.Put("/", deps.postHandler.Update)
				r.Delete("/", deps.postHandler.Delete)
				r.Post("/like", deps.reactionHandler.Like)
				r.Post("/dislike", deps.reactionHandler.Dislike)

				r.Route("/comments", func(r chi.Router) {
					r.Get("/", deps.commentHandler.List)
					r.Post("/", deps.commentHandler.Create)
					r.Put("/{commentID}", deps.commentHandler.Update)
					r.Delete("/{commentID}", deps.commentHandler.Delete)
				})
			})
		})
	})

	// Статические файлы браузерного клиента
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))

	return r
}
