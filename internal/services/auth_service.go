package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/maynagashev/minitwitter/internal/models"
	"github.com/maynagashev/minitwitter/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService определяет интерфейс для сервиса аутентификации.
type AuthService interface {
	Register(username, password string) error
	Login(username, password string) (string, error) // Возвращает JWT токен или ошибку
	VerifyToken(tokenString string) (int64, string, error)
}

// Время жизни токена - 1 час.
const tokenTTL = time.Hour

// Структура для пользовательских данных в JWT (claims).
// Имена полей id/username совпадают с полезной нагрузкой исходного API.
type jwtClaims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Убедимся, что authService удовлетворяет интерфейсу AuthService.
var _ AuthService = (*authService)(nil)

type authService struct {
	userRepo  repository.UserRepository // Зависимость от репозитория пользователей
	jwtSecret []byte                    // Ключ подписи, передается из конфигурации при старте
}

// NewAuthService создает новый экземпляр сервиса аутентификации.
// Секрет подписи токенов передается явно из конфигурации сервера.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{userRepo: userRepo, jwtSecret: []byte(jwtSecret)}
}

// Register регистрирует нового пользователя.
func (s *authService) Register(username, password string) error {
	ctx := context.Background() // Используем фоновый контекст для операций сервиса

	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[AuthService] Ошибка хеширования пароля для '%s': %v", username, err)
		return errors.New("внутренняя ошибка сервера при хешировании пароля")
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	// Создаем пользователя через репозиторий
	_, err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			log.Printf("[AuthService] Попытка регистрации с занятым именем: %s", username)
			return ErrUsernameTaken // Возвращаем ошибку слоя сервиса
		}
		log.Printf("[AuthService] Непредвиденная ошибка репозитория при регистрации '%s': %v", username, err)
		return errors.New("внутренняя ошибка сервера при создании пользователя")
	}

	log.Printf("[AuthService] Пользователь '%s' успешно зарегистрирован", username)
	return nil
}

// Login аутентифицирует пользователя и возвращает JWT токен.
// Несуществующий пользователь и неверный пароль различаются: API отдает
// на них разные статусы (404 и 401).
func (s *authService) Login(username, password string) (string, error) {
	ctx := context.Background()

	// Получаем пользователя по имени пользователя
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Printf("[AuthService] Попытка входа несуществующего пользователя: %s", username)
			return "", ErrUserNotFound
		}
		log.Printf("[AuthService] Ошибка репозитория при поиске '%s': %v", username, err)
		return "", errors.New("внутренняя ошибка сервера при поиске пользователя")
	}

	// Сравниваем предоставленный пароль с хешем из базы данных
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		// Ошибка сравнения означает неверный пароль (или другую проблему bcrypt)
		log.Printf("[AuthService] Неверный пароль для пользователя: %s", username)
		return "", ErrInvalidCredentials
	}

	// Генерируем JWT токен
	token, err := s.generateJWT(user.ID, user.Username)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации JWT для '%s': %v", username, err)
		return "", errors.New("внутренняя ошибка сервера при генерации токена")
	}

	log.Printf("[AuthService] Пользователь '%s' успешно аутентифицирован", username)
	return token, nil
}

// VerifyToken проверяет подпись и срок действия токена.
// Возвращает ID и имя пользователя из полезной нагрузки либо ошибку:
// ErrTokenExpired для истекшего токена, ErrTokenInvalid для всех остальных
// проблем (неверная подпись, мусор вместо токена и т.д.).
func (s *authService) VerifyToken(tokenString string) (int64, string, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Убеждаемся, что метод подписи - HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Printf("[AuthService] Предоставлен истекший токен")
			return 0, "", ErrTokenExpired
		}
		log.Printf("[AuthService] Ошибка парсинга/валидации токена: %v", err)
		return 0, "", ErrTokenInvalid
	}
	if !token.Valid {
		log.Printf("[AuthService] Предоставлен невалидный токен")
		return 0, "", ErrTokenInvalid
	}

	return claims.UserID, claims.Username, nil
}

// generateJWT создает и подписывает JWT токен для пользователя.
func (s *authService) generateJWT(userID int64, username string) (string, error) {
	// Создаем claims (полезную нагрузку)
	claims := jwtClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)), // Время истечения
			IssuedAt:  jwt.NewNumericDate(time.Now()),               // Время выдачи
			NotBefore: jwt.NewNumericDate(time.Now()),               // Время, с которого токен валиден
			Issuer:    "minitwitter-server",                         // Источник токена
			ID:        uuid.NewString(),                             // Уникальный ID токена для корреляции в логах
		},
	}

	// Создаем токен с нашими claims и методом подписи HS256
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Подписываем токен секретным ключом
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи JWT: %w", err)
	}

	return signedToken, nil
}

// Кастомные ошибки сервиса.
var (
	ErrInvalidCredentials = errors.New("неверный пароль")
	ErrUserNotFound       = errors.New("пользователь не найден")
	ErrUsernameTaken      = errors.New("имя пользователя уже занято")
	ErrTokenExpired       = errors.New("срок действия токена истек")
	ErrTokenInvalid       = errors.New("невалидный токен")
)
