package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/YVINAY2005/task-manager/internal/model"
	"github.com/YVINAY2005/task-manager/internal/repo"
	"github.com/YVINAY2005/task-manager/internal/token"
)

const minPasswordLen = 6

type AuthService struct {
	users  repo.UserRepository
	tokens *token.Manager
}

func NewAuthService(users repo.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register проверяет входные данные, хэширует пароль и создает пользователя.
// Дубликат email приходит из репозитория как ErrorConflict.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (model.User, string, error) {
	var verr ValidationError
	if strings.TrimSpace(name) == "" {
		verr.add("name", "Name is required")
	}
	if !validEmail(email) {
		verr.add("email", "Please include a valid email")
	}
	if len(password) < minPasswordLen {
		verr.add("password", "Please enter a password with 6 or more characters")
	}
	if err := verr.orNil(); err != nil {
		return model.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", err
	}

	user, err := s.users.Create(ctx, model.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
	})
	if err != nil {
		return model.User{}, "", err
	}

	tok, err := s.tokens.Generate(user.ID)
	if err != nil {
		return model.User{}, "", err
	}
	return user, tok, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (model.User, string, error) {
	var verr ValidationError
	if !validEmail(email) {
		verr.add("email", "Please include a valid email")
	}
	if password == "" {
		verr.add("password", "Password is required")
	}
	if err := verr.orNil(); err != nil {
		return model.User{}, "", err
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return model.User{}, "", ErrInvalidCredentials
		}
		return model.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.User{}, "", ErrInvalidCredentials
	}

	tok, err := s.tokens.Generate(user.ID)
	if err != nil {
		return model.User{}, "", err
	}
	return user, tok, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	return s.users.GetByID(ctx, userID)
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	// ParseAddress принимает формы с display name, нам нужен голый адрес
	return err == nil && addr.Address == strings.TrimSpace(email)
}
