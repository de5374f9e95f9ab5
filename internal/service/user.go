package service

import (
	"Watchlist/internal/model"
	"Watchlist/internal/repo"
	"Watchlist/internal/validation"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput тело запроса регистрации.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72,bcryptlen"`
}

// LoginInput тело запроса входа.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate частичное обновление профиля. Email и пароль здесь не меняются.
// Пустой AvatarURL сбрасывает аватар.
type ProfileUpdate struct {
	Name      *string `json:"name" validate:"omitnil,min=1,max=255"`
	AvatarURL *string `json:"avatarUrl" validate:"omitnil,max=512"`
}

// UserService регистрация, вход и профиль пользователя.
type UserService struct {
	repo     repo.UserRepository
	validate *validation.Validator
}

func NewUserService(r repo.UserRepository, v *validation.Validator) *UserService {
	return &UserService{repo: r, validate: v}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// hashForUnknownUser хеш для сравнения при неизвестном email,
// чтобы время ответа не выдавало наличие аккаунта.
func hashForUnknownUser() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("watchlist-dummy-password"), bcrypt.DefaultCost)
	})
	return dummyHash
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register создаёт пользователя. Занятый email даёт ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// уникальный индекс по email закрывает гонку двух одновременных регистраций
	user, err := s.repo.CreateUser(ctx, &model.User{Name: in.Name, Email: in.Email, Password: string(hash)})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login проверяет email и пароль.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*model.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(hashForUnknownUser(), []byte(in.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetProfile возвращает пользователя по id.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfile применяет только переданные поля.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, in ProfileUpdate) (*model.User, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	updates := make(map[string]any, 2)
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.AvatarURL != nil {
		if *in.AvatarURL == "" {
			updates["avatar_url"] = nil
		} else {
			updates["avatar_url"] = *in.AvatarURL
		}
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := s.repo.UpdateUser(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// FindByEmail ищет пользователя по email без проверки пароля (для служебных утилит).
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
