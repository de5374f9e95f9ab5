package service

import (
	"Watchlist/internal/model"
	"Watchlist/internal/repo"
	"Watchlist/internal/validation"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, id int64, updates map[string]any) (*model.User, error) {
	args := m.Called(ctx, id, updates)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func ptrStr(s string) *string { return &s }

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m, validation.New())

	t.Run("ok when email free", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "ann@x.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "ann@x.com" && u.Name == "Ann" &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")) == nil
		})).Return(&model.User{ID: 10, Name: "Ann", Email: "ann@x.com"}, nil).Once()

		// email нормализуется
		user, err := svc.Register(ctx, RegisterInput{Name: " Ann ", Email: " Ann@X.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, int64(10), user.ID)
		m.AssertExpectations(t)
	})

	t.Run("conflict when email taken", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "ann@x.com").Return(&model.User{ID: 1, Email: "ann@x.com"}, nil).Once()

		user, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrEmailTaken)
		m.AssertExpectations(t)
	})

	t.Run("conflict on concurrent insert", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "ann@x.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		m.On("CreateUser", mock.Anything, mock.Anything).Return((*model.User)(nil), repo.ErrDuplicate).Once()

		_, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrEmailTaken)
		m.AssertExpectations(t)
	})

	t.Run("validation error never reaches repo", func(t *testing.T) {
		m.ExpectedCalls = nil
		_, err := svc.Register(ctx, RegisterInput{Name: "", Email: "bad", Password: "123"})
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 3)
		m.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		m.ExpectedCalls = nil
		boom := errors.New("db down")
		m.On("GetUserByEmail", mock.Anything, "ann@x.com").Return((*model.User)(nil), boom).Once()

		_, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m, validation.New())

	// готовим хеш для пароля "secret1"
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)

	t.Run("ok with valid credentials", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "ann@x.com").Return(&model.User{ID: 2, Email: "ann@x.com", Password: string(hash)}, nil).Once()

		user, err := svc.Login(ctx, LoginInput{Email: "ann@x.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), user.ID)
		m.AssertExpectations(t)
	})

	t.Run("invalid password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "ann@x.com").Return(&model.User{ID: 2, Email: "ann@x.com", Password: string(hash)}, nil).Once()

		user, err := svc.Login(ctx, LoginInput{Email: "ann@x.com", Password: "wrong"})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "nobody@x.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()

		_, err := svc.Login(ctx, LoginInput{Email: "nobody@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty password is a validation error", func(t *testing.T) {
		m.ExpectedCalls = nil
		_, err := svc.Login(ctx, LoginInput{Email: "ann@x.com"})
		var verr *validation.Error
		assert.ErrorAs(t, err, &verr)
	})
}

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m, validation.New())

	t.Run("find by email normalizes", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "ann@x.com").Return(&model.User{ID: 5}, nil).Once()
		u, err := svc.FindByEmail(ctx, " Ann@X.com ")
		require.NoError(t, err)
		assert.Equal(t, int64(5), u.ID)

		m.On("GetUserByEmail", mock.Anything, "bob@x.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		_, err = svc.FindByEmail(ctx, "bob@x.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get not found", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByID", mock.Anything, int64(5)).Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		_, err := svc.GetProfile(ctx, 5)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update only provided fields", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("UpdateUser", mock.Anything, int64(5), map[string]any{"name": "Anna"}).
			Return(&model.User{ID: 5, Name: "Anna"}, nil).Once()

		u, err := svc.UpdateProfile(ctx, 5, ProfileUpdate{Name: ptrStr(" Anna ")})
		require.NoError(t, err)
		assert.Equal(t, "Anna", u.Name)
		m.AssertExpectations(t)
	})

	t.Run("empty avatar clears it", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("UpdateUser", mock.Anything, int64(5), map[string]any{"avatar_url": nil}).
			Return(&model.User{ID: 5}, nil).Once()

		_, err := svc.UpdateProfile(ctx, 5, ProfileUpdate{AvatarURL: ptrStr("")})
		require.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("no fields", func(t *testing.T) {
		m.ExpectedCalls = nil
		_, err := svc.UpdateProfile(ctx, 5, ProfileUpdate{})
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		m.ExpectedCalls = nil
		_, err := svc.UpdateProfile(ctx, 5, ProfileUpdate{Name: ptrStr("   ")})
		var verr *validation.Error
		assert.ErrorAs(t, err, &verr)
	})
}
