package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/internal/auth"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	repoMocks "blogapi/internal/repository/mocks"
)

func newUserService(t *testing.T, users *repoMocks.MockUserRepository) (UserService, *auth.Manager) {
	t.Helper()
	tokens, err := auth.NewManager("test-secret", "blogapi", time.Hour)
	require.NoError(t, err)
	return NewUserService(users, tokens), tokens
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password and defaults role", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)

		mUsers.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Role == model.DefaultRole &&
				u.Password != "longenoughpw" &&
				auth.CheckPassword(u.Password, "longenoughpw")
		})).Return(func(ctx context.Context, u *model.User) *model.User {
			u.ID = primitive.NewObjectID()
			return u
		}, nil)

		svc, _ := newUserService(t, mUsers)
		user, err := svc.Register(ctx, RegisterInput{
			FullName: "Jane Writer",
			Email:    "jane@example.com",
			Password: "longenoughpw",
		})
		require.NoError(t, err)
		assert.Equal(t, model.DefaultRole, user.Role)
		assert.False(t, user.ID.IsZero())
		mUsers.AssertExpectations(t)
	})

	t.Run("keeps explicit role", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Role == "admin"
		})).Return(func(ctx context.Context, u *model.User) *model.User { return u }, nil)

		svc, _ := newUserService(t, mUsers)
		_, err := svc.Register(ctx, RegisterInput{
			FullName: "Root",
			Email:    "root@example.com",
			Password: "longenoughpw",
			Role:     "admin",
		})
		require.NoError(t, err)
		mUsers.AssertExpectations(t)
	})

	t.Run("validation failures", func(t *testing.T) {
		svc, _ := newUserService(t, new(repoMocks.MockUserRepository))

		tests := []struct {
			name  string
			in    RegisterInput
			field string
		}{
			{"missing full name", RegisterInput{Email: "a@b.co", Password: "longenoughpw"}, "fullName"},
			{"bad email", RegisterInput{FullName: "x", Email: "not-an-email", Password: "longenoughpw"}, "email"},
			{"short password", RegisterInput{FullName: "x", Email: "a@b.co", Password: "short"}, "password"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tt.in)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				require.Len(t, verr.Fields, 1)
				assert.Equal(t, tt.field, verr.Fields[0].Field)
			})
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)

		svc, _ := newUserService(t, mUsers)
		_, err := svc.Register(ctx, RegisterInput{
			FullName: "Jane",
			Email:    "jane@example.com",
			Password: "longenoughpw",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	storedUser := func(t *testing.T) *model.User {
		t.Helper()
		hash, err := auth.HashPassword("correct-password")
		require.NoError(t, err)
		return &model.User{
			ID:       primitive.NewObjectID(),
			FullName: "Jane Writer",
			Email:    "jane@example.com",
			Password: hash,
			Role:     "author",
		}
	}

	t.Run("issues a token carrying id and role", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		user := storedUser(t)
		mUsers.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)

		svc, tokens := newUserService(t, mUsers)
		res, err := svc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "correct-password"})
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)
		assert.Equal(t, "jane@example.com", res.User.Email)

		claims, err := tokens.Verify(res.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.Hex(), claims.UserID())
		assert.Equal(t, "author", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByEmail", ctx, "jane@example.com").Return(storedUser(t), nil)

		svc, _ := newUserService(t, mUsers)
		_, err := svc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)

		svc, _ := newUserService(t, mUsers)
		_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever-pw"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("repository error is not masked as bad credentials", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByEmail", ctx, "jane@example.com").Return(nil, errors.New("db down"))

		svc, _ := newUserService(t, mUsers)
		_, err := svc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "whatever-pw"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns profile without password", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		id := primitive.NewObjectID()
		mUsers.On("FindByID", ctx, id.Hex()).Return(&model.User{
			ID: id, FullName: "Jane", Email: "jane@example.com", Password: "hash",
		}, nil)

		svc, _ := newUserService(t, mUsers)
		profile, err := svc.GetByID(ctx, id.Hex())
		require.NoError(t, err)
		assert.Equal(t, "Jane", profile.FullName)
	})

	t.Run("not found", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByID", ctx, "missing").Return(nil, repository.ErrNotFound)

		svc, _ := newUserService(t, mUsers)
		_, err := svc.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_UpdateByID(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("rehashes password on update", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("UpdateByID", ctx, id.Hex(), mock.MatchedBy(func(upd repository.UserUpdate) bool {
			return upd.Password != nil &&
				*upd.Password != "brand-new-password" &&
				auth.CheckPassword(*upd.Password, "brand-new-password")
		})).Return(&model.User{ID: id, FullName: "Jane", Email: "jane@example.com"}, nil)

		svc, _ := newUserService(t, mUsers)
		pw := "brand-new-password"
		_, err := svc.UpdateByID(ctx, id.Hex(), UpdateUserInput{Password: &pw})
		require.NoError(t, err)
		mUsers.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("UpdateByID", ctx, "missing", mock.Anything).Return(nil, repository.ErrNotFound)

		svc, _ := newUserService(t, mUsers)
		name := "New Name"
		_, err := svc.UpdateByID(ctx, "missing", UpdateUserInput{FullName: &name})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("UpdateByID", ctx, id.Hex(), mock.Anything).Return(nil, repository.ErrDuplicate)

		svc, _ := newUserService(t, mUsers)
		email := "taken@example.com"
		_, err := svc.UpdateByID(ctx, id.Hex(), UpdateUserInput{Email: &email})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}
