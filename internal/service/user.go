package service

import (
	"context"
	"errors"

	"blogapi/internal/auth"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"`
}

// LoginInput carries submitted credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the payload returned after a successful login.
type LoginResult struct {
	Token string             `json:"token"`
	User  *model.UserProfile `json:"user"`
}

// UpdateUserInput holds a partial user mutation; nil fields are unchanged.
type UpdateUserInput struct {
	FullName *string `json:"fullName" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role"`
}

// UserService defines the use cases for user accounts.
type UserService interface {
	// Register creates an account with a hashed password and the default role
	// unless one is given.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Login verifies credentials and issues a signed, time-bounded token.
	// Unknown email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)

	// List returns all user profiles.
	List(ctx context.Context) ([]model.UserProfile, error)

	// GetByID returns a single user profile.
	GetByID(ctx context.Context, id string) (*model.UserProfile, error)

	// UpdateByID applies a partial update and returns the updated profile.
	UpdateByID(ctx context.Context, id string, in UpdateUserInput) (*model.UserProfile, error)
}

type userService struct {
	users  repository.UserRepository
	tokens *auth.Manager
}

// NewUserService constructs a UserService.
func NewUserService(users repository.UserRepository, tokens *auth.Manager) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = model.DefaultRole
	}

	user := &model.User{
		FullName: in.FullName,
		Email:    in.Email,
		Password: hashed,
		Role:     role,
	}
	stored, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return stored, nil
}

func (s *userService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Burn a comparison so this path takes as long as a wrong password.
			auth.CompareDummy(in.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user.Profile()}, nil
}

func (s *userService) List(ctx context.Context) ([]model.UserProfile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]model.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, *users[i].Profile())
	}
	return profiles, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.UserProfile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.Profile(), nil
}

func (s *userService) UpdateByID(ctx context.Context, id string, in UpdateUserInput) (*model.UserProfile, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	upd := repository.UserUpdate{
		FullName: in.FullName,
		Email:    in.Email,
		Role:     in.Role,
	}
	if in.Password != nil {
		hashed, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		upd.Password = &hashed
	}

	user, err := s.users.UpdateByID(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailTaken
		default:
			return nil, err
		}
	}
	return user.Profile(), nil
}
