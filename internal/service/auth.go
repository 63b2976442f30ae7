package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

// bcrypt ignores input past 72 bytes
const maxPasswordBytes = 72

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenManager interface {
	Issue(subject string) (string, error)
	Validate(token string) (string, error)
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	users    repo.UserRepository
	hasher   PasswordHasher
	tokens   TokenManager
	validate *validator.Validate

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, tokens TokenManager) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		validate: newValidator(),
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return model.User{}, err
	}
	if len(in.Password) > maxPasswordBytes {
		return model.User{}, invalidField("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}

	// Проверяем, что имя еще свободно
	_, err := s.users.GetByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return model.User{}, ErrConflict
	case !errors.Is(err, repo.ErrorNotFound):
		return model.User{}, fmt.Errorf("lookup user: %w", err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Username:       in.Username,
		HashedPassword: hashed,
		IsActive:       true,
	})
	if errors.Is(err, repo.ErrorConflict) { // кто-то успел раньше
		return model.User{}, ErrConflict
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate is the only place credentials are checked. Unknown users,
// wrong passwords and inactive accounts all yield ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrorNotFound) {
		// Burn the same bcrypt time as a real comparison.
		s.hasher.Verify(password, s.dummy())
		return model.User{}, ErrUnauthorized
	}
	if err != nil {
		return model.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(password, user.HashedPassword) || !user.IsActive {
		return model.User{}, ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (model.Token, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return model.Token{}, err
	}
	user, err := s.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return model.Token{}, err
	}
	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return model.Token{}, fmt.Errorf("issue token: %w", err)
	}
	return model.Token{AccessToken: token, TokenType: "bearer"}, nil
}

// Resolve maps a bearer token to the user it was issued for.
func (s *AuthService) Resolve(ctx context.Context, token string) (model.User, error) {
	username, err := s.tokens.Validate(token)
	if err != nil {
		return model.User{}, ErrUnauthorized
	}
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.User{}, ErrUnauthorized
	}
	if err != nil {
		return model.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !user.IsActive {
		return model.User{}, ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	return s.dummyHash
}
