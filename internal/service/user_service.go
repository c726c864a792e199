package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"hometasks/internal/auth"
	"hometasks/internal/cache"
	apperrors "hometasks/internal/errors"
	"hometasks/internal/model"
	"hometasks/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// fallbackPlaceholderHash is a cost 10 bcrypt hash of "placeholder-password".
const fallbackPlaceholderHash = "$2a$10$/PCjWKOnHSuH9/548Ty5keKavs4uFQkMy3DpWChWUfgnpJe6k6j2."

// CreateUserInput carries the fields of a new account.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Img      *string
}

// UserService exposes account operations.
type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error)
	VerifyUser(ctx context.Context, username, password string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	store  repository.Store
	hasher auth.PasswordHasher
	cache  *cache.Client

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService builds a UserService with store, hasher and cache.
func NewUserService(store repository.Store, hasher auth.PasswordHasher, cache *cache.Client) UserService {
	return &userService{store: store, hasher: hasher, cache: cache}
}

// CreateUser hashes the password and stores the account if both username and
// email are free.
func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     in.Username,
		PasswordHash: hashed,
		Email:        in.Email,
		Img:          in.Img,
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Users().FindByUsername(ctx, in.Username); err == nil {
			return apperrors.ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check username: %w", err)
		}

		if _, err := tx.Users().FindByEmail(ctx, in.Email); err == nil {
			return apperrors.ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check email: %w", err)
		}

		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound)
	}

	user.Members = []model.Member{}
	user.Events = []model.Event{}
	return user, nil
}

// VerifyUser returns the account when password matches. Unknown usernames and
// wrong passwords both yield ErrInvalidCredentials after a full hash check.
func (s *userService) VerifyUser(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.Verify(s.placeholderHash(), password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// placeholderHash is verified against when the username is unknown.
func (s *userService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hashed, err := s.hasher.Hash("placeholder-password")
		if err != nil {
			log.Printf("placeholder hash failed, using fixed fallback: %v", err)
			hashed = fallbackPlaceholderHash
		}
		s.dummyHash = hashed
	})
	return s.dummyHash
}

// GetUser returns a user with its members, their lists and its events.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, userCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound)
	}

	s.cache.SetJSON(ctx, userCacheKey(id), user, userCacheTTL)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes the user and everything it owns.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return translate(err, apperrors.ErrUserNotFound)
	}
	invalidateUsers(ctx, s.cache, id)
	return nil
}
