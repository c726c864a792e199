package service

import (
	"context"
	"fmt"

	"hometasks/internal/cache"
	apperrors "hometasks/internal/errors"
	"hometasks/internal/model"
	"hometasks/internal/repository"
)

// CreateMemberInput carries the fields of a new family member.
type CreateMemberInput struct {
	FirstName string
	LastName  string
	IsAdmin   bool
	UserID    uint
}

// MemberService handles family member operations.
type MemberService interface {
	AddMember(ctx context.Context, in CreateMemberInput) (*model.Member, error)
	GetMember(ctx context.Context, id uint) (*model.Member, error)
	ListMembers(ctx context.Context, userID uint) ([]model.Member, error)
	UpdateMember(ctx context.Context, id uint, update MemberUpdate) error
	DeleteMember(ctx context.Context, id uint) error
}

type memberService struct {
	store repository.Store
	cache *cache.Client
}

// NewMemberService creates a new member service.
func NewMemberService(store repository.Store, cache *cache.Client) MemberService {
	return &memberService{store: store, cache: cache}
}

// AddMember creates a member under an existing user.
func (s *memberService) AddMember(ctx context.Context, in CreateMemberInput) (*model.Member, error) {
	member := &model.Member{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsAdmin:   in.IsAdmin,
		UserID:    in.UserID,
	}

	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		exists, err := tx.Users().Exists(ctx, in.UserID)
		if err != nil {
			return fmt.Errorf("check user: %w", err)
		}
		if !exists {
			return apperrors.ErrInvalidReference
		}
		return tx.Members().Create(ctx, member)
	})
	if err != nil {
		return nil, translate(err, apperrors.ErrMemberNotFound)
	}

	invalidateUsers(ctx, s.cache, member.UserID)
	member.Lists = []model.ListItem{}
	return member, nil
}

// GetMember returns a member with its list items.
func (s *memberService) GetMember(ctx context.Context, id uint) (*model.Member, error) {
	member, err := s.store.Members().FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrMemberNotFound)
	}
	return member, nil
}

// ListMembers returns the members of a user. An unknown user has none.
func (s *memberService) ListMembers(ctx context.Context, userID uint) ([]model.Member, error) {
	members, err := s.store.Members().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// UpdateMember writes the supplied fields of an existing member.
func (s *memberService) UpdateMember(ctx context.Context, id uint, update MemberUpdate) error {
	var owner uint
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		member, err := tx.Members().FindByID(ctx, id)
		if err != nil {
			return err
		}
		owner = member.UserID
		return tx.Members().Update(ctx, id, update.Columns())
	})
	if err != nil {
		return translate(err, apperrors.ErrMemberNotFound)
	}
	invalidateUsers(ctx, s.cache, owner)
	return nil
}

// DeleteMember removes a member and its list items.
func (s *memberService) DeleteMember(ctx context.Context, id uint) error {
	var owner uint
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		member, err := tx.Members().FindByID(ctx, id)
		if err != nil {
			return err
		}
		owner = member.UserID
		return tx.Members().Delete(ctx, id)
	})
	if err != nil {
		return translate(err, apperrors.ErrMemberNotFound)
	}
	invalidateUsers(ctx, s.cache, owner)
	return nil
}
