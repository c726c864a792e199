package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hometasks/internal/cache"
	apperrors "hometasks/internal/errors"
	"hometasks/internal/model"
	"hometasks/internal/repository"
)

// CreateItemInput carries the fields of a new list item.
type CreateItemInput struct {
	Text        string
	IsCompleted bool
	ListType    string
	MemberID    uint
}

// ItemService handles list item operations.
type ItemService interface {
	AddItem(ctx context.Context, in CreateItemInput) (*model.ListItem, error)
	ListItems(ctx context.Context, memberID uint) ([]model.ListItem, error)
	UpdateItem(ctx context.Context, id uint, update ItemUpdate) error
	DeleteItem(ctx context.Context, id uint) error
}

type itemService struct {
	store repository.Store
	cache *cache.Client
}

// NewItemService creates a new list item service.
func NewItemService(store repository.Store, cache *cache.Client) ItemService {
	return &itemService{store: store, cache: cache}
}

// ownerOf returns the user owning a member, or ErrInvalidReference.
func ownerOf(ctx context.Context, tx repository.Store, memberID uint) (uint, error) {
	member, err := tx.Members().FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrInvalidReference
		}
		return 0, fmt.Errorf("find member %d: %w", memberID, err)
	}
	return member.UserID, nil
}

// AddItem creates a list item under an existing member.
func (s *itemService) AddItem(ctx context.Context, in CreateItemInput) (*model.ListItem, error) {
	item := &model.ListItem{
		Text:        in.Text,
		IsCompleted: in.IsCompleted,
		ListType:    in.ListType,
		MemberID:    in.MemberID,
	}

	var owner uint
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		if owner, err = ownerOf(ctx, tx, in.MemberID); err != nil {
			return err
		}
		return tx.Items().Create(ctx, item)
	})
	if err != nil {
		return nil, translate(err, apperrors.ErrItemNotFound)
	}

	invalidateUsers(ctx, s.cache, owner)
	return item, nil
}

// ListItems returns the items of a member. An unknown member has none.
func (s *itemService) ListItems(ctx context.Context, memberID uint) ([]model.ListItem, error) {
	items, err := s.store.Items().ListByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// UpdateItem writes the supplied fields of an existing item. Moving an item to
// another member requires that member to exist.
func (s *itemService) UpdateItem(ctx context.Context, id uint, update ItemUpdate) error {
	var owners []uint
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		item, err := tx.Items().FindByID(ctx, id)
		if err != nil {
			return err
		}
		owner, err := ownerOf(ctx, tx, item.MemberID)
		if err != nil {
			return err
		}
		owners = append(owners, owner)

		if update.MemberID.Set && update.MemberID.Value != item.MemberID {
			newOwner, err := ownerOf(ctx, tx, update.MemberID.Value)
			if err != nil {
				return err
			}
			owners = append(owners, newOwner)
		}
		return tx.Items().Update(ctx, id, update.Columns())
	})
	if err != nil {
		return translate(err, apperrors.ErrItemNotFound)
	}
	invalidateUsers(ctx, s.cache, owners...)
	return nil
}

// DeleteItem removes a list item.
func (s *itemService) DeleteItem(ctx context.Context, id uint) error {
	var owner uint
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		item, err := tx.Items().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if owner, err = ownerOf(ctx, tx, item.MemberID); err != nil {
			return err
		}
		return tx.Items().Delete(ctx, id)
	})
	if err != nil {
		return translate(err, apperrors.ErrItemNotFound)
	}
	invalidateUsers(ctx, s.cache, owner)
	return nil
}
