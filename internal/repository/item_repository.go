package repository

import (
	"context"

	"gorm.io/gorm"

	"hometasks/internal/model"
)

// ItemRepository defines list item persistence operations.
type ItemRepository interface {
	Create(ctx context.Context, item *model.ListItem) error
	FindByID(ctx context.Context, id uint) (*model.ListItem, error)
	ListByMember(ctx context.Context, memberID uint) ([]model.ListItem, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new list item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// Create creates a new list item.
func (r *itemRepository) Create(ctx context.Context, item *model.ListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID finds a list item by ID.
func (r *itemRepository) FindByID(ctx context.Context, id uint) (*model.ListItem, error) {
	var item model.ListItem
	if err := r.db.WithContext(ctx).Where("list_id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByMember lists the items owned by a member.
func (r *itemRepository) ListByMember(ctx context.Context, memberID uint) ([]model.ListItem, error) {
	items := []model.ListItem{}
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("list_id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update writes only the given columns.
func (r *itemRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return updateColumns(r.db.WithContext(ctx), &model.ListItem{}, "list_id", id, fields)
}

// Delete removes a list item.
func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	return deleteOne(r.db.WithContext(ctx), &model.ListItem{}, id)
}
