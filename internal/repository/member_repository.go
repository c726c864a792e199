package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hometasks/internal/model"
)

// MemberRepository defines family member persistence operations.
type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	FindByID(ctx context.Context, id uint) (*model.Member, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Member, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func withLists(db *gorm.DB) *gorm.DB {
	return db.Preload("Lists", func(db *gorm.DB) *gorm.DB { return db.Order("list_id") })
}

// Create creates a new member.
func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
}

// FindByID finds a member by ID, including its list items.
func (r *memberRepository) FindByID(ctx context.Context, id uint) (*model.Member, error) {
	var member model.Member
	if err := withLists(r.db.WithContext(ctx)).Where("member_id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListByUser lists the members owned by a user, including their list items.
func (r *memberRepository) ListByUser(ctx context.Context, userID uint) ([]model.Member, error) {
	members := []model.Member{}
	if err := withLists(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("member_id").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Update writes only the given columns.
func (r *memberRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return updateColumns(r.db.WithContext(ctx), &model.Member{}, "member_id", id, fields)
}

// Delete removes a member and its list items.
func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("member_id = ?", id).Delete(&model.ListItem{}).Error; err != nil {
		return err
	}
	return deleteOne(db, &model.Member{}, id)
}
