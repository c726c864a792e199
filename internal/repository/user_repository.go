package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hometasks/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// withGraph preloads everything a user owns.
func withGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("member_id") }).
		Preload("Members.Lists", func(db *gorm.DB) *gorm.DB { return db.Order("list_id") }).
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("event_id") })
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := withGraph(r.db.WithContext(ctx)).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := withGraph(r.db.WithContext(ctx)).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := withGraph(r.db.WithContext(ctx)).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes the user together with its events, members and their list
// items. Callers wanting atomicity run it inside Store.WithTransaction.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	memberIDs := db.Model(&model.Member{}).Select("member_id").Where("user_id = ?", id)
	if err := db.Where("member_id IN (?)", memberIDs).Delete(&model.ListItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", id).Delete(&model.Member{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", id).Delete(&model.Event{}).Error; err != nil {
		return err
	}
	return deleteOne(db, &model.User{}, id)
}
