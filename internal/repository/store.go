package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories that share one database session. A Store
// obtained inside WithTransaction runs every call on that transaction.
type Store interface {
	Users() UserRepository
	Members() MemberRepository
	Items() ItemRepository
	Events() EventRepository
	// WithTransaction executes fn within a database transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type store struct {
	db *gorm.DB
}

// NewStore creates a GORM-backed Store.
func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Users() UserRepository     { return NewUserRepository(s.db) }
func (s *store) Members() MemberRepository { return NewMemberRepository(s.db) }
func (s *store) Items() ItemRepository     { return NewItemRepository(s.db) }
func (s *store) Events() EventRepository   { return NewEventRepository(s.db) }

// WithTransaction executes a function within a database transaction.
func (s *store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &store{db: tx})
	})
}

// deleteOne deletes a single row by primary key and reports a missing row as
// gorm.ErrRecordNotFound.
func deleteOne(db *gorm.DB, value interface{}, id uint) error {
	res := db.Delete(value, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// updateColumns applies a column set to one row. Existence is checked by the
// caller; MySQL reports zero affected rows when the values did not change.
func updateColumns(db *gorm.DB, value interface{}, pk string, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return db.Model(value).Where(pk+" = ?", id).Updates(fields).Error
}
