package repository

import (
	"context"

	"gorm.io/gorm"

	"hometasks/internal/model"
)

// EventRepository defines calendar event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Event, error)
	Delete(ctx context.Context, id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event.
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID finds an event by ID.
func (r *eventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Where("event_id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ListByUser lists the events owned by a user.
func (r *eventRepository) ListByUser(ctx context.Context, userID uint) ([]model.Event, error) {
	events := []model.Event{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("event_id").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Delete removes an event.
func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	return deleteOne(r.db.WithContext(ctx), &model.Event{}, id)
}
