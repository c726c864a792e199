package service

import (
	"context"
	"fmt"

	"hometasks/internal/cache"
	apperrors "hometasks/internal/errors"
	"hometasks/internal/model"
	"hometasks/internal/repository"
)

// CreateEventInput carries the fields of a new calendar event.
type CreateEventInput struct {
	Title  string
	Start  string
	End    string
	UserID uint
}

// EventService handles calendar event operations.
type EventService interface {
	AddEvent(ctx context.Context, in CreateEventInput) (*model.Event, error)
	ListEvents(ctx context.Context, userID uint) ([]model.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
}

type eventService struct {
	store repository.Store
	cache *cache.Client
}

// NewEventService creates a new event service.
func NewEventService(store repository.Store, cache *cache.Client) EventService {
	return &eventService{store: store, cache: cache}
}

// AddEvent stores an event for an existing user.
func (s *eventService) AddEvent(ctx context.Context, in CreateEventInput) (*model.Event, error) {
	event := &model.Event{
		Title:  in.Title,
		Start:  in.Start,
		End:    in.End,
		UserID: in.UserID,
	}

	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		exists, err := tx.Users().Exists(ctx, in.UserID)
		if err != nil {
			return fmt.Errorf("check user: %w", err)
		}
		if !exists {
			return apperrors.ErrInvalidReference
		}
		return tx.Events().Create(ctx, event)
	})
	if err != nil {
		return nil, translate(err, apperrors.ErrEventNotFound)
	}

	invalidateUsers(ctx, s.cache, event.UserID)
	return event, nil
}

// ListEvents returns the user's events in creation order.
func (s *eventService) ListEvents(ctx context.Context, userID uint) ([]model.Event, error) {
	events, err := s.store.Events().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// DeleteEvent removes an event and drops its owner's cached graph.
func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	var owner uint
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		event, err := tx.Events().FindByID(ctx, id)
		if err != nil {
			return err
		}
		owner = event.UserID
		return tx.Events().Delete(ctx, id)
	})
	if err != nil {
		return translate(err, apperrors.ErrEventNotFound)
	}
	invalidateUsers(ctx, s.cache, owner)
	return nil
}
