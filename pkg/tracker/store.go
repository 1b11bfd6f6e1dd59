package tracker

import (
	"calorie-snap/domain"
	"calorie-snap/entities"
	"context"
	"github.com/google/uuid"
	"slices"
	"sync"
	"time"
)

type (
	// MealStore is the append-only record of meals the tracker aggregates over.
	MealStore interface {
		// Append stores meal, failing with domain.ErrDuplicateMealID when the id is taken.
		Append(ctx context.Context, meal *entities.Meal) error
		// FindByID fails with domain.ErrMealNotFound when no meal has the id.
		FindByID(ctx context.Context, id string) (*entities.Meal, error)
		// ListBetween returns the user's meals created in [from, to), oldest first.
		ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entities.Meal, error)
	}

	MemoryStore struct {
		mu    sync.RWMutex
		meals []*entities.Meal
		byID  map[string]*entities.Meal
	}
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]*entities.Meal),
	}
}

func (s *MemoryStore) Append(_ context.Context, meal *entities.Meal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[meal.ID]; ok {
		return domain.ErrDuplicateMealID
	}

	stored := *meal
	stored.User = nil
	s.meals = append(s.meals, &stored)
	s.byID[stored.ID] = &stored
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*entities.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meal, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrMealNotFound
	}

	found := *meal
	return &found, nil
}

func (s *MemoryStore) ListBetween(_ context.Context, userID uuid.UUID, from, to time.Time) ([]*entities.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var meals []*entities.Meal
	for _, meal := range s.meals {
		if meal.UserID != userID {
			continue
		}
		if meal.CreatedAt.Before(from) || !meal.CreatedAt.Before(to) {
			continue
		}
		found := *meal
		meals = append(meals, &found)
	}

	slices.SortStableFunc(meals, func(a, b *entities.Meal) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return meals, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meals)
}
