package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/gymstats/catalog"
)

func (s *Store) ListExercises(ctx context.Context, userID string) ([]catalog.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []catalog.Exercise
	for _, ex := range s.state.catalog {
		if ex.UserID == userID {
			list = append(list, ex)
		}
	}
	slices.SortFunc(list, func(a, b catalog.Exercise) int {
		return strings.Compare(a.Name, b.Name)
	})
	return list, nil
}

func (s *Store) SeedExercises(ctx context.Context, userID string, names []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		if s.state.hasCatalogName(userID, name) {
			continue
		}
		s.state.addCatalog(userID, name, s.now().UTC())
	}
	return nil
}

func (s *Store) AddExercise(ctx context.Context, userID, name string) (*catalog.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.hasCatalogName(userID, name) {
		return nil, catalog.ErrExerciseExists
	}
	ex := s.state.addCatalog(userID, name, s.now().UTC())
	return &ex, nil
}

func (s *Store) DeleteExercise(ctx context.Context, userID string, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ex, ok := s.state.catalog[id]
	if !ok || ex.UserID != userID {
		return catalog.ErrExerciseNotFound
	}
	delete(s.state.catalog, id)
	return nil
}

func (s *state) hasCatalogName(userID, name string) bool {
	for _, ex := range s.catalog {
		if ex.UserID == userID && ex.Name == name {
			return true
		}
	}
	return false
}

func (s *state) addCatalog(userID, name string, now time.Time) catalog.Exercise {
	ex := catalog.Exercise{
		ID:        s.nextID(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
	}
	s.catalog[ex.ID] = ex
	return ex
}
