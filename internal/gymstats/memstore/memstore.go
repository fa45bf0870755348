// Package memstore keeps the whole gymstats state in process memory.
// It backs the "memory" storage mode and the service tests.
package memstore

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/gymstats/catalog"
	"github.com/2beens/liftlog/internal/gymstats/records"
	"github.com/2beens/liftlog/internal/gymstats/units"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
)

var (
	_ workouts.Repo  = (*Store)(nil)
	_ workouts.Tx    = (*tx)(nil)
	_ records.Reader = (*Store)(nil)
	_ catalog.Repo   = (*Store)(nil)
	_ auth.Directory = (*Store)(nil)
)

type profileKey struct {
	userID string
	name   string
}

type prKey struct {
	userID string
	name   string
	date   units.Day
}

type state struct {
	lastID   int64
	workouts map[int64]workouts.Workout
	sets     map[int64]workouts.ExerciseSet
	profiles map[profileKey]records.Profile
	prs      map[prKey]records.PR
	catalog  map[int64]catalog.Exercise
	names    map[string]string
}

func newState() *state {
	return &state{
		workouts: map[int64]workouts.Workout{},
		sets:     map[int64]workouts.ExerciseSet{},
		profiles: map[profileKey]records.Profile{},
		prs:      map[prKey]records.PR{},
		catalog:  map[int64]catalog.Exercise{},
		names:    map[string]string{},
	}
}

func (s *state) clone() *state {
	return &state{
		lastID:   s.lastID,
		workouts: maps.Clone(s.workouts),
		sets:     maps.Clone(s.sets),
		profiles: maps.Clone(s.profiles),
		prs:      maps.Clone(s.prs),
		catalog:  maps.Clone(s.catalog),
		names:    maps.Clone(s.names),
	}
}

func (s *state) nextID() int64 {
	s.lastID++
	return s.lastID
}

// Store serializes all transactions on one mutex. A transaction works on a
// copy of the state that replaces the live one only on commit.
type Store struct {
	mu    sync.RWMutex
	state *state
	now   func() time.Time
}

func New() *Store {
	return &Store{
		state: newState(),
		now:   time.Now,
	}
}

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx workouts.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(ctx, &tx{st: working}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.state = working
	return nil
}

func (s *Store) ListWorkouts(ctx context.Context, userID string) ([]workouts.Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []workouts.Workout
	for _, w := range s.state.workouts {
		if w.UserID != userID {
			continue
		}
		w.Exercises = s.state.setsOf(w.ID)
		list = append(list, w)
	}
	slices.SortFunc(list, func(a, b workouts.Workout) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return compareInt64(b.ID, a.ID)
	})
	return list, nil
}

func (s *Store) ListProfiles(ctx context.Context, userID string) ([]records.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []records.Profile
	for _, p := range s.state.profiles {
		if p.UserID == userID {
			list = append(list, p)
		}
	}
	slices.SortFunc(list, func(a, b records.Profile) int {
		return strings.Compare(a.Name, b.Name)
	})
	return list, nil
}

func (s *Store) ListPRs(ctx context.Context, userID string) ([]records.PR, error) {
	return s.filterPRs(ctx, func(pr records.PR) bool {
		return pr.UserID == userID
	})
}

// PRsForExercise returns the PR history of every user for one exercise.
func (s *Store) PRsForExercise(ctx context.Context, name string) ([]records.PR, error) {
	return s.filterPRs(ctx, func(pr records.PR) bool {
		return pr.ExerciseName == name
	})
}

func (s *Store) filterPRs(ctx context.Context, keep func(records.PR) bool) ([]records.PR, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []records.PR
	for _, pr := range s.state.prs {
		if keep(pr) {
			list = append(list, pr)
		}
	}
	slices.SortFunc(list, func(a, b records.PR) int {
		if c := strings.Compare(a.ExerciseName, b.ExerciseName); c != 0 {
			return c
		}
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.UserID, b.UserID)
	})
	return list, nil
}

func (s *state) setsOf(workoutID int64) []workouts.ExerciseSet {
	var sets []workouts.ExerciseSet
	for _, set := range s.sets {
		if set.WorkoutID == workoutID {
			sets = append(sets, set)
		}
	}
	slices.SortFunc(sets, func(a, b workouts.ExerciseSet) int {
		return compareInt64(a.ID, b.ID)
	})
	return sets
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
