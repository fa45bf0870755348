package memstore

import (
	"context"

	"github.com/2beens/liftlog/internal/gymstats/records"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
)

type tx struct {
	st *state
}

// LockExercises is a no-op, InTx already holds the store mutex.
func (t *tx) LockExercises(ctx context.Context, _ string, _ []string) error {
	return ctx.Err()
}

func (t *tx) GetProfile(_ context.Context, userID, name string) (*records.Profile, error) {
	p, ok := t.st.profiles[profileKey{userID: userID, name: name}]
	if !ok {
		return nil, records.ErrProfileNotFound
	}
	return &p, nil
}

func (t *tx) SaveProfile(_ context.Context, profile *records.Profile) error {
	key := profileKey{userID: profile.UserID, name: profile.Name}
	if existing, ok := t.st.profiles[key]; ok {
		profile.ID = existing.ID
	} else {
		profile.ID = t.st.nextID()
	}
	t.st.profiles[key] = *profile
	return nil
}

func (t *tx) DeleteProfile(_ context.Context, userID, name string) error {
	delete(t.st.profiles, profileKey{userID: userID, name: name})
	return nil
}

func (t *tx) UpsertPR(_ context.Context, pr records.PR) error {
	key := prKey{userID: pr.UserID, name: pr.ExerciseName, date: pr.Date}
	if existing, ok := t.st.prs[key]; ok {
		pr.ID = existing.ID
	} else {
		pr.ID = t.st.nextID()
	}
	t.st.prs[key] = pr
	return nil
}

func (t *tx) DeletePRs(_ context.Context, userID, name string) error {
	for key := range t.st.prs {
		if key.userID == userID && key.name == name {
			delete(t.st.prs, key)
		}
	}
	return nil
}

func (t *tx) LiveSets(_ context.Context, userID, name string) ([]records.LiftedSet, error) {
	var live []records.LiftedSet
	for _, set := range t.st.sets {
		if set.Name != name {
			continue
		}
		if w, ok := t.st.workouts[set.WorkoutID]; ok && w.UserID == userID {
			live = append(live, set.Lifted())
		}
	}
	return live, nil
}

func (t *tx) InsertWorkout(_ context.Context, w *workouts.Workout) error {
	w.ID = t.st.nextID()
	stored := *w
	stored.Exercises = nil
	t.st.workouts[w.ID] = stored
	return nil
}

func (t *tx) InsertSet(_ context.Context, set *workouts.ExerciseSet) error {
	set.ID = t.st.nextID()
	t.st.sets[set.ID] = *set
	return nil
}

func (t *tx) GetWorkout(_ context.Context, userID string, id int64) (*workouts.Workout, error) {
	w, ok := t.st.workouts[id]
	if !ok || w.UserID != userID {
		return nil, workouts.ErrWorkoutNotFound
	}
	w.Exercises = t.st.setsOf(id)
	return &w, nil
}

func (t *tx) DeleteSets(_ context.Context, workoutID int64) error {
	for id, set := range t.st.sets {
		if set.WorkoutID == workoutID {
			delete(t.st.sets, id)
		}
	}
	return nil
}

func (t *tx) DeleteWorkout(_ context.Context, workoutID int64) error {
	delete(t.st.workouts, workoutID)
	return nil
}
