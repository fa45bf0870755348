package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/2beens/liftlog/internal/gymstats/records"
	"github.com/2beens/liftlog/internal/gymstats/units"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
)

type tx struct {
	tx pgx.Tx
}

// LockExercises takes one transaction scoped advisory lock per (user, exercise).
// Callers pass sorted names so concurrent transactions lock in the same order.
func (t *tx) LockExercises(ctx context.Context, userID string, names []string) error {
	for _, name := range names {
		if _, err := t.tx.Exec(
			ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1 || '|' || $2, 0));`,
			userID, name,
		); err != nil {
			return fmt.Errorf("lock %s: %w", name, err)
		}
	}
	return nil
}

func (t *tx) GetProfile(ctx context.Context, userID, name string) (*records.Profile, error) {
	rows, err := t.tx.Query(
		ctx,
		`
			SELECT id, user_id, name, highest_weight::text, first_pr_date, last_pr_date
			FROM user_exercise_profiles
			WHERE user_id = $1 AND name = $2;`,
		userID, name,
	)
	if err != nil {
		return nil, err
	}
	profiles, err := rows2profiles(rows)
	if err != nil {
		return nil, err
	}
	if len(profiles) != 1 {
		return nil, records.ErrProfileNotFound
	}
	return &profiles[0], nil
}

func (t *tx) SaveProfile(ctx context.Context, profile *records.Profile) error {
	return t.tx.QueryRow(
		ctx,
		`
			INSERT INTO user_exercise_profiles (user_id, name, highest_weight, first_pr_date, last_pr_date)
			VALUES ($1, $2, $3::numeric, $4, $5)
			ON CONFLICT ON CONSTRAINT uq_profile_user_name DO UPDATE
				SET highest_weight = EXCLUDED.highest_weight,
					first_pr_date  = EXCLUDED.first_pr_date,
					last_pr_date   = EXCLUDED.last_pr_date
			RETURNING id;`,
		profile.UserID, profile.Name, profile.HighestWeight.String(),
		profile.FirstPRDate.Time(), profile.LastPRDate.Time(),
	).Scan(&profile.ID)
}

func (t *tx) DeleteProfile(ctx context.Context, userID, name string) error {
	_, err := t.tx.Exec(
		ctx,
		`DELETE FROM user_exercise_profiles WHERE user_id = $1 AND name = $2;`,
		userID, name,
	)
	return err
}

func (t *tx) UpsertPR(ctx context.Context, pr records.PR) error {
	_, err := t.tx.Exec(
		ctx,
		`
			INSERT INTO pr_records (user_id, exercise_name, weight, date)
			VALUES ($1, $2, $3::numeric, $4)
			ON CONFLICT ON CONSTRAINT uq_pr_user_name_date DO UPDATE
				SET weight = EXCLUDED.weight;`,
		pr.UserID, pr.ExerciseName, pr.Weight.String(), pr.Date.Time(),
	)
	return err
}

func (t *tx) DeletePRs(ctx context.Context, userID, name string) error {
	_, err := t.tx.Exec(
		ctx,
		`DELETE FROM pr_records WHERE user_id = $1 AND exercise_name = $2;`,
		userID, name,
	)
	return err
}

func (t *tx) LiveSets(ctx context.Context, userID, name string) ([]records.LiftedSet, error) {
	rows, err := t.tx.Query(
		ctx,
		`
			SELECT s.top_weight::text, s.date
			FROM exercise_sets s
				JOIN workouts w ON w.id = s.workout_id
			WHERE w.user_id = $1 AND s.name = $2;`,
		userID, name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var live []records.LiftedSet
	for rows.Next() {
		var (
			weight string
			date   time.Time
		)
		if err := rows.Scan(&weight, &date); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w, err := units.ParseWeight(weight)
		if err != nil {
			return nil, fmt.Errorf("live set weight: %w", err)
		}
		live = append(live, records.LiftedSet{Name: name, TopWeight: w, Date: units.DayOf(date)})
	}
	return live, rows.Err()
}

func (t *tx) InsertWorkout(ctx context.Context, w *workouts.Workout) error {
	return t.tx.QueryRow(
		ctx,
		`
			INSERT INTO workouts (user_id, date, type, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id;`,
		w.UserID, w.Date.Time(), string(w.Type), w.CreatedAt,
	).Scan(&w.ID)
}

func (t *tx) InsertSet(ctx context.Context, set *workouts.ExerciseSet) error {
	return t.tx.QueryRow(
		ctx,
		`
			INSERT INTO exercise_sets (workout_id, name, sets, reps, top_weight, date)
			VALUES ($1, $2, $3, $4, $5::numeric, $6)
			RETURNING id;`,
		set.WorkoutID, set.Name, set.Sets, set.Reps, set.TopWeight.String(), set.Date.Time(),
	).Scan(&set.ID)
}

func (t *tx) GetWorkout(ctx context.Context, userID string, id int64) (*workouts.Workout, error) {
	rows, err := t.tx.Query(
		ctx,
		`
			SELECT id, user_id, date, type, created_at
			FROM workouts
			WHERE id = $1 AND user_id = $2
			FOR UPDATE;`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	list, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, workouts.ErrWorkoutNotFound
	}
	w := list[0]

	rows, err = t.tx.Query(
		ctx,
		`
			SELECT id, workout_id, name, sets, reps, top_weight::text, date
			FROM exercise_sets
			WHERE workout_id = $1
			ORDER BY id;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if w.Exercises, err = rows2sets(rows); err != nil {
		return nil, err
	}
	return &w, nil
}

func (t *tx) DeleteSets(ctx context.Context, workoutID int64) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM exercise_sets WHERE workout_id = $1;`, workoutID)
	return err
}

func (t *tx) DeleteWorkout(ctx context.Context, workoutID int64) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM workouts WHERE id = $1;`, workoutID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return workouts.ErrWorkoutNotFound
	}
	return nil
}
