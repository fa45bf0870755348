// Package pgstore keeps the gymstats state in Postgres.
package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/gymstats/catalog"
	"github.com/2beens/liftlog/internal/gymstats/leaderboard"
	"github.com/2beens/liftlog/internal/gymstats/records"
	"github.com/2beens/liftlog/internal/gymstats/units"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

var (
	_ workouts.Repo      = (*Store)(nil)
	_ workouts.Tx        = (*tx)(nil)
	_ records.Reader     = (*Store)(nil)
	_ catalog.Repo       = (*Store)(nil)
	_ auth.Directory     = (*Store)(nil)
	_ leaderboard.Source = (*Store)(nil)
)

type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx workouts.Tx) error) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tx")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pgTx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err = fn(ctx, &tx{tx: pgTx}); err != nil {
		if rbErr := pgTx.Rollback(ctx); rbErr != nil {
			err = multierr.Append(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err = pgTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) ListWorkouts(ctx context.Context, userID string) (_ []workouts.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.Query(
		ctx,
		`
			SELECT id, user_id, date, type, created_at
			FROM workouts
			WHERE user_id = $1
			ORDER BY date DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	list, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("workouts.count", len(list)))
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]int64, len(list))
	byID := make(map[int64]int, len(list))
	for i, w := range list {
		ids[i] = w.ID
		byID[w.ID] = i
	}

	rows, err = s.db.Query(
		ctx,
		`
			SELECT id, workout_id, name, sets, reps, top_weight::text, date
			FROM exercise_sets
			WHERE workout_id = ANY($1)
			ORDER BY id;`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	sets, err := rows2sets(rows)
	if err != nil {
		return nil, err
	}
	for _, set := range sets {
		i := byID[set.WorkoutID]
		list[i].Exercises = append(list[i].Exercises, set)
	}

	return list, nil
}

func (s *Store) ListProfiles(ctx context.Context, userID string) (_ []records.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.Query(
		ctx,
		`
			SELECT id, user_id, name, highest_weight::text, first_pr_date, last_pr_date
			FROM user_exercise_profiles
			WHERE user_id = $1
			ORDER BY name;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return rows2profiles(rows)
}

func (s *Store) ListPRs(ctx context.Context, userID string) (_ []records.PR, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.prs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.Query(
		ctx,
		`
			SELECT id, user_id, exercise_name, weight::text, date
			FROM pr_records
			WHERE user_id = $1
			ORDER BY exercise_name, date;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return rows2prs(rows)
}

// PRsForExercise returns the PR history of every user for one exercise.
func (s *Store) PRsForExercise(ctx context.Context, name string) (_ []records.PR, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.prs.exercise")
	span.SetAttributes(attribute.String("exercise", name))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.Query(
		ctx,
		`
			SELECT id, user_id, exercise_name, weight::text, date
			FROM pr_records
			WHERE exercise_name = $1
			ORDER BY date, user_id;`,
		name,
	)
	if err != nil {
		return nil, err
	}
	return rows2prs(rows)
}

func rows2workouts(rows pgx.Rows) ([]workouts.Workout, error) {
	defer rows.Close()

	list := []workouts.Workout{}
	for rows.Next() {
		var (
			w         workouts.Workout
			date      time.Time
			wType     string
			createdAt time.Time
		)
		if err := rows.Scan(&w.ID, &w.UserID, &date, &wType, &createdAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.Date = units.DayOf(date)
		w.Type = workouts.WorkoutType(wType)
		w.CreatedAt = createdAt.UTC()
		list = append(list, w)
	}
	return list, rows.Err()
}

func rows2sets(rows pgx.Rows) ([]workouts.ExerciseSet, error) {
	defer rows.Close()

	var sets []workouts.ExerciseSet
	for rows.Next() {
		var (
			set    workouts.ExerciseSet
			weight string
			date   time.Time
		)
		if err := rows.Scan(&set.ID, &set.WorkoutID, &set.Name, &set.Sets, &set.Reps, &weight, &date); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w, err := units.ParseWeight(weight)
		if err != nil {
			return nil, fmt.Errorf("set %d weight: %w", set.ID, err)
		}
		set.TopWeight = w
		set.Date = units.DayOf(date)
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

func rows2profiles(rows pgx.Rows) ([]records.Profile, error) {
	defer rows.Close()

	var profiles []records.Profile
	for rows.Next() {
		var (
			p               records.Profile
			weight          string
			first, lastDate time.Time
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &weight, &first, &lastDate); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w, err := units.ParseWeight(weight)
		if err != nil {
			return nil, fmt.Errorf("profile %d weight: %w", p.ID, err)
		}
		p.HighestWeight = w
		p.FirstPRDate = units.DayOf(first)
		p.LastPRDate = units.DayOf(lastDate)
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func rows2prs(rows pgx.Rows) ([]records.PR, error) {
	defer rows.Close()

	var prs []records.PR
	for rows.Next() {
		var (
			pr     records.PR
			weight string
			date   time.Time
		)
		if err := rows.Scan(&pr.ID, &pr.UserID, &pr.ExerciseName, &weight, &date); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w, err := units.ParseWeight(weight)
		if err != nil {
			return nil, fmt.Errorf("pr %d weight: %w", pr.ID, err)
		}
		pr.Weight = w
		pr.Date = units.DayOf(date)
		prs = append(prs, pr)
	}
	return prs, rows.Err()
}
