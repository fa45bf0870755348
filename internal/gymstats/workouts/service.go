package workouts

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/gymstats/records"
	"github.com/2beens/liftlog/internal/gymstats/units"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

// Tx is the ledger and PR state inside one transaction.
type Tx interface {
	records.Store
	InsertWorkout(ctx context.Context, w *Workout) error
	InsertSet(ctx context.Context, set *ExerciseSet) error
	// GetWorkout returns ErrWorkoutNotFound when the workout is missing or owned by someone else.
	GetWorkout(ctx context.Context, userID string, id int64) (*Workout, error)
	DeleteSets(ctx context.Context, workoutID int64) error
	DeleteWorkout(ctx context.Context, workoutID int64) error
}

type Repo interface {
	// InTx commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	ListWorkouts(ctx context.Context, userID string) ([]Workout, error)
}

// LeaderboardInvalidator drops cached leaderboards after a committed mutation.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo        Repo
	engine      *records.Engine
	invalidator LeaderboardInvalidator
	metrics     *metrics.Manager
	now         func() time.Time
}

func NewService(
	repo Repo,
	engine *records.Engine,
	invalidator LeaderboardInvalidator,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:        repo,
		engine:      engine,
		invalidator: invalidator,
		metrics:     metricsManager,
		now:         time.Now,
	}
}

// CreateWorkout stores the workout with its sets and updates PR state in one transaction.
func (s *Service) CreateWorkout(ctx context.Context, userID string, in NewWorkout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, apperr.Authentication(nil)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	day, err := units.ParseDay(in.Date)
	if err != nil {
		return nil, apperr.Validation(err)
	}

	workout := &Workout{
		UserID:    userID,
		Date:      day,
		Type:      WorkoutType(in.Type),
		CreatedAt: s.now().UTC(),
	}
	span.SetAttributes(
		attribute.String("workout.date", day.String()),
		attribute.Int("workout.exercises", len(in.Exercises)),
	)

	if err := s.repo.InTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.InsertWorkout(ctx, workout); err != nil {
			return apperr.Store("insert workout", err)
		}

		lifted := make([]records.LiftedSet, 0, len(in.Exercises))
		for _, ex := range in.Exercises {
			set := ExerciseSet{
				WorkoutID: workout.ID,
				Name:      ex.Name,
				Sets:      ex.Sets,
				Reps:      ex.Reps,
				TopWeight: ex.TopWeight,
				Date:      day,
			}
			if err := tx.InsertSet(ctx, &set); err != nil {
				return apperr.Store("insert exercise set", err)
			}
			workout.Exercises = append(workout.Exercises, set)
			lifted = append(lifted, set.Lifted())
		}

		if err := s.engine.OnAdd(ctx, tx, userID, lifted); err != nil {
			return apperr.Store("update records", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.metrics.CounterWorkoutsAdded.Inc()
	s.invalidateLeaderboard(ctx)
	log.Debugf("workout %d stored for user %s with %d exercises", workout.ID, userID, len(workout.Exercises))

	return workout, nil
}

// DeleteWorkout removes the workout, its sets, and rebuilds PR state of every touched exercise.
func (s *Service) DeleteWorkout(ctx context.Context, userID string, workoutID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("workout.id", workoutID))

	if userID == "" {
		return apperr.Authentication(nil)
	}

	if err := s.repo.InTx(ctx, func(ctx context.Context, tx Tx) error {
		workout, err := tx.GetWorkout(ctx, userID, workoutID)
		if err != nil {
			if errors.Is(err, ErrWorkoutNotFound) {
				return apperr.NotFound("workout")
			}
			return apperr.Store("get workout", err)
		}

		names := make([]string, 0, len(workout.Exercises))
		for _, set := range workout.Exercises {
			names = append(names, set.Name)
		}

		if err := tx.DeleteSets(ctx, workout.ID); err != nil {
			return apperr.Store("delete exercise sets", err)
		}
		if err := s.engine.OnDelete(ctx, tx, userID, names); err != nil {
			return apperr.Store("recompute records", err)
		}
		if err := tx.DeleteWorkout(ctx, workout.ID); err != nil {
			return apperr.Store("delete workout", err)
		}
		return nil
	}); err != nil {
		return err
	}

	s.metrics.CounterWorkoutsDeleted.Inc()
	s.invalidateLeaderboard(ctx)
	log.Debugf("workout %d deleted for user %s", workoutID, userID)

	return nil
}

// ListWorkouts returns the user's workouts, newest first, with their sets.
func (s *Service) ListWorkouts(ctx context.Context, userID string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, apperr.Authentication(nil)
	}

	list, err := s.repo.ListWorkouts(ctx, userID)
	if err != nil {
		return nil, apperr.Store("list workouts", err)
	}
	if list == nil {
		list = []Workout{}
	}
	return list, nil
}

func (s *Service) invalidateLeaderboard(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil {
		log.Warnf("invalidate leaderboard cache: %s", err)
	}
}
