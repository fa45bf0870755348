package pgstore

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/gymstats/catalog"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

func (s *Store) ListExercises(ctx context.Context, userID string) (_ []catalog.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.Query(
		ctx,
		`
			SELECT id, user_id, name, created_at
			FROM catalog_exercises
			WHERE user_id = $1
			ORDER BY name;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []catalog.Exercise
	for rows.Next() {
		var ex catalog.Exercise
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Name, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		ex.CreatedAt = ex.CreatedAt.UTC()
		list = append(list, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("exercises.count", len(list)))
	return list, nil
}

func (s *Store) SeedExercises(ctx context.Context, userID string, names []string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.seed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercises.count", len(names)))

	if len(names) == 0 {
		return nil
	}
	_, err = s.db.Exec(
		ctx,
		`
			INSERT INTO catalog_exercises (user_id, name, created_at)
			SELECT $1, n, $3 FROM unnest($2::text[]) AS n
			ON CONFLICT ON CONSTRAINT uq_catalog_user_name DO NOTHING;`,
		userID, names, time.Now().UTC(),
	)
	return err
}

func (s *Store) AddExercise(ctx context.Context, userID, name string) (_ *catalog.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ex := &catalog.Exercise{
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	err = s.db.QueryRow(
		ctx,
		`
			INSERT INTO catalog_exercises (user_id, name, created_at)
			VALUES ($1, $2, $3)
			RETURNING id;`,
		ex.UserID, ex.Name, ex.CreatedAt,
	).Scan(&ex.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, catalog.ErrExerciseExists
		}
		return nil, err
	}
	return ex, nil
}

func (s *Store) DeleteExercise(ctx context.Context, userID string, id int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("exercise.id", id))

	tag, err := s.db.Exec(
		ctx,
		`DELETE FROM catalog_exercises WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrExerciseNotFound
	}
	return nil
}
