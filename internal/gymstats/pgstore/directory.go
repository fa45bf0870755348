package pgstore

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

func (s *Store) SetDisplayName(ctx context.Context, userID, displayName string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.directory.setName")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = s.db.Exec(
		ctx,
		`
			INSERT INTO directory_users (user_id, display_name, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (user_id) DO UPDATE
				SET display_name = EXCLUDED.display_name,
					updated_at   = EXCLUDED.updated_at;`,
		userID, displayName,
	)
	return err
}

func (s *Store) DisplayNames(ctx context.Context, userIDs []string) (_ map[string]string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.directory.names")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("users.count", len(userIDs)))

	names := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return names, nil
	}

	rows, err := s.db.Query(
		ctx,
		`SELECT user_id, display_name FROM directory_users WHERE user_id = ANY($1);`,
		userIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
