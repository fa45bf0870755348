package records

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

// Engine keeps profiles and PR history in line with the ledger.
// It holds no state of its own, every call works on the Store it is given.
type Engine struct {
	metrics *metrics.Manager
}

func NewEngine(metricsManager *metrics.Manager) *Engine {
	return &Engine{
		metrics: metricsManager,
	}
}

// OnAdd reacts to sets that were just inserted, in request order.
func (e *Engine) OnAdd(ctx context.Context, st Store, userID string, sets []LiftedSet) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.engine.onAdd")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("sets", len(sets)))

	if len(sets) == 0 {
		return nil
	}

	if err := st.LockExercises(ctx, userID, SortedNames(sets)); err != nil {
		return fmt.Errorf("lock exercises: %w", err)
	}

	for _, set := range sets {
		if err := e.applyOne(ctx, st, userID, set); err != nil {
			return fmt.Errorf("apply %s: %w", set.Name, err)
		}
	}

	return nil
}

func (e *Engine) applyOne(ctx context.Context, st Store, userID string, set LiftedSet) error {
	current, err := st.GetProfile(ctx, userID, set.Name)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			return fmt.Errorf("get profile: %w", err)
		}
		current = nil
	}

	decision := ApplyAdd(current, userID, set)
	log.Tracef("pr engine: user %s, %s %s on %s: %s", userID, set.Name, set.TopWeight, set.Date, decision.Outcome)

	if decision.Outcome == Unchanged {
		return nil
	}

	if decision.PR != nil {
		if err := st.UpsertPR(ctx, *decision.PR); err != nil {
			return fmt.Errorf("upsert pr: %w", err)
		}
		e.metrics.CounterPRsSet.Inc()
	}
	if err := st.SaveProfile(ctx, decision.Profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	return nil
}

// OnDelete rebuilds the state of every given name from the surviving sets.
// It must run after the deleted sets are gone from the store.
func (e *Engine) OnDelete(ctx context.Context, st Store, userID string, names []string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.engine.onDelete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	lockOrder := SortNames(names)
	if len(lockOrder) == 0 {
		return nil
	}
	if err := st.LockExercises(ctx, userID, lockOrder); err != nil {
		return fmt.Errorf("lock exercises: %w", err)
	}

	for _, name := range lockOrder {
		e.metrics.CounterRecomputations.WithLabelValues("delete").Inc()
		if err := e.recompute(ctx, st, userID, name); err != nil {
			return fmt.Errorf("recompute %s: %w", name, err)
		}
	}

	return nil
}

func (e *Engine) recompute(ctx context.Context, st Store, userID, name string) error {
	live, err := st.LiveSets(ctx, userID, name)
	if err != nil {
		return fmt.Errorf("live sets: %w", err)
	}

	profile, prs := Recompute(userID, name, live)

	if err := st.DeletePRs(ctx, userID, name); err != nil {
		return fmt.Errorf("delete prs: %w", err)
	}

	if profile == nil {
		log.Debugf("pr engine: no %s sets left for user %s, dropping profile", name, userID)
		if err := st.DeleteProfile(ctx, userID, name); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		return nil
	}

	for _, pr := range prs {
		if err := st.UpsertPR(ctx, pr); err != nil {
			return fmt.Errorf("upsert pr: %w", err)
		}
	}
	if err := st.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	return nil
}
