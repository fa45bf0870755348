package catalog

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

type Service struct {
	repo      Repo
	baseNames []string
}

func NewService(repo Repo, baseNames []string) *Service {
	return &Service{
		repo:      repo,
		baseNames: baseNames,
	}
}

// List returns the user's catalog, seeding the base list when the catalog is empty.
func (s *Service) List(ctx context.Context, userID string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, apperr.Authentication(nil)
	}

	list, err := s.repo.ListExercises(ctx, userID)
	if err != nil {
		return nil, apperr.Store("list catalog", err)
	}
	if len(list) > 0 || len(s.baseNames) == 0 {
		return nonNil(list), nil
	}

	log.Debugf("seeding exercise catalog for user %s", userID)
	if err := s.repo.SeedExercises(ctx, userID, s.baseNames); err != nil {
		return nil, apperr.Store("seed catalog", err)
	}

	list, err = s.repo.ListExercises(ctx, userID)
	if err != nil {
		return nil, apperr.Store("list catalog", err)
	}
	return nonNil(list), nil
}

func (s *Service) Add(ctx context.Context, userID, name string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, apperr.Authentication(nil)
	}
	req := NewExercise{Name: name}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	name = req.Name

	ex, err := s.repo.AddExercise(ctx, userID, name)
	if err != nil {
		if errors.Is(err, ErrExerciseExists) {
			return nil, apperr.Conflict("exercise "+name+" already exists", err)
		}
		return nil, apperr.Store("add catalog exercise", err)
	}
	return ex, nil
}

// Delete removes a catalog entry. Logged sets and records of that name stay.
func (s *Service) Delete(ctx context.Context, userID string, id int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return apperr.Authentication(nil)
	}

	if err := s.repo.DeleteExercise(ctx, userID, id); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			return apperr.NotFound("exercise")
		}
		return apperr.Store("delete catalog exercise", err)
	}
	return nil
}

func nonNil(list []Exercise) []Exercise {
	if list == nil {
		return []Exercise{}
	}
	return list
}
