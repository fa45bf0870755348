package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/2beens/liftlog/internal/apperr"
)

var (
	ErrExerciseExists   = errors.New("exercise already in catalog")
	ErrExerciseNotFound = errors.New("catalog exercise not found")
)

// Exercise is a name offered to the user when logging a workout.
type Exercise struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewExercise is the add request body. Its name rule matches the one for exercises logged in a workout.
type NewExercise struct {
	Name string `json:"name" validate:"required,max=100"`
}

var exerciseValidate = validator.New(validator.WithRequiredStructEnabled())

// Validate trims the name and checks it.
func (ne *NewExercise) Validate() error {
	ne.Name = strings.TrimSpace(ne.Name)
	if err := exerciseValidate.Struct(ne); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
			return apperr.Validation(err)
		}
		switch fe := validationErrs[0]; fe.Tag() {
		case "required":
			return apperr.Validationf("exercise name is required")
		case "max":
			return apperr.Validationf("exercise name must be at most %s characters", fe.Param())
		default:
			return apperr.Validation(fmt.Errorf("exercise name: %w", fe))
		}
	}
	return nil
}

type Repo interface {
	// ListExercises returns the user's catalog ordered by name.
	ListExercises(ctx context.Context, userID string) ([]Exercise, error)
	// SeedExercises inserts the names the user does not have yet.
	SeedExercises(ctx context.Context, userID string, names []string) error
	// AddExercise returns ErrExerciseExists on a duplicate name.
	AddExercise(ctx context.Context, userID, name string) (*Exercise, error)
	// DeleteExercise returns ErrExerciseNotFound when id is missing or owned by someone else.
	DeleteExercise(ctx context.Context, userID string, id int64) error
}
