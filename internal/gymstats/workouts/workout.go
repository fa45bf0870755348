package workouts

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/gymstats/records"
	"github.com/2beens/liftlog/internal/gymstats/units"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type WorkoutType string

const (
	TypePush      WorkoutType = "push"
	TypePull      WorkoutType = "pull"
	TypeLegs      WorkoutType = "legs"
	TypeUpper     WorkoutType = "upper"
	TypeLower     WorkoutType = "lower"
	TypeArms      WorkoutType = "arms"
	TypeShoulders WorkoutType = "shoulders"
	TypeFull      WorkoutType = "full"
)

var workoutTypes = map[WorkoutType]bool{
	TypePush: true, TypePull: true, TypeLegs: true, TypeUpper: true,
	TypeLower: true, TypeArms: true, TypeShoulders: true, TypeFull: true,
}

func (t WorkoutType) Valid() bool {
	return workoutTypes[t]
}

type Workout struct {
	ID        int64         `json:"id"`
	UserID    string        `json:"userId"`
	Date      units.Day     `json:"date"`
	Type      WorkoutType   `json:"type"`
	CreatedAt time.Time     `json:"createdAt"`
	Exercises []ExerciseSet `json:"exercises"`
}

// ExerciseSet is one logged exercise. Date is copied from the parent workout.
type ExerciseSet struct {
	ID        int64        `json:"id"`
	WorkoutID int64        `json:"workoutId"`
	Name      string       `json:"name"`
	Sets      int          `json:"sets"`
	Reps      int          `json:"reps"`
	TopWeight units.Weight `json:"topWeight"`
	Date      units.Day    `json:"date"`
}

func (s ExerciseSet) Lifted() records.LiftedSet {
	return records.LiftedSet{
		Name:      s.Name,
		TopWeight: s.TopWeight,
		Date:      s.Date,
	}
}

// NewWorkout is the create request as it arrives from a client.
type NewWorkout struct {
	Date      string        `json:"date" validate:"required,day"`
	Type      string        `json:"type" validate:"required,workout_type"`
	Exercises []NewExercise `json:"exercises" validate:"required,min=1,dive"`
}

type NewExercise struct {
	Name      string       `json:"name" validate:"required,max=100"`
	Sets      int          `json:"sets" validate:"gt=0,lte=1000"`
	Reps      int          `json:"reps" validate:"gt=0,lte=10000"`
	TopWeight units.Weight `json:"topWeight" validate:"gt=0,lte=99999"`
}

var workoutValidate *validator.Validate

func init() {
	workoutValidate = validator.New(validator.WithRequiredStructEnabled())
	workoutValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = workoutValidate.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, err := units.ParseDay(fl.Field().String())
		return err == nil
	})
	_ = workoutValidate.RegisterValidation("workout_type", func(fl validator.FieldLevel) bool {
		return WorkoutType(fl.Field().String()).Valid()
	})
}

// Validate trims names and checks every field before anything is written.
func (nw *NewWorkout) Validate() error {
	nw.Date = strings.TrimSpace(nw.Date)
	nw.Type = strings.ToLower(strings.TrimSpace(nw.Type))
	for i := range nw.Exercises {
		nw.Exercises[i].Name = strings.TrimSpace(nw.Exercises[i].Name)
	}

	if err := workoutValidate.Struct(nw); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return apperr.Validationf("%s", describe(validationErrs[0]))
		}
		return apperr.Validation(err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, after, ok := strings.Cut(field, "."); ok {
		field = after
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must not be empty", field)
	case "day":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date, got %q", field, fe.Value())
	case "workout_type":
		return fmt.Sprintf("%s %q is not a known workout type", field, fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be positive", field)
	case "lte", "max":
		if w, ok := fe.Value().(units.Weight); ok {
			return fmt.Sprintf("%s %s exceeds the maximum of %s", field, w, units.MaxWeight)
		}
		return fmt.Sprintf("%s exceeds the maximum of %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
