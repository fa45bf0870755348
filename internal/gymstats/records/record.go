package records

import (
	"context"
	"errors"

	"github.com/2beens/liftlog/internal/gymstats/units"
)

//go:generate mockgen -source=$GOFILE -destination=record_mocks_test.go -package=records_test

var ErrProfileNotFound = errors.New("exercise profile not found")

// Profile is the current best of one user for one exercise name.
type Profile struct {
	ID            int64        `json:"id"`
	UserID        string       `json:"userId"`
	Name          string       `json:"name"`
	HighestWeight units.Weight `json:"highestWeight"`
	FirstPRDate   units.Day    `json:"firstPrDate"`
	LastPRDate    units.Day    `json:"lastPrDate"`
}

// PR is a single record-breaking event. At most one exists per user, exercise and date.
type PR struct {
	ID           int64        `json:"id"`
	UserID       string       `json:"userId"`
	ExerciseName string       `json:"exerciseName"`
	Weight       units.Weight `json:"weight"`
	Date         units.Day    `json:"date"`
}

// LiftedSet is the part of a logged exercise set the engine cares about.
type LiftedSet struct {
	Name      string
	TopWeight units.Weight
	Date      units.Day
}

// Store is the transaction-scoped view the engine reads and writes through.
// Every call must run in the same transaction as the ledger writes it reacts to.
type Store interface {
	// LockExercises serializes profile updates of (userID, name) until the transaction ends.
	// Names arrive sorted and deduplicated.
	LockExercises(ctx context.Context, userID string, names []string) error
	GetProfile(ctx context.Context, userID, name string) (*Profile, error)
	SaveProfile(ctx context.Context, profile *Profile) error
	DeleteProfile(ctx context.Context, userID, name string) error
	UpsertPR(ctx context.Context, pr PR) error
	DeletePRs(ctx context.Context, userID, name string) error
	LiveSets(ctx context.Context, userID, name string) ([]LiftedSet, error)
}

// Reader serves the read side: all profiles and PRs of a user.
type Reader interface {
	ListProfiles(ctx context.Context, userID string) ([]Profile, error)
	ListPRs(ctx context.Context, userID string) ([]PR, error)
}
