package records

import (
	"slices"

	"github.com/2beens/liftlog/internal/gymstats/units"
)

type dayMax struct {
	day    units.Day
	weight units.Weight
}

// dailyMaxes keeps the best set of every date, oldest date first.
func dailyMaxes(live []LiftedSet) []dayMax {
	perDay := make(map[units.Day]units.Weight, len(live))
	for _, s := range live {
		if cur, ok := perDay[s.Date]; !ok || s.TopWeight > cur {
			perDay[s.Date] = s.TopWeight
		}
	}

	days := make([]dayMax, 0, len(perDay))
	for d, w := range perDay {
		days = append(days, dayMax{day: d, weight: w})
	}
	slices.SortFunc(days, func(a, b dayMax) int {
		return a.day.Compare(b.day)
	})
	return days
}

// ProfileOf derives the profile of one exercise from its live sets: the heaviest
// set plus the first and last date it was lifted. It returns nil without sets.
func ProfileOf(userID, name string, live []LiftedSet) *Profile {
	days := dailyMaxes(live)
	if len(days) == 0 {
		return nil
	}

	profile := &Profile{UserID: userID, Name: name}
	for i, dm := range days {
		switch {
		case i == 0 || dm.weight > profile.HighestWeight:
			profile.HighestWeight = dm.weight
			profile.FirstPRDate = dm.day
			profile.LastPRDate = dm.day
		case dm.weight == profile.HighestWeight:
			profile.LastPRDate = dm.day
		}
	}
	return profile
}

// Recompute rebuilds one exercise from its live sets. The history gets one PR per
// distinct date, carrying the best set of that date. It returns nil, nil when
// there are no live sets.
func Recompute(userID, name string, live []LiftedSet) (*Profile, []PR) {
	profile := ProfileOf(userID, name, live)
	if profile == nil {
		return nil, nil
	}

	days := dailyMaxes(live)
	prs := make([]PR, 0, len(days))
	for _, dm := range days {
		prs = append(prs, PR{
			UserID:       userID,
			ExerciseName: name,
			Weight:       dm.weight,
			Date:         dm.day,
		})
	}
	return profile, prs
}

type Outcome int

const (
	// Unchanged means the set neither beat nor widened the current best.
	Unchanged Outcome = iota
	// Created means this is the first set of the exercise.
	Created
	// NewRecord means the set beat the current best.
	NewRecord
	// Tie means the set matched the current best outside its date window.
	Tie
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Created:
		return "created"
	case NewRecord:
		return "new_record"
	case Tie:
		return "tie"
	default:
		return "unknown"
	}
}

// AddDecision is what ApplyAdd asks the caller to persist.
// Profile is set for Created, NewRecord and Tie. PR is set for Created and NewRecord.
type AddDecision struct {
	Outcome Outcome
	Profile *Profile
	PR      *PR
}

// ApplyAdd folds one new set into the current profile (nil when none exists).
// The resulting profile always equals ProfileOf over the live sets, whatever the
// set's date. A PR is written only when the set strictly beats the current best,
// so the history built by adds depends on the order sets were logged in.
func ApplyAdd(current *Profile, userID string, set LiftedSet) AddDecision {
	newRecord := func() *PR {
		return &PR{
			UserID:       userID,
			ExerciseName: set.Name,
			Weight:       set.TopWeight,
			Date:         set.Date,
		}
	}

	if current == nil {
		return AddDecision{
			Outcome: Created,
			Profile: &Profile{
				UserID:        userID,
				Name:          set.Name,
				HighestWeight: set.TopWeight,
				FirstPRDate:   set.Date,
				LastPRDate:    set.Date,
			},
			PR: newRecord(),
		}
	}

	updated := *current
	switch {
	case set.TopWeight > current.HighestWeight:
		updated.HighestWeight = set.TopWeight
		updated.FirstPRDate = set.Date
		updated.LastPRDate = set.Date
		return AddDecision{Outcome: NewRecord, Profile: &updated, PR: newRecord()}
	case set.TopWeight == current.HighestWeight:
		switch {
		case set.Date.After(current.LastPRDate):
			updated.LastPRDate = set.Date
		case set.Date.Before(current.FirstPRDate):
			updated.FirstPRDate = set.Date
		default:
			return AddDecision{Outcome: Unchanged}
		}
		return AddDecision{Outcome: Tie, Profile: &updated}
	default:
		return AddDecision{Outcome: Unchanged}
	}
}

// SortedNames returns the distinct names of sets in lock order.
func SortedNames(sets []LiftedSet) []string {
	names := make([]string, 0, len(sets))
	for _, s := range sets {
		names = append(names, s.Name)
	}
	return SortNames(names)
}

func SortNames(names []string) []string {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
