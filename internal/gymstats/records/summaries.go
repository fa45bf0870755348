package records

import (
	"context"
	"slices"
	"strings"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/gymstats/units"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

type HistoryEntry struct {
	Weight units.Weight `json:"weight"`
	Date   units.Day    `json:"date"`
}

// Summary is the per-exercise view of a user's records.
type Summary struct {
	Name         string         `json:"name"`
	CurrentMax   units.Weight   `json:"currentMax"`
	FirstPRDate  units.Day      `json:"firstPrDate"`
	LastPRDate   units.Day      `json:"lastPrDate"`
	IsBodyweight bool           `json:"isBodyweight"`
	PRHistory    []HistoryEntry `json:"prHistory"`
}

type SummaryService struct {
	reader     Reader
	bodyweight map[string]bool
}

func NewSummaryService(reader Reader, bodyweightExercises []string) *SummaryService {
	bodyweight := make(map[string]bool, len(bodyweightExercises))
	for _, name := range bodyweightExercises {
		bodyweight[name] = true
	}
	return &SummaryService{
		reader:     reader,
		bodyweight: bodyweight,
	}
}

// ProfileSummaries lists one summary per exercise the user has live sets for,
// most recent record first. PR history inside each summary is newest first.
func (s *SummaryService) ProfileSummaries(ctx context.Context, userID string) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.records.summaries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, apperr.Authentication(nil)
	}

	profiles, err := s.reader.ListProfiles(ctx, userID)
	if err != nil {
		return nil, apperr.Store("list profiles", err)
	}
	prs, err := s.reader.ListPRs(ctx, userID)
	if err != nil {
		return nil, apperr.Store("list prs", err)
	}

	history := make(map[string][]HistoryEntry, len(profiles))
	for _, pr := range prs {
		history[pr.ExerciseName] = append(history[pr.ExerciseName], HistoryEntry{
			Weight: pr.Weight,
			Date:   pr.Date,
		})
	}

	summaries := make([]Summary, 0, len(profiles))
	for _, p := range profiles {
		entries := history[p.Name]
		if entries == nil {
			entries = []HistoryEntry{}
		}
		slices.SortFunc(entries, func(a, b HistoryEntry) int {
			return b.Date.Compare(a.Date)
		})
		summaries = append(summaries, Summary{
			Name:         p.Name,
			CurrentMax:   p.HighestWeight,
			FirstPRDate:  p.FirstPRDate,
			LastPRDate:   p.LastPRDate,
			IsBodyweight: s.bodyweight[p.Name],
			PRHistory:    entries,
		})
	}

	slices.SortFunc(summaries, func(a, b Summary) int {
		if c := b.LastPRDate.Compare(a.LastPRDate); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return summaries, nil
}
