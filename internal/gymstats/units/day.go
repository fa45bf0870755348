package units

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const DayLayout = time.DateOnly

var ErrInvalidDay = errors.New("invalid date, expected YYYY-MM-DD")

// Day is a calendar date without a time of day, always held as UTC midnight.
type Day struct {
	t time.Time
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return Day{t: t.UTC()}, nil
}

func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DayOf truncates t to its calendar date in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Day) Time() time.Time {
	return d.t
}

func (d Day) IsZero() bool {
	return d.t.IsZero()
}

func (d Day) Before(o Day) bool {
	return d.t.Before(o.t)
}

func (d Day) After(o Day) bool {
	return d.t.After(o.t)
}

func (d Day) Equal(o Day) bool {
	return d.t.Equal(o.t)
}

// Compare returns -1, 0 or +1.
func (d Day) Compare(o Day) int {
	return d.t.Compare(o.t)
}

func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

func (d Day) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DayLayout)
}

func MaxDay(a, b Day) Day {
	if a.After(b) {
		return a
	}
	return b
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDay, data)
	}
	if s == "" {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
