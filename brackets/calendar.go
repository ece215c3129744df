package brackets

import (
	"fmt"
	"time"

	"github.com/Dosada05/doubles-tournament/models"
)

// DefaultMaxDaySearch bounds how far ahead the assigner looks for a playable day.
const DefaultMaxDaySearch = 14

// CapacityProfile maps a weekday to the number of matches that can be played on it.
type CapacityProfile map[time.Weekday]int

// For returns the capacity of the weekday d falls on. Missing weekdays have no capacity.
func (c CapacityProfile) For(d models.Date) int {
	return c[d.Weekday()]
}

// Validate rejects negative capacities, unknown weekdays and a week with no capacity at all.
func (c CapacityProfile) Validate() error {
	total := 0
	for day, capacity := range c {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range 0..6", ErrInvalidCapacity, int(day))
		}
		if capacity < 0 {
			return fmt.Errorf("%w: negative capacity %d for %s", ErrInvalidCapacity, capacity, day)
		}
		total += capacity
	}
	if total == 0 {
		return ErrZeroCapacity
	}
	return nil
}

// ScheduledMatch is a dated pairing ready to be persisted. Points start at zero.
type ScheduledMatch struct {
	Round       int         `json:"round"`
	Team1ID     string      `json:"team1_id"`
	Team2ID     string      `json:"team2_id"`
	PlayDate    models.Date `json:"play_date"`
	Team1Points int         `json:"team1_points"`
	Team2Points int         `json:"team2_points"`
}

type DateAssigner struct {
	MaxDaySearch int
}

func NewDateAssigner(maxDaySearch int) *DateAssigner {
	if maxDaySearch <= 0 {
		maxDaySearch = DefaultMaxDaySearch
	}
	return &DateAssigner{MaxDaySearch: maxDaySearch}
}

// AssignDates places rounds on the calendar with the default search bound.
func AssignDates(rounds []Round, start models.Date, capacity CapacityProfile) ([]ScheduledMatch, error) {
	return NewDateAssigner(DefaultMaxDaySearch).AssignDates(rounds, start, capacity)
}

// AssignDates walks a cursor forward from start and fills each day up to its weekday capacity,
// round by round. A round only spills onto a later day once the current day is full, and the
// next round may start on the same day if capacity is left over.
func (a *DateAssigner) AssignDates(rounds []Round, start models.Date, capacity CapacityProfile) ([]ScheduledMatch, error) {
	if err := capacity.Validate(); err != nil {
		return nil, err
	}
	if start.IsZero() {
		return nil, ErrInvalidStartDate
	}

	total := 0
	for _, round := range rounds {
		total += len(round)
	}
	scheduled := make([]ScheduledMatch, 0, total)
	perDay := make(map[models.Date]int)

	cursor := start
	var err error

	for r, round := range rounds {
		queue := round
		for len(queue) > 0 {
			free := capacity.For(cursor) - perDay[cursor]
			if free <= 0 {
				if cursor, err = a.nextPlayableDay(cursor, capacity); err != nil {
					return nil, err
				}
				continue
			}

			take := min(free, len(queue))
			for _, p := range queue[:take] {
				scheduled = append(scheduled, ScheduledMatch{
					Round:    r + 1,
					Team1ID:  p.Team1ID,
					Team2ID:  p.Team2ID,
					PlayDate: cursor,
				})
			}
			perDay[cursor] += take
			queue = queue[take:]

			if len(queue) > 0 {
				if cursor, err = a.nextPlayableDay(cursor, capacity); err != nil {
					return nil, err
				}
			}
		}

		// The last round has nobody waiting for the next day.
		if r == len(rounds)-1 {
			break
		}
		if perDay[cursor] >= capacity.For(cursor) {
			if cursor, err = a.nextPlayableDay(cursor, capacity); err != nil {
				return nil, err
			}
		}
	}

	return scheduled, nil
}

func (a *DateAssigner) nextPlayableDay(from models.Date, capacity CapacityProfile) (models.Date, error) {
	limit := a.MaxDaySearch
	if limit <= 0 {
		limit = DefaultMaxDaySearch
	}
	for step := 1; step <= limit; step++ {
		d := from.AddDays(step)
		if capacity.For(d) > 0 {
			return d, nil
		}
	}
	return models.Date{}, fmt.Errorf("%w: nothing after %s within %d days", ErrNoValidDayFound, from, limit)
}
