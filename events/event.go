// Package events fans tournament changes out to live subscribers and the message broker.
package events

import (
	"context"
	"errors"
	"time"
)

type Type string

const (
	ScheduleRegenerated Type = "SCHEDULE_REGENERATED"
	MatchCreated        Type = "MATCH_CREATED"
	MatchUpdated        Type = "MATCH_UPDATED"
	MatchDeleted        Type = "MATCH_DELETED"
	PlayoffsSeeded      Type = "PLAYOFFS_SEEDED"
)

// Event is what subscribers receive. Payload is marshalled as JSON.
type Event struct {
	Type         Type      `json:"type"`
	TournamentID string    `json:"tournament_id"`
	Payload      any       `json:"payload,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func New(t Type, tournamentID string, payload any) Event {
	return Event{
		Type:         t,
		TournamentID: tournamentID,
		Payload:      payload,
		OccurredAt:   time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi publishes to every sink and joins their errors. One failing sink does not stop the others.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// RoomFor names the websocket room of a tournament.
func RoomFor(tournamentID string) string {
	return "tournament_" + tournamentID
}
