package brackets

import (
	"context"
)

// Pair is an unordered pairing of two real teams.
type Pair struct {
	Team1ID string `json:"team1_id"`
	Team2ID string `json:"team2_id"`
}

// Round is one slate of pairings. A team appears at most once per round.
type Round []Pair

type GenerateBracketParams struct {
	TeamIDs []string
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]Round, error)

	GetName() string
}
