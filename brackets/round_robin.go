package brackets

import (
	"context"
	"fmt"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]Round, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return GenerateSchedule(params.TeamIDs)
}

// GenerateSchedule builds a single round-robin with the circle method.
// The team at position 0 stays fixed while the remaining tokens rotate one slot per round,
// so every pair of real teams meets exactly once over n-1 rounds. An odd field is padded
// with a bye token; pairs touching the bye are left out of the round.
// The output depends only on the order of teamIDs.
func GenerateSchedule(teamIDs []string) ([]Round, error) {
	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("%w: found %d, min 2 required", ErrInsufficientTeams, len(teamIDs))
	}

	seen := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTeam, id)
		}
		seen[id] = struct{}{}
	}

	// Tokens are indexes into teamIDs; the bye is the index one past the last team.
	bye := len(teamIDs)
	n := len(teamIDs)
	if n%2 != 0 {
		n++
	}

	ring := make([]int, n-1)
	for i := range ring {
		ring[i] = i + 1
	}
	ringLen := len(ring)

	// slot returns the token sitting at position pos in round r.
	slot := func(pos, r int) int {
		if pos == 0 {
			return 0
		}
		idx := ((pos-1-r)%ringLen + ringLen) % ringLen
		return ring[idx]
	}

	rounds := make([]Round, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := make(Round, 0, n/2)
		for i := 0; i < n/2; i++ {
			t1 := slot(i, r)
			t2 := slot(n-1-i, r)
			if t1 == bye || t2 == bye {
				continue
			}
			round = append(round, Pair{Team1ID: teamIDs[t1], Team2ID: teamIDs[t2]})
		}
		rounds = append(rounds, round)
	}

	return rounds, nil
}
