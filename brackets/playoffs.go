package brackets

import (
	"errors"
	"fmt"
)

// SemifinalSize is the number of teams that qualify for the playoffs.
const SemifinalSize = 4

// PlayoffResult is the outcome of one knockout match.
type PlayoffResult struct {
	Team1ID  string
	Team2ID  string
	WinnerID *string
}

// SeedPlayoffs pairs the top size teams of a ranked list, highest seed against lowest:
// 1 v size, 2 v size-1 and so on. size must be a power of two.
func SeedPlayoffs(ranked []string, size int) ([]Pair, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("playoff size must be a power of two, got %d", size)
	}
	if len(ranked) < size {
		return nil, fmt.Errorf("%w: playoffs need %d ranked teams, found %d", ErrInsufficientTeams, size, len(ranked))
	}

	seeds := ranked[:size]
	pairs := make([]Pair, 0, size/2)
	for i := 0; i < size/2; i++ {
		pairs = append(pairs, Pair{Team1ID: seeds[i], Team2ID: seeds[size-1-i]})
	}
	return pairs, nil
}

func SeedSemifinals(ranked []string) ([]Pair, error) {
	return SeedPlayoffs(ranked, SemifinalSize)
}

// SeedFinal pairs the winners of the two semifinals in the order the semifinals were seeded.
func SeedFinal(semis []PlayoffResult) (Pair, error) {
	if len(semis) != 2 {
		return Pair{}, fmt.Errorf("final needs exactly 2 semifinals, found %d", len(semis))
	}

	winners := make([]string, 0, 2)
	for i, m := range semis {
		if m.WinnerID == nil || *m.WinnerID == "" {
			return Pair{}, fmt.Errorf("%w: semifinal %d (%s vs %s)", ErrPlayoffUndecided, i+1, m.Team1ID, m.Team2ID)
		}
		if *m.WinnerID != m.Team1ID && *m.WinnerID != m.Team2ID {
			return Pair{}, errors.New("semifinal winner is not one of its teams")
		}
		winners = append(winners, *m.WinnerID)
	}

	return Pair{Team1ID: winners[0], Team2ID: winners[1]}, nil
}
