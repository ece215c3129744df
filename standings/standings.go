// Package standings ranks tournament teams from match results.
package standings

import (
	"context"
	"math"
	"sort"

	"github.com/Dosada05/doubles-tournament/models"
	"golang.org/x/sync/errgroup"
)

// PointsPerWin is the ranking value of a win. Losses are worth nothing.
const PointsPerWin = 3

// Team is the minimal team identity the table needs.
type Team struct {
	ID   string
	Name string
}

// MatchResult is a read-only view of a played (or not yet played) match.
type MatchResult struct {
	Team1ID     string
	Team2ID     string
	Team1Points int
	Team2Points int
	WinnerID    *string
}

// Compute builds one standing per team and ranks them by ranking points, point difference,
// points for (all descending) and points against (ascending). Teams still tied keep input order.
func Compute(teams []Team, matches []MatchResult) []models.Standing {
	table := make([]models.Standing, len(teams))
	for i, team := range teams {
		table[i] = fold(team, matches)
	}
	Rank(table)
	return table
}

// ComputeParallel gives the same result as Compute but folds each team in its own goroutine.
func ComputeParallel(ctx context.Context, teams []Team, matches []MatchResult) ([]models.Standing, error) {
	table := make([]models.Standing, len(teams))

	g, gCtx := errgroup.WithContext(ctx)
	for i, team := range teams {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			table[i] = fold(team, matches)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	Rank(table)
	return table, nil
}

// Rank sorts a table in place using the tie-break chain.
func Rank(table []models.Standing) {
	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.RankingPoints != b.RankingPoints {
			return a.RankingPoints > b.RankingPoints
		}
		if a.PointDiff != b.PointDiff {
			return a.PointDiff > b.PointDiff
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor > b.PointsFor
		}
		return a.PointsAgainst < b.PointsAgainst
	})
}

func fold(team Team, matches []MatchResult) models.Standing {
	s := models.Standing{TeamID: team.ID, TeamName: team.Name}

	for _, m := range matches {
		var scored, conceded int
		switch team.ID {
		case m.Team1ID:
			scored, conceded = m.Team1Points, m.Team2Points
		case m.Team2ID:
			scored, conceded = m.Team2Points, m.Team1Points
		default:
			continue
		}

		s.PointsFor += scored
		s.PointsAgainst += conceded

		if m.WinnerID != nil && *m.WinnerID != "" {
			if *m.WinnerID == team.ID {
				s.Wins++
			} else {
				s.Losses++
			}
		}
	}

	if decided := s.Wins + s.Losses; decided > 0 {
		s.WinPct = math.Round(float64(s.Wins)/float64(decided)*1000) / 1000
	}
	s.PointDiff = s.PointsFor - s.PointsAgainst
	s.RankingPoints = s.Wins * PointsPerWin
	return s
}

// FromModels adapts persisted teams and matches to the calculator inputs.
func FromModels(teams []*models.Team, matches []*models.Match) ([]Team, []MatchResult) {
	ts := make([]Team, 0, len(teams))
	for _, t := range teams {
		if t != nil {
			ts = append(ts, Team{ID: t.ID, Name: t.Name})
		}
	}
	ms := make([]MatchResult, 0, len(matches))
	for _, m := range matches {
		if m != nil {
			ms = append(ms, MatchResult{
				Team1ID:     m.Team1ID,
				Team2ID:     m.Team2ID,
				Team1Points: m.Team1Points,
				Team2Points: m.Team2Points,
				WinnerID:    m.WinnerID,
			})
		}
	}
	return ts, ms
}
