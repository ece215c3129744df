package standings

import (
	"context"
	"reflect"
	"testing"

	"github.com/Dosada05/doubles-tournament/models"
)

func winner(id string) *string { return &id }

func order(table []models.Standing) []string {
	ids := make([]string, len(table))
	for i, s := range table {
		ids[i] = s.TeamID
	}
	return ids
}

func TestComputeSingleMatch(t *testing.T) {
	teams := []Team{{ID: "B", Name: "Bravo"}, {ID: "A", Name: "Alpha"}}
	matches := []MatchResult{
		{Team1ID: "A", Team2ID: "B", Team1Points: 21, Team2Points: 15, WinnerID: winner("A")},
	}

	table := Compute(teams, matches)

	expected := []models.Standing{
		{TeamID: "A", TeamName: "Alpha", Wins: 1, Losses: 0, WinPct: 1, PointsFor: 21, PointsAgainst: 15, PointDiff: 6, RankingPoints: 3},
		{TeamID: "B", TeamName: "Bravo", Wins: 0, Losses: 1, WinPct: 0, PointsFor: 15, PointsAgainst: 21, PointDiff: -6, RankingPoints: 0},
	}
	if !reflect.DeepEqual(table, expected) {
		t.Errorf("table = %+v, want %+v", table, expected)
	}
}

func TestComputeUndecidedMatchesCountPointsOnly(t *testing.T) {
	teams := []Team{{ID: "A"}, {ID: "B"}}
	matches := []MatchResult{
		{Team1ID: "A", Team2ID: "B"},
		{Team1ID: "B", Team2ID: "A", Team1Points: 11, Team2Points: 9, WinnerID: winner("")},
	}

	table := Compute(teams, matches)
	for _, s := range table {
		if s.Wins != 0 || s.Losses != 0 || s.WinPct != 0 || s.RankingPoints != 0 {
			t.Errorf("%s has a decided record: %+v", s.TeamID, s)
		}
	}
	if table[0].TeamID != "B" || table[0].PointsFor != 11 || table[0].PointsAgainst != 9 {
		t.Errorf("first row = %+v, want B with 11-9", table[0])
	}
}

func TestComputeTeamsWithoutMatches(t *testing.T) {
	teams := []Team{{ID: "idle", Name: "Idle"}, {ID: "A"}, {ID: "B"}}
	matches := []MatchResult{
		{Team1ID: "A", Team2ID: "B", Team1Points: 21, Team2Points: 19, WinnerID: winner("A")},
	}

	table := Compute(teams, matches)
	if len(table) != 3 {
		t.Fatalf("got %d rows, want 3", len(table))
	}
	if got := order(table); !reflect.DeepEqual(got, []string{"A", "idle", "B"}) {
		t.Errorf("order = %v", got)
	}
	idle := table[1]
	if idle != (models.Standing{TeamID: "idle", TeamName: "Idle"}) {
		t.Errorf("idle row = %+v, want all zero", idle)
	}
}

func TestComputeTieBreakChain(t *testing.T) {
	tests := []struct {
		name    string
		teams   []Team
		matches []MatchResult
		want    []string
	}{
		{
			name:  "ranking points first",
			teams: []Team{{ID: "A"}, {ID: "B"}, {ID: "C"}},
			matches: []MatchResult{
				{Team1ID: "A", Team2ID: "B", Team1Points: 21, Team2Points: 0, WinnerID: winner("A")},
				{Team1ID: "C", Team2ID: "B", Team1Points: 21, Team2Points: 20, WinnerID: winner("C")},
				{Team1ID: "C", Team2ID: "A", Team1Points: 21, Team2Points: 20, WinnerID: winner("C")},
			},
			want: []string{"C", "A", "B"},
		},
		{
			name:  "point difference second",
			teams: []Team{{ID: "A"}, {ID: "B"}, {ID: "X"}, {ID: "Y"}},
			matches: []MatchResult{
				{Team1ID: "A", Team2ID: "X", Team1Points: 21, Team2Points: 19, WinnerID: winner("A")},
				{Team1ID: "B", Team2ID: "Y", Team1Points: 21, Team2Points: 10, WinnerID: winner("B")},
			},
			want: []string{"B", "A", "X", "Y"},
		},
		{
			name:  "points for third",
			teams: []Team{{ID: "A"}, {ID: "B"}, {ID: "X"}, {ID: "Y"}},
			matches: []MatchResult{
				{Team1ID: "A", Team2ID: "X", Team1Points: 21, Team2Points: 15, WinnerID: winner("A")},
				{Team1ID: "B", Team2ID: "Y", Team1Points: 25, Team2Points: 19, WinnerID: winner("B")},
			},
			want: []string{"B", "A", "Y", "X"},
		},
		{
			name:  "full tie keeps input order",
			teams: []Team{{ID: "C"}, {ID: "A"}, {ID: "B"}},
			want:  []string{"C", "A", "B"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := order(Compute(tc.teams, tc.matches))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("order = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestComputePointsAgainstAscending(t *testing.T) {
	// Equal ranking points, difference and points for; lower points against ranks first.
	table := []models.Standing{
		{TeamID: "high", RankingPoints: 3, PointDiff: 0, PointsFor: 30, PointsAgainst: 30},
		{TeamID: "low", RankingPoints: 3, PointDiff: 0, PointsFor: 30, PointsAgainst: 20},
	}
	Rank(table)
	if got := order(table); !reflect.DeepEqual(got, []string{"low", "high"}) {
		t.Errorf("order = %v", got)
	}
}

func TestComputeWinPctRounding(t *testing.T) {
	teams := []Team{{ID: "A"}}
	matches := []MatchResult{
		{Team1ID: "A", Team2ID: "X", WinnerID: winner("A")},
		{Team1ID: "A", Team2ID: "Y", WinnerID: winner("Y")},
		{Team1ID: "Z", Team2ID: "A", WinnerID: winner("Z")},
	}

	table := Compute(teams, matches)
	if table[0].WinPct != 0.333 {
		t.Errorf("WinPct = %v, want 0.333", table[0].WinPct)
	}
	if table[0].Wins != 1 || table[0].Losses != 2 {
		t.Errorf("record = %d-%d, want 1-2", table[0].Wins, table[0].Losses)
	}
}

func TestComputeParallelMatchesCompute(t *testing.T) {
	teams := []Team{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
	matches := []MatchResult{
		{Team1ID: "A", Team2ID: "B", Team1Points: 21, Team2Points: 18, WinnerID: winner("A")},
		{Team1ID: "C", Team2ID: "D", Team1Points: 15, Team2Points: 21, WinnerID: winner("D")},
		{Team1ID: "A", Team2ID: "D", Team1Points: 19, Team2Points: 21, WinnerID: winner("D")},
		{Team1ID: "B", Team2ID: "C"},
	}

	sequential := Compute(teams, matches)
	parallel, err := ComputeParallel(context.Background(), teams, matches)
	if err != nil {
		t.Fatalf("ComputeParallel() error: %v", err)
	}
	if !reflect.DeepEqual(sequential, parallel) {
		t.Errorf("parallel = %+v, want %+v", parallel, sequential)
	}
}

func TestFromModels(t *testing.T) {
	w := "t1"
	teams := []*models.Team{{ID: "t1", Name: "One"}, nil, {ID: "t2", Name: "Two"}}
	matches := []*models.Match{{Team1ID: "t1", Team2ID: "t2", Team1Points: 21, Team2Points: 3, WinnerID: &w}, nil}

	ts, ms := FromModels(teams, matches)
	if len(ts) != 2 || ts[1] != (Team{ID: "t2", Name: "Two"}) {
		t.Errorf("teams = %+v", ts)
	}
	if len(ms) != 1 || ms[0].Team1Points != 21 || *ms[0].WinnerID != "t1" {
		t.Errorf("matches = %+v", ms)
	}
}
