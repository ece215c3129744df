package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/doubles-tournament/models"
	"github.com/xuri/excelize/v2"
)

func testData() Data {
	winner := "a"
	return Data{
		TournamentName: "Club Doubles",
		Teams: []*models.Team{
			{ID: "a", Name: "Aces"},
			{ID: "b", Name: "Smash/Bros"},
		},
		Matches: []*models.Match{
			{ID: "m2", Team1ID: "b", Team2ID: "a", PlayDate: models.NewDate(2024, time.January, 3), Type: models.MatchTypeRoundRobin},
			{ID: "m1", Team1ID: "a", Team2ID: "b", Team1Points: 21, Team2Points: 15, WinnerID: &winner,
				PlayDate: models.NewDate(2024, time.January, 1), Type: models.MatchTypeRoundRobin},
		},
		Standings: []models.Standing{
			{TeamID: "a", TeamName: "Aces", Wins: 1, WinPct: 1, PointsFor: 21, PointsAgainst: 15, PointDiff: 6, RankingPoints: 3},
			{TeamID: "b", TeamName: "Smash/Bros", Losses: 1, PointsFor: 15, PointsAgainst: 21, PointDiff: -6},
		},
	}
}

func TestGenerateWorkbook(t *testing.T) {
	f, err := Generate(testData())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	defer f.Close()

	t.Run("sheets", func(t *testing.T) {
		want := []string{ScheduleSheet, StandingsSheet, "Aces", "Smash-Bros"}
		got := f.GetSheetList()
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("sheets = %v, want %v", got, want)
		}
	})

	t.Run("schedule ordered by date", func(t *testing.T) {
		rows, err := f.GetRows(ScheduleSheet)
		if err != nil {
			t.Fatalf("GetRows error: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("got %d rows, want header + 2", len(rows))
		}
		if rows[1][0] != "2024-01-01" || rows[1][1] != "Mon" || rows[1][5] != "21-15" || rows[1][6] != "Aces" {
			t.Errorf("first match row = %v", rows[1])
		}
		if rows[2][0] != "2024-01-03" || rows[2][3] != "Smash/Bros" {
			t.Errorf("second match row = %v", rows[2])
		}
	})

	t.Run("standings", func(t *testing.T) {
		val, _ := f.GetCellValue(StandingsSheet, "B2")
		if val != "Aces" {
			t.Errorf("B2 = %q, want Aces", val)
		}
		val, _ = f.GetCellValue(StandingsSheet, "I2")
		if val != "3" {
			t.Errorf("I2 = %q, want 3", val)
		}
	})

	t.Run("team sheet", func(t *testing.T) {
		rows, _ := f.GetRows("Smash-Bros")
		if len(rows) != 3 {
			t.Fatalf("got %d rows, want header + 2", len(rows))
		}
		if rows[1][3] != "Aces" || rows[1][4] != "15" || rows[1][5] != "21" || rows[1][6] != "L" {
			t.Errorf("row = %v", rows[1])
		}
	})
}

func TestWriteAndRead(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testData()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader error: %v", err)
	}
	defer f.Close()

	val, _ := f.GetCellValue(ScheduleSheet, "A1")
	if val != "Date" {
		t.Errorf("re-read A1 = %q, want Date", val)
	}
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{"Schedule": true, "Aces": true}
	tests := []struct {
		in, want string
	}{
		{"Net Ninjas", "Net Ninjas"},
		{"A/B [x]", "A-B -x-"},
		{"Aces", "Aces (2)"},
		{"  ", "Team"},
		{strings.Repeat("z", 40), strings.Repeat("z", 31)},
	}
	for _, tc := range tests {
		if got := SheetName(tc.in, used); got != tc.want {
			t.Errorf("SheetName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
