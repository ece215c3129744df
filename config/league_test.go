package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/doubles-tournament/brackets"
)

const leagueYAML = `
name: Thursday Night Doubles
start_date: "2024-01-04"
matches_per_day:
  thursday: 2
  "6": 3
teams:
  - name: Aces
    players: [Ann, Ben]
  - name: Net Gains
    players: [Cy, Dana]
  - name: Lobsters
    players: [Eve, Finn]
`

func TestParseLeague(t *testing.T) {
	l, err := ParseLeague([]byte(leagueYAML))
	if err != nil {
		t.Fatalf("ParseLeague() error: %v", err)
	}
	if l.Name != "Thursday Night Doubles" || l.StartDate.String() != "2024-01-04" || len(l.Teams) != 3 {
		t.Errorf("league = %+v", l)
	}

	capacity, err := l.Capacity()
	if err != nil {
		t.Fatalf("Capacity() error: %v", err)
	}
	if capacity[time.Thursday] != 2 || capacity[time.Saturday] != 3 {
		t.Errorf("capacity = %v", capacity)
	}
}

func TestParseLeagueErrors(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
		want    string
		wantErr error
	}{
		{name: "bad date", replace: [2]string{`"2024-01-04"`, `"04/01/2024"`}, want: "invalid date"},
		{name: "unknown weekday", replace: [2]string{"thursday: 2", "funday: 2"}, wantErr: brackets.ErrInvalidCapacity},
		{name: "three players", replace: [2]string{"[Ann, Ben]", "[Ann, Ben, Cy]"}, want: "exactly 2 players"},
		{name: "duplicate team", replace: [2]string{"name: Lobsters", "name: aces"}, want: "listed twice"},
		{name: "negative capacity", replace: [2]string{"thursday: 2", "thursday: -1"}, wantErr: brackets.ErrInvalidCapacity},
		{name: "weekday named twice", replace: [2]string{"thursday: 2", "thursday: 2\n  \"4\": 1"}, wantErr: brackets.ErrInvalidCapacity},
		{name: "no capacity", replace: [2]string{"thursday: 2\n  \"6\": 3", "thursday: 0"}, wantErr: brackets.ErrZeroCapacity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLeague([]byte(strings.Replace(leagueYAML, tc.replace[0], tc.replace[1], 1)))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
			if tc.want != "" && !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestLeagueCapacityRejectsHiddenNegative(t *testing.T) {
	l := League{MatchesPerDay: map[string]int{"monday": -1, "1": 2}}
	capacity, err := l.Capacity()
	if !errors.Is(err, brackets.ErrInvalidCapacity) {
		t.Errorf("error = %v, want ErrInvalidCapacity", err)
	}
	if capacity != nil {
		t.Errorf("capacity = %v, want nil", capacity)
	}
}
