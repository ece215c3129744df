package models

import (
	"fmt"
	"strings"
	"time"
)

type MatchType string

const (
	MatchTypeRoundRobin MatchType = "ROUNDROBIN"
	MatchTypeSemifinal  MatchType = "SEMIFINAL"
	MatchTypeFinal      MatchType = "FINAL"
)

var AllMatchTypes = []MatchType{MatchTypeRoundRobin, MatchTypeSemifinal, MatchTypeFinal}

func ParseMatchType(s string) (MatchType, error) {
	t := MatchType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllMatchTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid match type %q", s)
}

type Match struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	Team1ID      string    `json:"team1_id" db:"team1_id"`
	Team2ID      string    `json:"team2_id" db:"team2_id"`
	Team1Points  int       `json:"team1_points" db:"team1_points"`
	Team2Points  int       `json:"team2_points" db:"team2_points"`
	WinnerID     *string   `json:"winner_id,omitempty" db:"winner_id"`
	PlayDate     Date      `json:"play_date" db:"played_date"`
	Type         MatchType `json:"type" db:"type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HasTeam reports whether teamID plays in the match.
func (m *Match) HasTeam(teamID string) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}
