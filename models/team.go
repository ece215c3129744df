package models

import "time"

// Team is a doubles pair registered for one tournament.
type Team struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	PlayerOne    string    `json:"player_one" db:"player_one"`
	PlayerTwo    string    `json:"player_two" db:"player_two"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
