package models

// Standing is a team's row in the ranked table. It is derived on every request and never stored.
type Standing struct {
	TeamID        string  `json:"team_id"`
	TeamName      string  `json:"team_name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPct        float64 `json:"win_pct"`
	PointsFor     int     `json:"points_for"`
	PointsAgainst int     `json:"points_against"`
	PointDiff     int     `json:"point_diff"`
	RankingPoints int     `json:"ranking_points"`
}
