package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/doubles-tournament/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match references a missing team or tournament")
)

// MatchFilter narrows a tournament's matches. Empty Types means every type.
type MatchFilter struct {
	TournamentID string
	Types        []models.MatchType
	TeamID       string
}

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string, types []models.MatchType) (int64, error)
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error)
	List(ctx context.Context, exec SQLExecutor, filter MatchFilter) ([]*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, match *models.Match) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, tournament_id, team1_id, team2_id, team1_points, team2_points, winner_id, played_date, type, created_at, updated_at`

func typeStrings(types []models.MatchType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (id, tournament_id, team1_id, team2_id, team1_points, team2_points, winner_id, played_date, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, clock_timestamp())
		RETURNING created_at, updated_at`

	for _, m := range matches {
		if m.ID == "" {
			m.ID = newID()
		}
		if m.Type == "" {
			m.Type = models.MatchTypeRoundRobin
		}
		err := executor.QueryRowContext(ctx, query,
			m.ID, m.TournamentID, m.Team1ID, m.Team2ID, m.Team1Points, m.Team2Points,
			m.WinnerID, m.PlayDate, m.Type,
		).Scan(&m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return r.handleMatchError(err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if pqErr, ok := pqError(err); ok {
		switch pqErr.Code {
		case pqForeignKeyViolation, pqInvalidText:
			return ErrMatchTeamInvalid
		}
	}
	return fmt.Errorf("write match: %w", err)
}

// DeleteByTournament removes the tournament's matches of the given types and reports how many went.
func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string, types []models.MatchType) (int64, error) {
	query := `DELETE FROM matches WHERE tournament_id = $1`
	args := []interface{}{tournamentID}
	if len(types) > 0 {
		query += ` AND type = ANY($2)`
		args = append(args, pq.Array(typeStrings(types)))
	}

	result, err := r.getExecutor(exec).ExecContext(ctx, query, args...)
	if err != nil {
		if isMalformedID(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("delete matches: %w", err)
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) scanMatch(row rowScanner) (*models.Match, error) {
	m := &models.Match{}
	var winner sql.NullString
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.Team1ID, &m.Team2ID, &m.Team1Points, &m.Team2Points,
		&winner, &m.PlayDate, &m.Type, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if winner.Valid {
		m.WinnerID = &winner.String
	}
	return m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

// List returns matches ordered by play date, then insertion order. Within a day that is the
// order the schedule produced them in.
func (r *postgresMatchRepository) List(ctx context.Context, exec SQLExecutor, filter MatchFilter) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`
	args := []interface{}{filter.TournamentID}
	argID := 2

	if len(filter.Types) > 0 {
		query += fmt.Sprintf(" AND type = ANY($%d)", argID)
		args = append(args, pq.Array(typeStrings(filter.Types)))
		argID++
	}
	if filter.TeamID != "" {
		query += fmt.Sprintf(" AND (team1_id = $%d OR team2_id = $%d)", argID, argID)
		args = append(args, filter.TeamID)
	}
	query += " ORDER BY played_date, created_at, id"

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, args...)
	if err != nil {
		if isMalformedID(err) {
			return []*models.Match{}, nil
		}
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, err := r.scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// UpdateResult stores points, winner and play date of a match.
func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	query := `
		UPDATE matches
		SET team1_points = $1, team2_points = $2, winner_id = $3, played_date = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		m.Team1Points, m.Team2Points, m.WinnerID, m.PlayDate, m.ID,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMatchNotFound
		}
		return r.handleMatchError(err)
	}
	return nil
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		if isMalformedID(err) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("delete match: %w", err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
