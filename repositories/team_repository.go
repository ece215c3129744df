package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/doubles-tournament/models"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamNameConflict      = errors.New("team name already used in this tournament")
	ErrTeamTournamentInvalid = errors.New("team references a missing tournament")
)

type TeamRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, teams []*models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateBatch inserts teams in order. Run it inside a transaction to make the batch atomic.
func (r *postgresTeamRepository) CreateBatch(ctx context.Context, exec SQLExecutor, teams []*models.Team) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO teams (id, tournament_id, name, player_one, player_two, created_at)
		VALUES ($1, $2, $3, $4, $5, clock_timestamp())
		RETURNING created_at`

	for _, t := range teams {
		if t.ID == "" {
			t.ID = newID()
		}
		err := executor.QueryRowContext(ctx, query,
			t.ID, t.TournamentID, t.Name, t.PlayerOne, t.PlayerTwo,
		).Scan(&t.CreatedAt)
		if err != nil {
			return r.handleTeamError(err, t.Name)
		}
	}
	return nil
}

func (r *postgresTeamRepository) handleTeamError(err error, name string) error {
	if pqErr, ok := pqError(err); ok {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %q", ErrTeamNameConflict, name)
		case pqForeignKeyViolation, pqInvalidText:
			return ErrTeamTournamentInvalid
		}
	}
	return fmt.Errorf("insert team %q: %w", name, err)
}

func (r *postgresTeamRepository) scanTeam(row rowScanner) (*models.Team, error) {
	t := &models.Team{}
	err := row.Scan(&t.ID, &t.TournamentID, &t.Name, &t.PlayerOne, &t.PlayerTwo, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `SELECT id, tournament_id, name, player_one, player_two, created_at FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

// ListByTournament returns teams in registration order, which is the order the pairing
// generator sees them in.
func (r *postgresTeamRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]*models.Team, error) {
	query := `
		SELECT id, tournament_id, name, player_one, player_two, created_at
		FROM teams
		WHERE tournament_id = $1
		ORDER BY created_at, id`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		if isMalformedID(err) {
			return []*models.Team{}, nil
		}
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		t, err := r.scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// Update renames a team or changes its players.
func (r *postgresTeamRepository) Update(ctx context.Context, t *models.Team) error {
	query := `UPDATE teams SET name = $1, player_one = $2, player_two = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, t.Name, t.PlayerOne, t.PlayerTwo, t.ID)
	if err != nil {
		if isMalformedID(err) {
			return ErrTeamNotFound
		}
		return r.handleTeamError(err, t.Name)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		if isMalformedID(err) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("delete team: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
