package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/doubles-tournament/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentSlugConflict = errors.New("tournament slug conflict")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	UpdateDates(ctx context.Context, exec SQLExecutor, id string, start, end models.Date) error
	Delete(ctx context.Context, id string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `id, name, slug, start_date, end_date, is_active, is_finalized, created_at, updated_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	if t.ID == "" {
		t.ID = newID()
	}
	query := `
		INSERT INTO tournaments (id, name, slug, start_date, end_date, is_active, is_finalized)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.Name, t.Slug, t.StartDate, t.EndDate, t.IsActive, t.IsFinalized,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if conflict := tournamentConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("insert tournament: %w", err)
	}
	return nil
}

func tournamentConflict(err error) error {
	pqErr, ok := pqError(err)
	if !ok || pqErr.Code != pqUniqueViolation {
		return nil
	}
	switch pqErr.Constraint {
	case "tournaments_slug_key":
		return ErrTournamentSlugConflict
	case "tournaments_name_key":
		return ErrTournamentNameConflict
	}
	return nil
}

// Update stores name, dates and flags. The slug keeps its original value.
func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $1, start_date = $2, end_date = $3, is_active = $4, is_finalized = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.StartDate, t.EndDate, t.IsActive, t.IsFinalized, t.ID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return ErrTournamentNotFound
		}
		if conflict := tournamentConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("update tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) scanTournament(row rowScanner) (*models.Tournament, error) {
	t := &models.Tournament{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.StartDate, &t.EndDate,
		&t.IsActive, &t.IsFinalized, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	return r.scanTournament(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTournamentRepository) GetBySlug(ctx context.Context, slug string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE slug = $1`
	return r.scanTournament(r.db.QueryRowContext(ctx, query, slug))
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		t, err := r.scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tournament: %w", err)
		}
		tournaments = append(tournaments, *t)
	}
	return tournaments, rows.Err()
}

// UpdateDates stores the first and last scheduled day of a tournament.
func (r *postgresTournamentRepository) UpdateDates(ctx context.Context, exec SQLExecutor, id string, start, end models.Date) error {
	query := `UPDATE tournaments SET start_date = $1, end_date = $2, updated_at = now() WHERE id = $3`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, start, end, id)
	if err != nil {
		if isMalformedID(err) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("update tournament dates: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		if isMalformedID(err) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("delete tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
