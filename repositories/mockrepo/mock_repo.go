package mockrepo

import (
	"context"

	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
	"github.com/stretchr/testify/mock"
)

type TournamentRepository struct {
	mock.Mock
}

func (r *TournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	args := r.Called(ctx, t)
	return args.Error(0)
}

func (r *TournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	args := r.Called(ctx, id)

	var t *models.Tournament
	if args.Get(0) != nil {
		t = args.Get(0).(*models.Tournament)
	}
	return t, args.Error(1)
}

func (r *TournamentRepository) GetBySlug(ctx context.Context, slug string) (*models.Tournament, error) {
	args := r.Called(ctx, slug)

	var t *models.Tournament
	if args.Get(0) != nil {
		t = args.Get(0).(*models.Tournament)
	}
	return t, args.Error(1)
}

func (r *TournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	args := r.Called(ctx)

	var ts []models.Tournament
	if args.Get(0) != nil {
		ts = args.Get(0).([]models.Tournament)
	}
	return ts, args.Error(1)
}

func (r *TournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	args := r.Called(ctx, t)
	return args.Error(0)
}

func (r *TournamentRepository) UpdateDates(ctx context.Context, exec repositories.SQLExecutor, id string, start, end models.Date) error {
	args := r.Called(ctx, exec, id, start, end)
	return args.Error(0)
}

func (r *TournamentRepository) Delete(ctx context.Context, id string) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

type TeamRepository struct {
	mock.Mock
}

func (r *TeamRepository) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, teams []*models.Team) error {
	args := r.Called(ctx, exec, teams)
	return args.Error(0)
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	args := r.Called(ctx, id)

	var t *models.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*models.Team)
	}
	return t, args.Error(1)
}

func (r *TeamRepository) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string) ([]*models.Team, error) {
	args := r.Called(ctx, exec, tournamentID)

	var ts []*models.Team
	if args.Get(0) != nil {
		ts = args.Get(0).([]*models.Team)
	}
	return ts, args.Error(1)
}

func (r *TeamRepository) Update(ctx context.Context, t *models.Team) error {
	args := r.Called(ctx, t)
	return args.Error(0)
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

type MatchRepository struct {
	mock.Mock
}

func (r *MatchRepository) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	args := r.Called(ctx, exec, matches)
	return args.Error(0)
}

func (r *MatchRepository) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string, types []models.MatchType) (int64, error) {
	args := r.Called(ctx, exec, tournamentID, types)
	return int64(args.Int(0)), args.Error(1)
}

func (r *MatchRepository) GetByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Match, error) {
	args := r.Called(ctx, exec, id)

	var m *models.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*models.Match)
	}
	return m, args.Error(1)
}

func (r *MatchRepository) List(ctx context.Context, exec repositories.SQLExecutor, filter repositories.MatchFilter) ([]*models.Match, error) {
	args := r.Called(ctx, exec, filter)

	var ms []*models.Match
	if args.Get(0) != nil {
		ms = args.Get(0).([]*models.Match)
	}
	return ms, args.Error(1)
}

func (r *MatchRepository) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	args := r.Called(ctx, exec, m)
	return args.Error(0)
}

func (r *MatchRepository) Delete(ctx context.Context, exec repositories.SQLExecutor, id string) error {
	args := r.Called(ctx, exec, id)
	return args.Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	args := r.Called(ctx, u)
	return args.Error(0)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := r.Called(ctx, id)

	var u *models.User
	if args.Get(0) != nil {
		u = args.Get(0).(*models.User)
	}
	return u, args.Error(1)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := r.Called(ctx, email)

	var u *models.User
	if args.Get(0) != nil {
		u = args.Get(0).(*models.User)
	}
	return u, args.Error(1)
}

func (r *UserRepository) List(ctx context.Context, filter repositories.UserFilter) ([]*models.User, error) {
	args := r.Called(ctx, filter)

	var us []*models.User
	if args.Get(0) != nil {
		us = args.Get(0).([]*models.User)
	}
	return us, args.Error(1)
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	args := r.Called(ctx, u)
	return args.Error(0)
}

// TxRunner runs the unit of work with a nil executor, which repositories treat as the
// plain connection. Set Err to fail the transaction before fn runs.
type TxRunner struct {
	Err   error
	Calls int
}

func (r *TxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	r.Calls++
	if r.Err != nil {
		return r.Err
	}
	return fn(nil)
}
