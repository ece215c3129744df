//go:build integration

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dosada05/doubles-tournament/containers"
	"github.com/Dosada05/doubles-tournament/db"
	"github.com/Dosada05/doubles-tournament/models"
)

var (
	// One database for the whole package run.
	testDB *sql.DB

	slugCtr = int32(0)
)

func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	defer func() {
		if r := recover(); r != nil {
			container.Shutdown()
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = db.Connect(container.ConnectionString(), 10*time.Second)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}
	if err := db.Migrate(context.Background(), testDB); err != nil {
		fmt.Printf("error applying schema: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	testDB.Close()
	container.Shutdown()
	os.Exit(code)
}

func newTournament(t *testing.T) *models.Tournament {
	t.Helper()
	n := atomic.AddInt32(&slugCtr, 1)
	tour := &models.Tournament{
		Name:      fmt.Sprintf("Cup %d", n),
		Slug:      fmt.Sprintf("cup-%d", n),
		StartDate: models.NewDate(2024, time.January, 1),
		EndDate:   models.NewDate(2024, time.January, 1),
		IsActive:  true,
	}
	if err := NewPostgresTournamentRepository(testDB).Create(context.Background(), tour); err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	return tour
}

func newTeams(t *testing.T, tournamentID string, names ...string) []*models.Team {
	t.Helper()
	teams := make([]*models.Team, len(names))
	for i, name := range names {
		teams[i] = &models.Team{TournamentID: tournamentID, Name: name, PlayerOne: name + " 1", PlayerTwo: name + " 2"}
	}
	if err := NewPostgresTeamRepository(testDB).CreateBatch(context.Background(), nil, teams); err != nil {
		t.Fatalf("create teams: %v", err)
	}
	return teams
}

func TestTournamentSlugConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresTournamentRepository(testDB)
	existing := newTournament(t)

	dup := &models.Tournament{Name: "Other", Slug: existing.Slug, StartDate: existing.StartDate, EndDate: existing.EndDate}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrTournamentSlugConflict) {
		t.Fatalf("error = %v, want ErrTournamentSlugConflict", err)
	}

	got, err := repo.GetBySlug(ctx, existing.Slug)
	if err != nil {
		t.Fatalf("GetBySlug() error: %v", err)
	}
	if got.ID != existing.ID {
		t.Errorf("GetBySlug() id = %s, want %s", got.ID, existing.ID)
	}

	if _, err := repo.GetByID(ctx, "not-a-uuid"); !errors.Is(err, ErrTournamentNotFound) {
		t.Errorf("malformed id error = %v, want ErrTournamentNotFound", err)
	}
}

func TestTeamNameUniquePerTournament(t *testing.T) {
	ctx := context.Background()
	tour := newTournament(t)
	newTeams(t, tour.ID, "Aces")

	dup := []*models.Team{{TournamentID: tour.ID, Name: "Aces", PlayerOne: "x", PlayerTwo: "y"}}
	err := NewPostgresTeamRepository(testDB).CreateBatch(ctx, nil, dup)
	if !errors.Is(err, ErrTeamNameConflict) {
		t.Fatalf("error = %v, want ErrTeamNameConflict", err)
	}

	other := newTournament(t)
	newTeams(t, other.ID, "Aces")
}

func TestMatchListOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	tour := newTournament(t)
	teams := newTeams(t, tour.ID, "A", "B", "C", "D")
	repo := NewPostgresMatchRepository(testDB)

	mon := models.NewDate(2024, time.January, 1)
	matches := []*models.Match{
		{TournamentID: tour.ID, Team1ID: teams[0].ID, Team2ID: teams[3].ID, PlayDate: mon.AddDays(7)},
		{TournamentID: tour.ID, Team1ID: teams[1].ID, Team2ID: teams[2].ID, PlayDate: mon},
		{TournamentID: tour.ID, Team1ID: teams[0].ID, Team2ID: teams[2].ID, PlayDate: mon},
		{TournamentID: tour.ID, Team1ID: teams[0].ID, Team2ID: teams[1].ID, PlayDate: mon.AddDays(14), Type: models.MatchTypeSemifinal},
	}
	if err := NewTxRunner(testDB).WithinTx(ctx, func(exec SQLExecutor) error {
		return repo.CreateBatch(ctx, exec, matches)
	}); err != nil {
		t.Fatalf("CreateBatch() error: %v", err)
	}

	tests := []struct {
		name   string
		filter MatchFilter
		want   []string
	}{
		{
			name:   "round robin by date then insertion",
			filter: MatchFilter{TournamentID: tour.ID, Types: []models.MatchType{models.MatchTypeRoundRobin}},
			want:   []string{matches[1].ID, matches[2].ID, matches[0].ID},
		},
		{
			name:   "all types",
			filter: MatchFilter{TournamentID: tour.ID},
			want:   []string{matches[1].ID, matches[2].ID, matches[0].ID, matches[3].ID},
		},
		{
			name:   "team filter",
			filter: MatchFilter{TournamentID: tour.ID, TeamID: teams[3].ID},
			want:   []string{matches[0].ID},
		},
		{
			name:   "malformed tournament id",
			filter: MatchFilter{TournamentID: "nope"},
			want:   []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.List(ctx, nil, tc.filter)
			if err != nil {
				t.Fatalf("List() error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d matches, want %d", len(got), len(tc.want))
			}
			for i, m := range got {
				if m.ID != tc.want[i] {
					t.Errorf("position %d = %s, want %s", i, m.ID, tc.want[i])
				}
			}
		})
	}
}

func TestMatchRegenerationRollsBack(t *testing.T) {
	ctx := context.Background()
	tour := newTournament(t)
	teams := newTeams(t, tour.ID, "A", "B")
	repo := NewPostgresMatchRepository(testDB)
	mon := models.NewDate(2024, time.January, 1)

	original := []*models.Match{{TournamentID: tour.ID, Team1ID: teams[0].ID, Team2ID: teams[1].ID, PlayDate: mon}}
	if err := repo.CreateBatch(ctx, nil, original); err != nil {
		t.Fatalf("CreateBatch() error: %v", err)
	}

	errBoom := errors.New("boom")
	err := NewTxRunner(testDB).WithinTx(ctx, func(exec SQLExecutor) error {
		deleted, err := repo.DeleteByTournament(ctx, exec, tour.ID, nil)
		if err != nil {
			return err
		}
		if deleted != 1 {
			t.Errorf("deleted %d rows, want 1", deleted)
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("WithinTx() error = %v, want errBoom", err)
	}

	if _, err := repo.GetByID(ctx, nil, original[0].ID); err != nil {
		t.Errorf("match lost after rollback: %v", err)
	}
}

func TestMatchUpdateResult(t *testing.T) {
	ctx := context.Background()
	tour := newTournament(t)
	teams := newTeams(t, tour.ID, "A", "B")
	repo := NewPostgresMatchRepository(testDB)

	m := &models.Match{TournamentID: tour.ID, Team1ID: teams[0].ID, Team2ID: teams[1].ID, PlayDate: models.NewDate(2024, time.January, 1)}
	if err := repo.CreateBatch(ctx, nil, []*models.Match{m}); err != nil {
		t.Fatalf("CreateBatch() error: %v", err)
	}

	winner := teams[0].ID
	m.Team1Points, m.Team2Points, m.WinnerID = 21, 17, &winner
	if err := repo.UpdateResult(ctx, nil, m); err != nil {
		t.Fatalf("UpdateResult() error: %v", err)
	}

	got, err := repo.GetByID(ctx, nil, m.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Team1Points != 21 || got.Team2Points != 17 || got.WinnerID == nil || *got.WinnerID != winner {
		t.Errorf("stored match = %+v", got)
	}

	missing := *m
	missing.ID = "00000000-0000-0000-0000-000000000000"
	if err := repo.UpdateResult(ctx, nil, &missing); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("error = %v, want ErrMatchNotFound", err)
	}
}

func TestUserEmailLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresUserRepository(testDB)

	u := &models.User{Email: "admin@example.com", PasswordHash: "hash", Role: models.RoleAdmin}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	got, err := repo.GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error: %v", err)
	}
	if got.ID != u.ID || got.Role != models.RoleAdmin {
		t.Errorf("user = %+v", got)
	}
}

func TestTournamentNameUniqueAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresTournamentRepository(testDB)
	first := newTournament(t)
	second := newTournament(t)

	dup := &models.Tournament{Name: first.Name, Slug: first.Slug + "-x", StartDate: first.StartDate, EndDate: first.EndDate}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrTournamentNameConflict) {
		t.Fatalf("create error = %v, want ErrTournamentNameConflict", err)
	}

	second.Name = first.Name
	if err := repo.Update(ctx, second); !errors.Is(err, ErrTournamentNameConflict) {
		t.Fatalf("update error = %v, want ErrTournamentNameConflict", err)
	}

	second.Name = second.Slug + " renamed"
	second.IsFinalized = true
	if err := repo.Update(ctx, second); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	got, err := repo.GetByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Name != second.Name || !got.IsFinalized || got.Slug != second.Slug {
		t.Errorf("stored tournament = %+v", got)
	}

	missing := *second
	missing.ID = "00000000-0000-0000-0000-000000000000"
	missing.Name = "nobody's cup"
	if err := repo.Update(ctx, &missing); !errors.Is(err, ErrTournamentNotFound) {
		t.Errorf("error = %v, want ErrTournamentNotFound", err)
	}
}

func TestTeamUpdate(t *testing.T) {
	ctx := context.Background()
	tour := newTournament(t)
	teams := newTeams(t, tour.ID, "Aces", "Kings")
	repo := NewPostgresTeamRepository(testDB)

	teams[0].Name, teams[0].PlayerTwo = "Smashers", "Cid"
	if err := repo.Update(ctx, teams[0]); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	got, err := repo.GetByID(ctx, teams[0].ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Name != "Smashers" || got.PlayerTwo != "Cid" {
		t.Errorf("stored team = %+v", got)
	}

	teams[1].Name = "Smashers"
	if err := repo.Update(ctx, teams[1]); !errors.Is(err, ErrTeamNameConflict) {
		t.Errorf("error = %v, want ErrTeamNameConflict", err)
	}
	teams[1].ID = "not-a-uuid"
	if err := repo.Update(ctx, teams[1]); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("malformed id error = %v, want ErrTeamNotFound", err)
	}
}

func TestMatchDelete(t *testing.T) {
	ctx := context.Background()
	tour := newTournament(t)
	teams := newTeams(t, tour.ID, "A", "B")
	repo := NewPostgresMatchRepository(testDB)

	m := &models.Match{TournamentID: tour.ID, Team1ID: teams[0].ID, Team2ID: teams[1].ID, PlayDate: models.NewDate(2024, time.January, 1)}
	if err := repo.CreateBatch(ctx, nil, []*models.Match{m}); err != nil {
		t.Fatalf("CreateBatch() error: %v", err)
	}
	if err := repo.Delete(ctx, nil, m.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := repo.GetByID(ctx, nil, m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrMatchNotFound", err)
	}
	if err := repo.Delete(ctx, nil, m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("second delete = %v, want ErrMatchNotFound", err)
	}
}

func TestUserListAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresUserRepository(testDB)

	u := &models.User{Email: "viewer@example.com", PasswordHash: "hash", Role: models.RoleViewer, IsActive: true}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	u.Role, u.IsActive = models.RoleAdmin, false
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	inactive := false
	got, err := repo.List(ctx, UserFilter{Email: "viewer@example.com", IsActive: &inactive})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 || got[0].ID != u.ID || got[0].Role != models.RoleAdmin {
		t.Errorf("users = %+v", got)
	}

	active := true
	got, err = repo.List(ctx, UserFilter{Email: "viewer@example.com", IsActive: &active})
	if err != nil || len(got) != 0 {
		t.Errorf("active filter = %+v, %v", got, err)
	}

	if err := repo.Update(ctx, &models.User{ID: "00000000-0000-0000-0000-000000000000", Role: models.RoleViewer}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}
