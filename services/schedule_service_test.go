package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/doubles-tournament/brackets"
	"github.com/Dosada05/doubles-tournament/events"
	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
	"github.com/Dosada05/doubles-tournament/repositories/mockrepo"
	"github.com/stretchr/testify/mock"
)

func fourTeams() []*models.Team {
	return []*models.Team{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
}

func TestParseCapacity(t *testing.T) {
	capacity, err := ParseCapacity(map[string]int{"1": 2, "6": 4})
	if err != nil {
		t.Fatalf("ParseCapacity() error: %v", err)
	}
	if capacity[time.Monday] != 2 || capacity[time.Saturday] != 4 || len(capacity) != 2 {
		t.Errorf("capacity = %v", capacity)
	}

	tests := []struct {
		name  string
		input map[string]int
		want  error
	}{
		{name: "not a number", input: map[string]int{"monday": 1}, want: brackets.ErrInvalidCapacity},
		{name: "out of range", input: map[string]int{"7": 1}, want: brackets.ErrInvalidCapacity},
		{name: "negative", input: map[string]int{"1": -1}, want: brackets.ErrInvalidCapacity},
		{name: "empty", input: nil, want: brackets.ErrZeroCapacity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCapacity(tc.input); !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestScheduleRegenerate(t *testing.T) {
	tRepo := &mockrepo.TournamentRepository{}
	teamRepo := &mockrepo.TeamRepository{}
	matchRepo := &mockrepo.MatchRepository{}
	tx := &mockrepo.TxRunner{}
	pub := &recordingPublisher{}

	tRepo.On("GetByID", mock.Anything, "t1").Return(&models.Tournament{ID: "t1"}, nil)
	teamRepo.On("ListByTournament", mock.Anything, mock.Anything, "t1").Return(fourTeams(), nil)
	matchRepo.On("DeleteByTournament", mock.Anything, mock.Anything, "t1", []models.MatchType(nil)).Return(5, nil)
	matchRepo.On("CreateBatch", mock.Anything, mock.Anything, mock.AnythingOfType("[]*models.Match")).Return(nil)
	tRepo.On("UpdateDates", mock.Anything, mock.Anything, "t1", monday, monday.AddDays(14)).Return(nil)

	svc := NewScheduleService(tx, tRepo, teamRepo, matchRepo, brackets.NewDateAssigner(14), pub, discardLogger)
	matches, err := svc.Regenerate(context.Background(), "t1", GenerateScheduleInput{
		StartDate:     monday,
		MatchesPerDay: map[string]int{"1": 2},
	})
	if err != nil {
		t.Fatalf("Regenerate() error: %v", err)
	}

	want := []struct {
		t1, t2 string
		day    models.Date
	}{
		{"A", "D", monday}, {"B", "C", monday},
		{"A", "C", monday.AddDays(7)}, {"D", "B", monday.AddDays(7)},
		{"A", "B", monday.AddDays(14)}, {"C", "D", monday.AddDays(14)},
	}
	if len(matches) != len(want) {
		t.Fatalf("got %d matches, want %d", len(matches), len(want))
	}
	for i, w := range want {
		m := matches[i]
		if m.Team1ID != w.t1 || m.Team2ID != w.t2 || m.PlayDate != w.day {
			t.Errorf("match %d = %s v %s on %s, want %s v %s on %s", i, m.Team1ID, m.Team2ID, m.PlayDate, w.t1, w.t2, w.day)
		}
		if m.Type != models.MatchTypeRoundRobin || m.TournamentID != "t1" || m.WinnerID != nil {
			t.Errorf("match %d = %+v", i, m)
		}
	}

	if tx.Calls != 1 {
		t.Errorf("transactions = %d, want 1", tx.Calls)
	}
	if got := pub.types(); len(got) != 1 || got[0] != events.ScheduleRegenerated {
		t.Errorf("published %v", got)
	}
	tRepo.AssertExpectations(t)
	matchRepo.AssertExpectations(t)
}

func TestScheduleRegenerateErrors(t *testing.T) {
	storeErr := errors.New("disk full")

	tests := []struct {
		name    string
		input   GenerateScheduleInput
		teams   []*models.Team
		lookup  error
		txErr   error
		wantErr error
	}{
		{
			name:    "zero capacity",
			input:   GenerateScheduleInput{StartDate: monday, MatchesPerDay: map[string]int{"1": 0}},
			wantErr: brackets.ErrZeroCapacity,
		},
		{
			name:    "missing start date",
			input:   GenerateScheduleInput{MatchesPerDay: map[string]int{"1": 1}},
			wantErr: brackets.ErrInvalidStartDate,
		},
		{
			name:    "unknown tournament",
			input:   GenerateScheduleInput{StartDate: monday, MatchesPerDay: map[string]int{"1": 1}},
			lookup:  repositories.ErrTournamentNotFound,
			wantErr: ErrTournamentNotFound,
		},
		{
			name:    "single team",
			input:   GenerateScheduleInput{StartDate: monday, MatchesPerDay: map[string]int{"1": 1}},
			teams:   []*models.Team{{ID: "A"}},
			wantErr: ErrNotEnoughTeams,
		},
		{
			name:    "store failure",
			input:   GenerateScheduleInput{StartDate: monday, MatchesPerDay: map[string]int{"1": 1}},
			teams:   fourTeams(),
			txErr:   storeErr,
			wantErr: storeErr,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tRepo := &mockrepo.TournamentRepository{}
			teamRepo := &mockrepo.TeamRepository{}
			matchRepo := &mockrepo.MatchRepository{}
			tx := &mockrepo.TxRunner{Err: tc.txErr}
			pub := &recordingPublisher{}

			if tc.lookup != nil {
				tRepo.On("GetByID", mock.Anything, "t1").Return(nil, tc.lookup)
			} else {
				tRepo.On("GetByID", mock.Anything, "t1").Return(&models.Tournament{ID: "t1"}, nil)
			}
			teamRepo.On("ListByTournament", mock.Anything, mock.Anything, "t1").Return(tc.teams, nil)

			svc := NewScheduleService(tx, tRepo, teamRepo, matchRepo, nil, pub, discardLogger)
			_, err := svc.Regenerate(context.Background(), "t1", tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
			if len(pub.events) != 0 {
				t.Errorf("published %d events on failure", len(pub.events))
			}
			matchRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
