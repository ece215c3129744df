package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/doubles-tournament/export"
	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
	"github.com/Dosada05/doubles-tournament/storage"
	"github.com/itbasis/go-clock"
	"golang.org/x/sync/errgroup"
)

type ExportService interface {
	// Export renders the tournament workbook and uploads it.
	Export(ctx context.Context, tournamentID string) (*storage.UploadResult, error)
}

type exportService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	standings      StandingsService
	uploader       storage.FileUploader
	clock          clock.Clock
	logger         *slog.Logger
}

// NewExportService returns a service whose Export fails with ErrExportDisabled when
// uploader is nil.
func NewExportService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	uploader storage.FileUploader,
	clk clock.Clock,
	logger *slog.Logger,
) ExportService {
	if clk == nil {
		clk = clock.New()
	}
	return &exportService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		standings:      standings,
		uploader:       uploader,
		clock:          clk,
		logger:         loggerOrDefault(logger),
	}
}

// ExportKey names the object a workbook is stored under.
func ExportKey(slug string, at time.Time) string {
	return fmt.Sprintf("exports/%s/%s.xlsx", slug, at.UTC().Format("20060102T150405Z"))
}

func (s *exportService) Export(ctx context.Context, tournamentID string) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrExportDisabled
	}

	var (
		tournament *models.Tournament
		teams      []*models.Team
		matches    []*models.Match
		table      []models.Standing
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournament, err = s.tournamentRepo.GetByID(gCtx, tournamentID)
		return handleRepositoryError(err, "get tournament")
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gCtx, nil, tournamentID)
		return handleRepositoryError(err, "list teams")
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gCtx, nil, repositories.MatchFilter{TournamentID: tournamentID})
		return handleRepositoryError(err, "list matches")
	})
	g.Go(func() error {
		var err error
		table, err = s.standings.Standings(gCtx, tournamentID, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err := export.Write(&buf, export.Data{
		TournamentName: tournament.Name,
		Teams:          teams,
		Matches:        matches,
		Standings:      table,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	key := ExportKey(tournament.Slug, s.clock.Now())
	result, err := s.uploader.Upload(ctx, key, export.ContentType, &buf)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tournament exported",
		slog.String("tournament_id", tournamentID),
		slog.String("key", result.Key),
		slog.Int("matches", len(matches)))
	return result, nil
}
