package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/doubles-tournament/events"
	"github.com/Dosada05/doubles-tournament/repositories"
)

// repoToServiceErr maps repository sentinels onto the service ones handlers understand.
var repoToServiceErr = map[error]error{
	repositories.ErrTournamentNotFound:     ErrTournamentNotFound,
	repositories.ErrTournamentSlugConflict: ErrSlugConflict,
	repositories.ErrTournamentNameConflict: ErrTournamentNameConflict,
	repositories.ErrTeamNotFound:           ErrTeamNotFound,
	repositories.ErrTeamNameConflict:       ErrTeamNameConflict,
	repositories.ErrTeamTournamentInvalid:  ErrTournamentNotFound,
	repositories.ErrMatchNotFound:          ErrMatchNotFound,
	repositories.ErrMatchTeamInvalid:       ErrTeamNotFound,
	repositories.ErrUserNotFound:           ErrUserNotFound,
	repositories.ErrUserEmailConflict:      ErrUserEmailConflict,
}

func handleRepositoryError(err error, action string) error {
	if err == nil {
		return nil
	}
	for repoErr, serviceErr := range repoToServiceErr {
		if errors.Is(err, repoErr) {
			if err.Error() == repoErr.Error() {
				return serviceErr
			}
			return fmt.Errorf("%w: %v", serviceErr, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// publish sends an event and only logs failures. The change it announces is already stored.
func publish(ctx context.Context, p events.Publisher, logger *slog.Logger, e events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		logger.Warn("failed to publish event",
			slog.String("type", string(e.Type)),
			slog.String("tournament_id", e.TournamentID),
			slog.Any("error", err))
	}
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
