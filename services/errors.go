package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrValidationFailed     = errors.New("validation failed")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrNotEnoughTeams       = errors.New("at least two teams are required to build a schedule")
	ErrInvalidWinner        = errors.New("winner must be one of the two teams of the match")
	ErrMatchNotInTournament = errors.New("match does not belong to this tournament")
	ErrTeamNotInTournament  = errors.New("team does not belong to this tournament")

	ErrSlugConflict           = errors.New("could not generate a unique tournament slug")
	ErrTournamentNameConflict = errors.New("tournament name is already in use")
	ErrSelfUpdate             = errors.New("admins cannot change their own role or deactivate themselves")
	ErrTeamNameConflict       = errors.New("team name is already in use in this tournament")
	ErrUserEmailConflict      = errors.New("email address is already in use")

	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrUserNotFound       = errors.New("user not found")

	ErrExportDisabled = errors.New("export storage is not configured")
)
