package brackets

import "errors"

var (
	ErrInsufficientTeams = errors.New("not enough teams to generate pairings")
	ErrDuplicateTeam     = errors.New("team appears more than once")
	ErrZeroCapacity      = errors.New("weekly capacity is zero for all days")
	ErrInvalidCapacity   = errors.New("invalid capacity profile")
	ErrNoValidDayFound   = errors.New("no day with free capacity within search window")
	ErrInvalidStartDate  = errors.New("start date is required")
	ErrPlayoffUndecided  = errors.New("playoff match has no winner yet")
)
