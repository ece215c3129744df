package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/doubles-tournament/brackets"
	"github.com/Dosada05/doubles-tournament/models"
	"gopkg.in/yaml.v3"
)

// LeagueDate parses YAML dates in YYYY-MM-DD form.
type LeagueDate struct {
	models.Date
}

func (d *LeagueDate) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := models.ParseDate(value.Value)
	if err != nil {
		return err
	}
	d.Date = parsed
	return nil
}

type LeagueTeam struct {
	Name    string   `yaml:"name"`
	Players []string `yaml:"players"`
}

// League is the offline input of `schedule generate`.
type League struct {
	Name      string       `yaml:"name"`
	StartDate LeagueDate   `yaml:"start_date"`
	Teams     []LeagueTeam `yaml:"teams"`
	// MatchesPerDay is keyed by weekday name ("monday") or ordinal ("1", Sunday is "0").
	MatchesPerDay map[string]int `yaml:"matches_per_day"`
	MaxDaySearch  int            `yaml:"max_day_search"`
}

func LoadLeague(path string) (*League, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading league file: %w", err)
	}
	return ParseLeague(data)
}

func ParseLeague(data []byte) (*League, error) {
	var l League
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing league file: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *League) validate() error {
	if l.StartDate.IsZero() {
		return errors.New("league file: start_date is required")
	}
	if len(l.Teams) < 2 {
		return fmt.Errorf("league file: at least 2 teams are required, found %d", len(l.Teams))
	}
	seen := make(map[string]bool, len(l.Teams))
	for i, t := range l.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("league file: team %d has no name", i+1)
		}
		if len(t.Players) != 2 {
			return fmt.Errorf("league file: team %q needs exactly 2 players, found %d", name, len(t.Players))
		}
		if seen[strings.ToLower(name)] {
			return fmt.Errorf("league file: team %q is listed twice", name)
		}
		seen[strings.ToLower(name)] = true
	}
	_, err := l.Capacity()
	return err
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
}

// Capacity converts MatchesPerDay into a validated capacity profile.
func (l *League) Capacity() (brackets.CapacityProfile, error) {
	capacity := make(brackets.CapacityProfile, len(l.MatchesPerDay))
	spelledAs := make(map[time.Weekday]string, len(l.MatchesPerDay))
	for key, n := range l.MatchesPerDay {
		k := strings.ToLower(strings.TrimSpace(key))
		day, ok := weekdayNames[k]
		if !ok {
			ord, err := strconv.Atoi(k)
			if err != nil {
				return nil, fmt.Errorf("%w: unknown weekday %q", brackets.ErrInvalidCapacity, key)
			}
			day = time.Weekday(ord)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: negative capacity %d for %q", brackets.ErrInvalidCapacity, n, key)
		}
		if other, dup := spelledAs[day]; dup {
			return nil, fmt.Errorf("%w: %s is given twice, as %q and %q", brackets.ErrInvalidCapacity, day, other, key)
		}
		spelledAs[day] = key
		capacity[day] = n
	}
	if err := capacity.Validate(); err != nil {
		return nil, err
	}
	return capacity, nil
}
