package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Dosada05/doubles-tournament/brackets"
	"github.com/Dosada05/doubles-tournament/config"
	"github.com/Dosada05/doubles-tournament/export"
	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/standings"
	"github.com/spf13/cobra"
)

const defaultLeagueFile = "league.yaml"

func newScheduleCmd() *cobra.Command {
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Work with schedules without a database",
	}

	var leagueFile, outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a round-robin schedule workbook from a league file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOffline()
			if err != nil {
				return err
			}
			newLogger(cfg.LogLevel)
			return runGenerate(cmd.OutOrStdout(), leagueFile, outputFile, cfg.ScheduleMaxDaySearch)
		},
	}
	generateCmd.Flags().StringVar(&leagueFile, "config", defaultLeagueFile, "Path to the league file")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")

	scheduleCmd.AddCommand(generateCmd)
	return scheduleCmd
}

// buildOfflineSchedule runs the pairing and calendar steps on a league file.
// maxDaySearch applies when the league file leaves the bound unset.
func buildOfflineSchedule(league *config.League, maxDaySearch int) (export.Data, error) {
	capacity, err := league.Capacity()
	if err != nil {
		return export.Data{}, err
	}

	teams := make([]*models.Team, len(league.Teams))
	ids := make([]string, len(league.Teams))
	for i, t := range league.Teams {
		ids[i] = fmt.Sprintf("team-%d", i+1)
		teams[i] = &models.Team{ID: ids[i], Name: t.Name, PlayerOne: t.Players[0], PlayerTwo: t.Players[1]}
	}

	rounds, err := brackets.GenerateSchedule(ids)
	if err != nil {
		return export.Data{}, err
	}
	if league.MaxDaySearch > 0 {
		maxDaySearch = league.MaxDaySearch
	}
	scheduled, err := brackets.NewDateAssigner(maxDaySearch).AssignDates(rounds, league.StartDate.Date, capacity)
	if err != nil {
		return export.Data{}, err
	}

	matches := make([]*models.Match, len(scheduled))
	for i, sm := range scheduled {
		matches[i] = &models.Match{
			ID:       fmt.Sprintf("match-%d", i+1),
			Team1ID:  sm.Team1ID,
			Team2ID:  sm.Team2ID,
			PlayDate: sm.PlayDate,
			Type:     models.MatchTypeRoundRobin,
		}
	}

	ts, ms := standings.FromModels(teams, matches)
	return export.Data{
		TournamentName: league.Name,
		Teams:          teams,
		Matches:        matches,
		Standings:      standings.Compute(ts, ms),
	}, nil
}

func runGenerate(out io.Writer, leaguePath, outputPath string, maxDaySearch int) error {
	league, err := config.LoadLeague(leaguePath)
	if err != nil {
		return err
	}

	data, err := buildOfflineSchedule(league, maxDaySearch)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Scheduling %d teams: %d matches from %s to %s\n",
		len(data.Teams), len(data.Matches),
		data.Matches[0].PlayDate, data.Matches[len(data.Matches)-1].PlayDate)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := export.Write(f, data); err != nil {
		f.Close()
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Fprintf(out, "✓ Schedule saved to %s\n", outputPath)
	return nil
}
