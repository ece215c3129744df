// Package export renders a tournament into an Excel workbook: the full schedule, the
// standings table and one sheet per team.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Dosada05/doubles-tournament/models"
	"github.com/xuri/excelize/v2"
)

const (
	ScheduleSheet  = "Schedule"
	StandingsSheet = "Standings"
	ContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	maxSheetName = 31
)

type Data struct {
	TournamentName string
	Teams          []*models.Team
	Matches        []*models.Match
	Standings      []models.Standing
}

// Generate builds the workbook. Matches are listed by play date; ties keep input order.
func Generate(d Data) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	names := make(map[string]string, len(d.Teams))
	for _, t := range d.Teams {
		names[t.ID] = t.Name
	}

	matches := make([]*models.Match, len(d.Matches))
	copy(matches, d.Matches)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].PlayDate.Before(matches[j].PlayDate)
	})

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeScheduleSheet(f, styles, d.TournamentName, matches, names); err != nil {
		return nil, fmt.Errorf("writing schedule sheet: %w", err)
	}
	if err := writeStandingsSheet(f, styles, d.Standings); err != nil {
		return nil, fmt.Errorf("writing standings sheet: %w", err)
	}
	if err := writeTeamSheets(f, styles, d.Teams, matches, names); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if idx, err := f.GetSheetIndex(ScheduleSheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// Write renders the workbook straight to w.
func Write(w io.Writer, d Data) error {
	f, err := Generate(d)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

type styles struct {
	header int
	cell   int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles{}, err
	}
	cell, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Arial"},
	})
	if err != nil {
		return styles{}, err
	}
	return styles{header: header, cell: cell}, nil
}

func writeRows(f *excelize.File, st styles, sheet string, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cellRef(i+1, 1), h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), st.header); err != nil {
		return err
	}

	for r, row := range rows {
		for c, v := range row {
			if err := f.SetCellValue(sheet, cellRef(c+1, r+2), v); err != nil {
				return err
			}
		}
	}
	if len(rows) > 0 {
		if err := f.SetCellStyle(sheet, cellRef(1, 2), cellRef(len(headers), len(rows)+1), st.cell); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func winnerName(m *models.Match, names map[string]string) string {
	if m.WinnerID == nil || *m.WinnerID == "" {
		return ""
	}
	return names[*m.WinnerID]
}

func writeScheduleSheet(f *excelize.File, st styles, title string, matches []*models.Match, names map[string]string) error {
	headers := []string{"Date", "Day", "Type", "Team 1", "Team 2", "Score", "Winner"}
	rows := make([][]interface{}, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []interface{}{
			m.PlayDate.String(),
			m.PlayDate.Weekday().String()[:3],
			string(m.Type),
			names[m.Team1ID],
			names[m.Team2ID],
			fmt.Sprintf("%d-%d", m.Team1Points, m.Team2Points),
			winnerName(m, names),
		})
	}
	if err := writeRows(f, st, ScheduleSheet, headers, rows); err != nil {
		return err
	}
	if title != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: title}); err != nil {
			return err
		}
	}
	widths := map[string]float64{"A": 12, "B": 6, "C": 12, "D": 24, "E": 24, "F": 8, "G": 24}
	for col, w := range widths {
		if err := f.SetColWidth(ScheduleSheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func writeStandingsSheet(f *excelize.File, st styles, table []models.Standing) error {
	headers := []string{"Rank", "Team", "W", "L", "Pct", "PF", "PA", "PD", "PTS"}
	rows := make([][]interface{}, 0, len(table))
	for i, s := range table {
		rows = append(rows, []interface{}{
			i + 1, s.TeamName, s.Wins, s.Losses, s.WinPct,
			s.PointsFor, s.PointsAgainst, s.PointDiff, s.RankingPoints,
		})
	}
	if err := writeRows(f, st, StandingsSheet, headers, rows); err != nil {
		return err
	}
	return f.SetColWidth(StandingsSheet, "B", "B", 24)
}

func writeTeamSheets(f *excelize.File, st styles, teams []*models.Team, matches []*models.Match, names map[string]string) error {
	used := map[string]bool{ScheduleSheet: true, StandingsSheet: true}
	headers := []string{"Date", "Day", "Type", "Opponent", "For", "Against", "Result"}

	for _, team := range teams {
		sheet := SheetName(team.Name, used)
		used[sheet] = true

		var rows [][]interface{}
		for _, m := range matches {
			if !m.HasTeam(team.ID) {
				continue
			}
			opponent, scored, conceded := m.Team2ID, m.Team1Points, m.Team2Points
			if m.Team2ID == team.ID {
				opponent, scored, conceded = m.Team1ID, m.Team2Points, m.Team1Points
			}
			result := ""
			if m.WinnerID != nil && *m.WinnerID != "" {
				result = "L"
				if *m.WinnerID == team.ID {
					result = "W"
				}
			}
			rows = append(rows, []interface{}{
				m.PlayDate.String(), m.PlayDate.Weekday().String()[:3], string(m.Type),
				names[opponent], scored, conceded, result,
			})
		}
		if err := writeRows(f, st, sheet, headers, rows); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "D", "D", 24); err != nil {
			return err
		}
	}
	return nil
}

// SheetName turns a team name into a valid, unused sheet name.
func SheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	clean = strings.Trim(clean, "'")
	if clean == "" {
		clean = "Team"
	}
	clean = truncate(clean, maxSheetName)

	candidate := clean
	for i := 2; used[candidate]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncate(clean, maxSheetName-len(suffix)) + suffix
	}
	return candidate
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func cellRef(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
