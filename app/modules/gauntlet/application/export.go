package gauntletservice

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ExportStandings renders a gauntlet's ladder as an XLSX workbook for
// the noticeboard printout.
func (s *GauntletService) ExportStandings(ctx context.Context, gauntletID uuid.UUID) ([]byte, error) {
	gauntlet, err := s.gauntlets.GetGauntlet(ctx, s.db, gauntletID)
	if err != nil {
		return nil, fmt.Errorf("GauntletService.ExportStandings: %w", err)
	}
	positions, err := s.positions.ListPositions(ctx, s.db, gauntletID)
	if err != nil {
		return nil, fmt.Errorf("GauntletService.ExportStandings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Standings"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Rank", "Lineup", "Wins", "Losses", "Draws", "Matches", "Win %", "Points", "Streak", "Last Match"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("GauntletService.ExportStandings: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("GauntletService.ExportStandings: %w", err)
		}
	}

	for i, p := range positions {
		row := i + 2
		lastMatch := ""
		if p.LastMatchAt != nil {
			lastMatch = p.LastMatchAt.Format(time.DateOnly)
		}
		values := []any{
			p.Rank,
			p.LineupID.String(),
			p.Wins,
			p.Losses,
			p.Draws,
			p.TotalMatches,
			fmt.Sprintf("%.1f", p.WinRate),
			p.Points,
			fmt.Sprintf("%s %d", p.StreakKind, p.StreakLength),
			lastMatch,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("GauntletService.ExportStandings: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("GauntletService.ExportStandings: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("GauntletService.ExportStandings: %w", err)
	}

	s.logger.InfoContext(ctx, "Standings exported",
		slog.String("gauntlet_id", gauntlet.ID.String()),
		slog.Int("positions", len(positions)),
	)
	return buf.Bytes(), nil
}
