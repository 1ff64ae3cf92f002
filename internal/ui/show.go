package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tandemclub/tandem/internal/avail"
	"github.com/tandemclub/tandem/internal/dateutil"
	"github.com/tandemclub/tandem/internal/summary"
)

func (a *App) showCmd() *cobra.Command {
	var noColor bool
	var compact bool
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your saved availability for the week",
		Long: `Display the locally saved availability grid without opening the TUI.

Example:
  tandem show
  tandem show --compact
  tandem show --date 2025-06-02`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.requireProfile(); err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			geom := a.config.Geometry()
			matrix, err := a.repo.LoadAvailability(context.Background(),
				a.config.Profile.MemberID, geom.NumDays, geom.SlotsPerDay)
			if err != nil {
				return fmt.Errorf("loading availability: %w", err)
			}

			ref, err := dateutil.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			anchor := geom.WeekAnchor(ref)
			ws := summary.Summarize(matrix, geom, anchor)

			fmt.Printf("=== %s ===\n\n", formatHeader("Week of "+anchor.Format("Monday, January 2, 2006")))

			if matrix.MarkedCount() == 0 {
				fmt.Println("No availability marked.")
				return nil
			}

			if !compact && termWidth() >= gridMinWidth(geom.NumDays) {
				printGrid(matrix, geom, anchor)
				fmt.Println()
			}

			for _, r := range ws.Ranges {
				day := geom.CellTime(anchor, r.Day, 0).Format("Mon")
				fmt.Printf("  %s  %s\n", formatHeader(day), r.Label(geom))
			}

			fmt.Println()
			fmt.Println(formatTotals(fmt.Sprintf("Total: %.1f hours across %d slots",
				ws.TotalHours, matrix.MarkedCount())))

			last, err := a.repo.LastSubmission(context.Background(), a.config.Profile.MemberID)
			if err == nil && last != nil {
				note := "Last submitted " + last.SubmittedAt.Format("Jan 2 at 3:04 PM")
				if !matrix.Equal(last.Matrix) {
					note += " (grid has changed since)"
				}
				fmt.Println(formatMuted(note))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVar(&compact, "compact", false, "Skip the grid, print ranges only")
	cmd.Flags().StringVar(&date, "date", "", "Render labels for the week of this date (YYYY-MM-DD)")
	return cmd
}

const showColWidth = 5

func gridMinWidth(numDays int) int {
	return 8 + numDays*(showColWidth+1)
}

// printGrid renders the week as a fixed-width table, limited to the
// derived time window so the output stays short.
func printGrid(m *avail.Matrix, geom avail.Geometry, anchor time.Time) {
	window := geom.DefaultWindow(m)

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", 8))
	for d := 0; d < geom.NumDays; d++ {
		day := geom.CellTime(anchor, d, 0).Format("Mon")
		header.WriteString(fmt.Sprintf("%-*s", showColWidth+1, day))
	}
	fmt.Println(formatHeader(header.String()))

	for slot := window.Start; slot < window.End; slot++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%7s ", geom.SlotLabel(slot)))
		for d := 0; d < geom.NumDays; d++ {
			cell := strings.Repeat("░", showColWidth)
			if m.At(d, slot) {
				row.WriteString(formatMarked(strings.Repeat("█", showColWidth)))
			} else {
				row.WriteString(formatUnmarked(cell))
			}
			row.WriteString(" ")
		}
		fmt.Println(row.String())
	}
}
