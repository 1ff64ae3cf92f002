package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tandemclub/tandem/internal/avail"
	"github.com/tandemclub/tandem/internal/dateutil"
)

// gridFile is the on-disk interchange format for availability grids.
// Marked slots serialize as 1 and unmarked as 0, row per day.
type gridFile struct {
	MemberID   string  `json:"memberId,omitempty"`
	Days       int     `json:"days"`
	Slots      int     `json:"slots"`
	Grid       [][]int `json:"grid"`
	Week       string  `json:"week,omitempty"` // anchor date of the exported week, YYYY-MM-DD
	ExportedAt string  `json:"exportedAt,omitempty"`
}

func (a *App) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export your saved availability to a JSON file",
		Long: `Write the locally saved grid to a JSON file.

Example:
  tandem export week.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.requireProfile(); err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			geom := a.config.Geometry()
			count, err := exportGrid(context.Background(), a.repo, geom,
				a.config.Profile.MemberID, path)
			if err != nil {
				return err
			}

			fmt.Printf("Exported %d marked slots to %s\n", count, path)
			return nil
		},
	}
	return cmd
}

func (a *App) importCmd() *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import availability from a JSON file",
		Long: `Replace the locally saved grid with one read from a JSON file.

With --merge, marked slots from the file are added to the current grid
instead of replacing it.

Example:
  tandem import week.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.requireProfile(); err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			geom := a.config.Geometry()
			count, err := importGrid(context.Background(), a.repo, geom,
				a.config.Profile.MemberID, path, merge)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d marked slots from %s\n", count, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "Merge with the current grid instead of replacing it")
	return cmd
}

// exportGrid writes the member's stored grid to a JSON file, stamped
// with the week anchor and export time. Returns the number of marked
// slots written.
func exportGrid(ctx context.Context, repo avail.Repository, geom avail.Geometry, memberID, path string) (int, error) {
	matrix, err := repo.LoadAvailability(ctx, memberID, geom.NumDays, geom.SlotsPerDay)
	if err != nil {
		return 0, fmt.Errorf("loading availability: %w", err)
	}

	out := gridFile{
		MemberID:   memberID,
		Days:       geom.NumDays,
		Slots:      geom.SlotsPerDay,
		Grid:       matrix.Encode(),
		Week:       dateutil.FormatDate(geom.WeekAnchor(time.Now())),
		ExportedAt: time.Now().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encoding grid: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return matrix.MarkedCount(), nil
}

// importGrid reads a grid file and stores it for the member. With
// merge, marked slots from the file are added to the stored grid
// instead of replacing it. Returns the number of marked slots stored.
func importGrid(ctx context.Context, repo avail.Repository, geom avail.Geometry, memberID, path string, merge bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	var in gridFile
	if err := json.Unmarshal(data, &in); err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}

	imported, err := avail.Decode(in.Grid)
	if err != nil {
		return 0, fmt.Errorf("invalid grid in %s: %w", path, err)
	}

	if imported.Days() != geom.NumDays || imported.Slots() != geom.SlotsPerDay {
		return 0, fmt.Errorf("grid shape %dx%d does not match configured %dx%d",
			imported.Days(), imported.Slots(), geom.NumDays, geom.SlotsPerDay)
	}

	if merge {
		current, err := repo.LoadAvailability(ctx, memberID, geom.NumDays, geom.SlotsPerDay)
		if err != nil {
			return 0, fmt.Errorf("loading availability: %w", err)
		}
		for d := 0; d < geom.NumDays; d++ {
			for s := 0; s < geom.SlotsPerDay; s++ {
				if current.At(d, s) {
					imported.Set(d, s, true)
				}
			}
		}
	}

	if err := repo.SaveAvailability(ctx, memberID, imported); err != nil {
		return 0, fmt.Errorf("saving availability: %w", err)
	}

	return imported.MarkedCount(), nil
}
