package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tandemclub/tandem/internal/avail"
)

func (a *App) submitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit your saved availability to the pairing pool",
		Long: `Send the locally saved grid to the interview pool without opening
the TUI.

If the grid is identical to your last submission you are asked to
confirm; --force skips the prompt.

Example:
  tandem submit`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.requireProfile(); err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			a.ensureClient()

			ctx := context.Background()
			memberID := a.config.Profile.MemberID
			geom := a.config.Geometry()

			matrix, err := a.repo.LoadAvailability(ctx, memberID, geom.NumDays, geom.SlotsPerDay)
			if err != nil {
				return fmt.Errorf("loading availability: %w", err)
			}
			if matrix.MarkedCount() == 0 {
				fmt.Println(formatWarn("Nothing to submit: no availability marked."))
				return nil
			}

			last, err := a.repo.LastSubmission(ctx, memberID)
			if err != nil {
				return fmt.Errorf("checking last submission: %w", err)
			}
			if last != nil && matrix.Equal(last.Matrix) && !force {
				fmt.Println(formatWarn("This grid is identical to your last submission from " +
					last.SubmittedAt.Format("Jan 2 at 3:04 PM") + "."))
				if !promptYesNo("Submit anyway?") {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			if err := a.client.Signup(ctx, memberID, matrix); err != nil {
				return fmt.Errorf("submitting to pool: %w", err)
			}

			sub := &avail.Submission{
				MemberID:    memberID,
				Matrix:      matrix,
				SubmittedAt: time.Now(),
			}
			if err := a.repo.RecordSubmission(ctx, sub); err != nil {
				fmt.Println(formatMuted("Warning: submission accepted but not recorded locally."))
			}

			fmt.Println(formatTotals(fmt.Sprintf("Submitted %d slots to the pool.", matrix.MarkedCount())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Submit even if identical to the last submission")
	return cmd
}
