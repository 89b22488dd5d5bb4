package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/contract"
	"github.com/spf13/cobra"
)

func newDetectCmd(app *App) *cobra.Command {
	var from, to string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Scan bookings for conflicts",
		Long: `Scan bookings for overlaps, unavailable-window clashes, and
double-booked crew, and reconcile the findings with the stored conflict list.
Without --from/--to the whole schedule is scanned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			req := contract.NewDetectRequest()
			req.DryRun = dryRun

			if from != "" || to != "" {
				start, err := parseTimeFlag(from)
				if err != nil {
					return err
				}
				end, err := parseTimeFlag(to)
				if err != nil {
					return err
				}
				req.WindowStart = &start
				req.WindowEnd = &end
			}

			resp, err := app.Detection.DetectConflicts(ctx, req)
			if err != nil {
				return err
			}

			names, err := resourceNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatDetectReport(resp, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Scan window start")
	cmd.Flags().StringVar(&to, "to", "", "Scan window end")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report conflicts without persisting them")

	return cmd
}
