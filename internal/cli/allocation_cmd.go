package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/spf13/cobra"
)

func newAllocationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "allocation",
		Aliases: []string{"alloc"},
		Short:   "Manage resource bookings",
	}

	cmd.AddCommand(
		newAllocationAddCmd(app),
		newAllocationListCmd(app),
		newAllocationMoveCmd(app),
		newAllocationRemoveCmd(app),
	)

	return cmd
}

func newAllocationAddCmd(app *App) *cobra.Command {
	var resource, title, activity, start, end, item string
	var assignees []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a resource for a time interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			resourceID, err := resolveResourceID(ctx, app, resource)
			if err != nil {
				return err
			}
			startAt, err := parseTimeFlag(start)
			if err != nil {
				return err
			}
			endAt, err := parseTimeFlag(end)
			if err != nil {
				return err
			}

			a := &domain.Allocation{
				PlanningItemID: item,
				ResourceID:     resourceID,
				Start:          startAt,
				End:            endAt,
				Title:          title,
				Activity:       domain.ActivityType(activity),
				AssignedTo:     assignees,
			}
			if err := app.Allocations.Create(ctx, a); err != nil {
				return err
			}
			fmt.Printf("Booked %q %s (%s)\n", a.Title,
				formatter.FormatInterval(a.Start, a.End), formatter.TruncID(a.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "", "Resource name or ID")
	cmd.Flags().StringVar(&title, "title", "", "Booking title")
	cmd.Flags().StringVar(&activity, "activity", "other", "Activity (setup, rehearsal, performance, breakdown, transport, catering, other)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (e.g. 2025-09-12 10:00)")
	cmd.Flags().StringVar(&end, "end", "", "End time")
	cmd.Flags().StringVar(&item, "item", "", "Planning item ID shared by related bookings")
	cmd.Flags().StringSliceVar(&assignees, "assign", nil, "Assigned crew member (repeatable)")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newAllocationListCmd(app *App) *cobra.Command {
	var resource string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var allocs []*domain.Allocation
			var err error
			if resource != "" {
				var resourceID string
				if resourceID, err = resolveResourceID(ctx, app, resource); err != nil {
					return err
				}
				allocs, err = app.Allocations.ListByResource(ctx, resourceID)
			} else {
				allocs, err = app.Allocations.List(ctx)
			}
			if err != nil {
				return err
			}
			if len(allocs) == 0 {
				fmt.Println("No bookings found.")
				return nil
			}

			names, err := resourceNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatAllocationList(allocs, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "", "Only bookings for this resource")

	return cmd
}

func newAllocationMoveCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a booking to a new interval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveAllocationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Allocations.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if start != "" {
				if a.Start, err = parseTimeFlag(start); err != nil {
					return err
				}
			}
			if end != "" {
				if a.End, err = parseTimeFlag(end); err != nil {
					return err
				}
			}
			if err := app.Allocations.Update(ctx, a); err != nil {
				return err
			}
			fmt.Printf("Moved %q to %s\n", a.Title, formatter.FormatInterval(a.Start, a.End))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New start time")
	cmd.Flags().StringVar(&end, "end", "", "New end time")

	return cmd
}

func newAllocationRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveAllocationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Allocations.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Deleted booking.")
			return nil
		},
	}
}
