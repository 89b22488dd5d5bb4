package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/spf13/cobra"
)

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage people, equipment, and venues",
	}

	cmd.AddCommand(
		newResourceAddCmd(app),
		newResourceListCmd(app),
		newResourceInspectCmd(app),
		newResourceAvailCmd(app),
		newResourceRemoveCmd(app),
	)

	return cmd
}

func newResourceAddCmd(app *App) *cobra.Command {
	var name, kind string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &domain.Resource{
				Kind: domain.ResourceKind(kind),
				Name: name,
			}
			if err := app.Resources.Create(context.Background(), r); err != nil {
				return err
			}
			fmt.Printf("Created %s %q (%s)\n", r.Kind, r.Name, formatter.TruncID(r.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Resource name")
	cmd.Flags().StringVar(&kind, "kind", "", "Resource kind (person, equipment, venue)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := app.Resources.List(context.Background())
			if err != nil {
				return err
			}
			if len(resources) == 0 {
				fmt.Println("No resources found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatResourceList(resources))
			return nil
		},
	}
}

func newResourceInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show resource details and availability windows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveResourceID(ctx, app, args[0])
			if err != nil {
				return err
			}
			r, err := app.Resources.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatResourceDetail(r))
			return nil
		},
	}
}

func newResourceAvailCmd(app *App) *cobra.Command {
	var from, to, status string
	var clear bool

	cmd := &cobra.Command{
		Use:   "avail ID",
		Short: "Add an availability window, or clear them all",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveResourceID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if clear {
				if err := app.Resources.SetWindows(ctx, id, nil); err != nil {
					return err
				}
				fmt.Println("Cleared availability windows.")
				return nil
			}

			start, err := parseTimeFlag(from)
			if err != nil {
				return err
			}
			end, err := parseTimeFlag(to)
			if err != nil {
				return err
			}

			r, err := app.Resources.GetByID(ctx, id)
			if err != nil {
				return err
			}
			windows := append(r.Windows, domain.AvailabilityWindow{
				Start:  start,
				End:    end,
				Status: domain.AvailabilityStatus(status),
			})
			if err := app.Resources.SetWindows(ctx, id, windows); err != nil {
				return err
			}
			fmt.Printf("Added %s window %s\n", status, formatter.FormatInterval(start, end))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start (e.g. 2025-09-12 08:00)")
	cmd.Flags().StringVar(&to, "to", "", "Window end")
	cmd.Flags().StringVar(&status, "status", "unavailable", "Window status (available, busy, unavailable)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove all windows")

	return cmd
}

func newResourceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a resource and its bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveResourceID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Resources.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Deleted resource.")
			return nil
		},
	}
}
