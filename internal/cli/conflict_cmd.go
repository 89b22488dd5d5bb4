package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/stagehand/internal/cli/formatter"
	"github.com/alexanderramin/stagehand/internal/contract"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newConflictCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflict",
		Short: "Review and close detected conflicts",
	}

	cmd.AddCommand(
		newConflictListCmd(app),
		newConflictShowCmd(app),
		newConflictResolveCmd(app),
		newConflictIgnoreCmd(app),
	)

	return cmd
}

func newConflictListCmd(app *App) *cobra.Command {
	severity := newEnumFlag("low", "medium", "high", "critical")
	ctype := newEnumFlag("time", "resource", "venue", "team")
	status := newEnumFlag("active", "resolved", "ignored")

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			filter := contract.ConflictFilter{}
			if v := severity.String(); v != "" {
				s := domain.Severity(v)
				filter.Severity = &s
			}
			if v := ctype.String(); v != "" {
				t := domain.ConflictType(v)
				filter.Type = &t
			}
			if v := status.String(); v != "" {
				st := domain.ConflictStatus(v)
				filter.Status = &st
			}

			conflicts, err := app.Conflicts.List(ctx, filter)
			if err != nil {
				return err
			}
			if len(conflicts) == 0 {
				fmt.Println("No conflicts found.")
				return nil
			}

			names, err := resourceNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatConflictList(conflicts, names))
			return nil
		},
	}

	cmd.Flags().Var(severity, "severity", "Filter by severity (low, medium, high, critical)")
	cmd.Flags().Var(ctype, "type", "Filter by type (time, resource, venue, team)")
	cmd.Flags().Var(status, "status", "Filter by status (active, resolved, ignored)")

	return cmd
}

func newConflictShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a conflict with its suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveConflictID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Conflicts.GetByID(ctx, id)
			if err != nil {
				return err
			}
			names, err := resourceNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatConflictDetail(c, names))
			return nil
		},
	}
}

func newConflictResolveCmd(app *App) *cobra.Command {
	var rank int
	var note string

	cmd := &cobra.Command{
		Use:   "resolve ID",
		Short: "Resolve a conflict, optionally recording an applied suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveConflictID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Conflicts.GetByID(ctx, id)
			if err != nil {
				return err
			}

			suggestionID := ""
			switch {
			case rank > 0:
				s := suggestionByRank(c, rank)
				if s == nil {
					return fmt.Errorf("conflict has no suggestion ranked %d", rank)
				}
				suggestionID = s.ID
			case len(c.Suggestions) > 0 && app.IsInteractive != nil && app.IsInteractive():
				if suggestionID, err = pickSuggestion(c); err != nil {
					return err
				}
			}

			if err := app.Conflicts.Resolve(ctx, id, suggestionID, note); err != nil {
				return err
			}
			fmt.Printf("Resolved conflict %s\n", formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().IntVar(&rank, "suggestion", 0, "Apply the suggestion with this rank")
	cmd.Flags().StringVar(&note, "note", "", "Resolution note")

	return cmd
}

func newConflictIgnoreCmd(app *App) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "ignore ID",
		Short: "Mark a conflict as acceptable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveConflictID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Conflicts.Ignore(ctx, id, note); err != nil {
				return err
			}
			fmt.Printf("Ignored conflict %s\n", formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Why this conflict is acceptable")

	return cmd
}

func suggestionByRank(c *domain.Conflict, rank int) *domain.Suggestion {
	for i := range c.Suggestions {
		if c.Suggestions[i].Rank == rank {
			return &c.Suggestions[i]
		}
	}
	return nil
}

// pickSuggestion runs a select form over the conflict's suggestions. The
// empty option resolves without recording a suggestion.
func pickSuggestion(c *domain.Conflict) (string, error) {
	options := make([]huh.Option[string], 0, len(c.Suggestions)+1)
	for _, s := range c.Suggestions {
		options = append(options, huh.NewOption(
			fmt.Sprintf("%d. %s", s.Rank, s.Title), s.ID))
	}
	options = append(options, huh.NewOption("None of these", ""))

	var picked string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Apply a suggestion?").
				Options(options...).
				Value(&picked),
		),
	).WithTheme(stagehandHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", err
	}
	return picked, nil
}
