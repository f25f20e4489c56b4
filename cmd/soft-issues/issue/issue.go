// Package issue implements the "issue" command.
package issue

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caarlos0/tablewriter"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-issues/cmd"
	"github.com/charmbracelet/soft-issues/pkg/config"
	"github.com/charmbracelet/soft-issues/pkg/db"
	"github.com/charmbracelet/soft-issues/pkg/db/models"
	"github.com/charmbracelet/soft-issues/pkg/store"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	// ErrIssueNotFound is returned when an issue does not exist.
	ErrIssueNotFound = errors.New("issue not found")

	// ErrAuthorNotFound is returned when the author of a new issue does
	// not exist.
	ErrAuthorNotFound = errors.New("author not found")
)

// Command returns the issue command.
func Command() *cobra.Command {
	var asJSON bool

	issueCmd := &cobra.Command{
		Use:                "issue",
		Aliases:            []string{"issues"},
		Short:              "Manage issues",
		PersistentPreRunE:  cmd.InitStoreContext,
		PersistentPostRunE: cmd.CloseDBContext,
	}

	issueCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "output as JSON")

	issueCmd.AddCommand(
		createCommand(),
		infoCommand(&asJSON),
		listCommand(&asJSON),
		searchCommand(&asJSON),
	)

	return issueCmd
}

func createCommand() *cobra.Command {
	var (
		description string
		author      string
		assignee    string
		priority    string
		closed      bool
	)

	createCmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a new issue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(co *cobra.Command, args []string) error {
			ctx, cancel := cmd.QueryContext(co.Context())
			defer cancel()

			p, err := models.ParsePriority(priority)
			if err != nil {
				return err
			}

			authorID, err := uuid.Parse(author)
			if err != nil {
				return fmt.Errorf("invalid author id: %w", err)
			}

			var assigned uuid.NullUUID
			if assignee != "" {
				id, err := uuid.Parse(assignee)
				if err != nil {
					return fmt.Errorf("invalid assignee id: %w", err)
				}
				assigned = uuid.NullUUID{UUID: id, Valid: true}
			}

			st := store.FromContext(ctx)
			h := db.FromContext(ctx)
			if _, ok, err := st.TryFindUserByID(ctx, h, authorID); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("%w: %s", ErrAuthorNotFound, authorID)
			}

			now := time.Now().UTC()
			issue := models.Issue{
				ID:             uuid.New(),
				Title:          strings.Join(args, " "),
				Description:    description,
				AuthorID:       authorID,
				AssignedUserID: assigned,
				Priority:       p,
				CreatedAt:      now,
				UpdatedAt:      now,
				IsClosed:       closed,
			}
			if err := st.InsertIssue(ctx, h, issue); err != nil {
				return err
			}

			log.FromContext(ctx).Debug("issue created", "id", issue.ID, "priority", issue.Priority)
			fmt.Fprintln(co.OutOrStdout(), issue.ID)
			return nil
		},
	}

	createCmd.Flags().StringVarP(&description, "description", "d", "", "issue description")
	createCmd.Flags().StringVarP(&author, "author", "a", "", "author user id")
	createCmd.Flags().StringVar(&assignee, "assignee", "", "assigned user id")
	createCmd.Flags().StringVarP(&priority, "priority", "p", "not-assigned", "priority (not-assigned, low, medium, high, urgent)")
	createCmd.Flags().BoolVar(&closed, "closed", false, "create the issue closed")
	_ = createCmd.MarkFlagRequired("author")

	return createCmd
}

func infoCommand(asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info ID",
		Short: "Show an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(co *cobra.Command, args []string) error {
			ctx, cancel := cmd.QueryContext(co.Context())
			defer cancel()

			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid issue id: %w", err)
			}

			issue, ok, err := store.FromContext(ctx).FindIssueByID(ctx, db.FromContext(ctx), id)
			if err != nil {
				return err
			}
			if !ok {
				return ErrIssueNotFound
			}

			w := co.OutOrStdout()
			if *asJSON {
				return cmd.WriteJSON(w, issue)
			}

			fmt.Fprintf(w, "ID: %s\n", issue.ID)
			fmt.Fprintf(w, "Title: %s\n", issue.Title)
			fmt.Fprintf(w, "Status: %s\n", status(issue))
			fmt.Fprintf(w, "Priority: %s\n", issue.Priority)
			fmt.Fprintf(w, "Author: %s\n", issue.AuthorID)
			if issue.AssignedUserID.Valid {
				fmt.Fprintf(w, "Assignee: %s\n", issue.AssignedUserID.UUID)
			}
			fmt.Fprintf(w, "Created: %s\n", issue.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(w, "Updated: %s\n", issue.UpdatedAt.Format(time.RFC3339))
			if issue.Description != "" {
				fmt.Fprintf(w, "\n%s\n", issue.Description)
			}

			return nil
		},
	}
}

func listCommand(asJSON *bool) *cobra.Command {
	var (
		order    string
		page     int
		pageSize int
	)

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List issues",
		Args:    cobra.NoArgs,
		RunE: func(co *cobra.Command, _ []string) error {
			ctx, cancel := cmd.QueryContext(co.Context())
			defer cancel()

			ordering, err := models.ParseOrdering(order)
			if err != nil {
				return err
			}

			size := pageSize
			if cfg := config.FromContext(ctx); cfg != nil {
				if size == 0 {
					size = cfg.Query.DefaultPageSize
				}
				if size > cfg.Query.MaxPageSize {
					return fmt.Errorf("page size %d exceeds the maximum of %d", size, cfg.Query.MaxPageSize)
				}
			}

			issues, err := store.FromContext(ctx).FindIssues(ctx, db.FromContext(ctx), models.IssueQuery{
				Ordering: ordering,
				Page:     page,
				PageSize: size,
			})
			if err != nil {
				return err
			}

			return render(co.OutOrStdout(), issues, *asJSON)
		},
	}

	listCmd.Flags().StringVarP(&order, "order", "o", "latest", "sort order (latest, title, priority, updated)")
	listCmd.Flags().IntVar(&page, "page", 0, "zero-indexed page number")
	listCmd.Flags().IntVarP(&pageSize, "page-size", "n", 0, "issues per page (defaults to the configured page size)")

	return listCmd
}

func searchCommand(asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search issues by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(co *cobra.Command, args []string) error {
			ctx, cancel := cmd.QueryContext(co.Context())
			defer cancel()

			issues, err := store.FromContext(ctx).SearchIssuesByTitle(ctx, db.FromContext(ctx), strings.Join(args, " "))
			if err != nil {
				return err
			}

			return render(co.OutOrStdout(), issues, *asJSON)
		},
	}
}

func status(issue models.Issue) string {
	if issue.IsClosed {
		return "closed"
	}
	return "open"
}

func render(w io.Writer, issues []models.Issue, asJSON bool) error {
	if asJSON {
		return cmd.WriteJSON(w, issues)
	}

	if len(issues) == 0 {
		fmt.Fprintln(w, "No issues found")
		return nil
	}

	return tablewriter.Render(
		w,
		issues,
		[]string{"ID", "Title", "Priority", "Status", "Updated"},
		func(i models.Issue) ([]string, error) {
			return []string{
				i.ID.String(),
				i.Title,
				i.Priority.String(),
				status(i),
				humanize.Time(i.UpdatedAt),
			}, nil
		},
	)
}
