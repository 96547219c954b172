package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/curricula/pkg/store"
)

// schedulesCommand creates the command group for stored schedules.
func (c *CLI) schedulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "Manage schedules saved with 'solve --store'",
	}

	cmd.AddCommand(c.schedulesListCommand())
	cmd.AddCommand(c.schedulesShowCommand())
	cmd.AddCommand(c.schedulesDeleteCommand())

	return cmd
}

func (c *CLI) schedulesListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved schedules, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newFileStore()
			if err != nil {
				return err
			}
			defer s.Close()

			recs, err := s.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list schedules: %w", err)
			}
			if len(recs) == 0 {
				printInfo("No saved schedules")
				printDetail("Directory: %s", s.Path())
				return nil
			}
			fmt.Fprintln(c.Out, recordsTable(recs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum number of schedules")
	return cmd
}

func (c *CLI) schedulesShowCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print a saved schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newFileStore()
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.Get(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("schedule %s not found", args[0])
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(c.Out, rec)
			}
			printKeyValue("Name", rec.Name)
			printKeyValue("Created", rec.CreatedAt.Local().Format("2006-01-02 15:04"))
			if rec.Result != nil {
				printSchedule(rec.Result)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

func (c *CLI) schedulesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]...",
		Short: "Delete saved schedules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newFileStore()
			if err != nil {
				return err
			}
			defer s.Close()

			for _, id := range args {
				if err := s.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
			}
			printSuccess("Deleted %d schedule(s)", len(args))
			return nil
		},
	}
}
