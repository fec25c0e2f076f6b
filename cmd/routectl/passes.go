package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/application/usecases/queries"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/domain/model/route"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, closeFn, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		},
	}
}

func newDedupCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dedup <day>",
		Short: "Remove stops claimed by more than one driver on a weekday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := kernel.ParseDay(args[0])
			if err != nil {
				return err
			}
			command, err := commands.NewDeduplicateStopsCommand(day)
			if err != nil {
				return err
			}

			app, closeFn, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := app.CreateDeduplicateStopsCommandHandler().Handle(cmd.Context(), command)
			if err != nil {
				return err
			}
			printDedup(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newSequenceCmd(opts *globalOptions) *cobra.Command {
	var driver string

	cmd := &cobra.Command{
		Use:   "sequence <day>",
		Short: "Order the routes of a weekday by nearest neighbour and record a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := kernel.ParseDay(args[0])
			if err != nil {
				return err
			}
			driverID, err := optionalUUID(driver)
			if err != nil {
				return err
			}
			command, err := commands.NewSequenceDayRoutesCommand(day, driverID)
			if err != nil {
				return err
			}

			app, closeFn, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := app.CreateSequenceDayRoutesCommandHandler().Handle(cmd.Context(), command)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sequenced %d route(s) for %s, run %s (published: %t)\n",
				result.Sequenced, day, result.Run.ID(), result.Published)
			printSnapshot(cmd.OutOrStdout(), result.Run)
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "only sequence this driver's route")
	return cmd
}

func newReconcileCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Add missing stable route order entries for assigned clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeFn, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := app.CreateReconcileRouteOrdersCommandHandler().Handle(cmd.Context(), commands.NewReconcileRouteOrdersCommand())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checked %d assignment(s), inserted %d entr(ies).\n", result.Checked, result.Inserted)
			return nil
		},
	}
}

func newMaterializeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "materialize <driver-id> <date>",
		Short: "Number a driver's stops of one date (YYYY-MM-DD) by the stable route order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			driverID, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return err
			}
			date, err := time.Parse(time.DateOnly, args[1])
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}
			command, err := commands.NewMaterializeRouteCommand(driverID, date)
			if err != nil {
				return err
			}

			app, closeFn, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := app.CreateMaterializeRouteCommandHandler().Handle(cmd.Context(), command)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Materialized %d stop(s) for %s on %s\n",
				len(result.StopIDs), result.DriverID, result.Date.Format(time.DateOnly))
			for i, id := range result.StopIDs {
				fmt.Fprintf(out, "  %3d  %s\n", i+1, id)
			}
			if len(result.SkippedClients) > 0 {
				fmt.Fprintf(out, "Clients without a stop: %d\n", len(result.SkippedClients))
			}
			return nil
		},
	}
}

func newRunsCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs <day>",
		Short: "List the run log of a weekday, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := kernel.ParseDay(args[0])
			if err != nil {
				return err
			}
			query, err := queries.NewGetRouteRunsQuery(day, limit)
			if err != nil {
				return err
			}

			app, closeFn, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			runs, err := app.CreateGetRouteRunsQueryHandler().Handle(cmd.Context(), query)
			if err != nil {
				return err
			}
			printRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs")
	return cmd
}

func newRestoreCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <run-id>",
		Short: "Write a logged run back into the route lists of its day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return err
			}
			command, err := commands.NewRestoreRouteRunCommand(runID)
			if err != nil {
				return err
			}

			app, closeFn, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := app.CreateRestoreRouteRunCommandHandler().Handle(cmd.Context(), command)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d route(s) from %s as run %s (dropped stops: %d, published: %t)\n",
				result.Restored, runID, result.Run.ID(), len(result.Dropped), result.Published)
			return nil
		},
	}
}

func optionalUUID(s string) (*kernel.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func printDedup(out io.Writer, result commands.DeduplicateStopsResult) {
	fmt.Fprintf(out, "Removed %d duplicate stop(s) on %s\n", len(result.Removed), result.Day)
	if len(result.Removed) > 0 {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CLIENT\tREMOVED FROM\tKEPT BY")
		for _, r := range result.Removed {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ClientID, r.DriverID, r.KeptDriverID)
		}
		_ = tw.Flush()
	}
	for _, id := range result.SkippedDrivers {
		fmt.Fprintf(out, "Skipped route of unknown driver %s\n", id)
	}
}

func printSnapshot(out io.Writer, run *route.Run) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DRIVER\tNAME\tSTOPS")
	for _, e := range run.Snapshot() {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", e.DriverID, e.DriverName, len(e.StopIDs))
	}
	_ = tw.Flush()
}

func printRuns(out io.Writer, runs []queries.RouteRunView) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tREASON\tCREATED\tDRIVERS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.ID, r.Reason, r.CreatedAt.Format(time.RFC3339), len(r.Snapshot))
	}
	_ = tw.Flush()
}
