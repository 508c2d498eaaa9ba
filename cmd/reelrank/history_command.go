package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reelrank/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past ranking runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			headers := []string{"Run", "Type", "Started", "Items"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortRunID(run.ID),
					string(run.MediaType),
					run.StartedAt.Local().Format(time.DateTime),
					fmt.Sprintf("%d", run.ItemCount),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, aligns, isTerminal(out)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of runs to list")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the stored ranking of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runID, err := resolveRunID(cmd, store, args[0])
			if err != nil {
				return err
			}

			records, err := store.RankingForRun(cmd.Context(), runID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No ranking stored for run %s\n", runID)
				return nil
			}

			headers := []string{"#", "Title", "Year", "Score", "Coverage", "Matched"}
			aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft}
			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					fmt.Sprintf("%d", record.Rank),
					record.Title,
					formatYear(record.Year),
					formatScore(record.Composite),
					fmt.Sprintf("%d/6", record.Coverage),
					record.MatchedTitle,
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, aligns, isTerminal(out)))
			return nil
		},
	}
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the most recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s), kept the newest %d\n", removed, keep)
			return nil
		},
	}

	cmd.Flags().IntVarP(&keep, "keep", "k", 20, "Number of recent runs to keep")
	return cmd
}

// resolveRunID accepts a full run UUID or an unambiguous prefix.
func resolveRunID(cmd *cobra.Command, store *history.Store, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if len(arg) >= 36 {
		return arg, nil
	}

	runs, err := store.ListRuns(cmd.Context(), 200)
	if err != nil {
		return "", err
	}
	var matched string
	for _, run := range runs {
		if strings.HasPrefix(run.ID, arg) {
			if matched != "" {
				return "", fmt.Errorf("run prefix %q is ambiguous", arg)
			}
			matched = run.ID
		}
	}
	if matched == "" {
		return "", fmt.Errorf("no run matches %q", arg)
	}
	return matched, nil
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
