// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/officemd/internal/history"
	"github.com/pdiddy/officemd/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List past conversion runs",
	Long: `History reads the run ledger and lists recent conversion runs, newest
first. With a run ID it shows the per-document outcomes of that run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("history-db", "", "run ledger path (default: ~/.officemd/history.db)")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("history-db")
	if dbPath == "" {
		var err error
		dbPath, err = history.DefaultPath()
		if err != nil {
			return err
		}
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 1 {
		return showRun(store, args[0], jsonOutput)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	return listRuns(store, limit, jsonOutput)
}

func listRuns(store *history.Store, limit int, jsonOutput bool) error {
	runs, err := store.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-40s  %5s  %5s  %5s\n",
		"Run", "Started", "Root", "Total", "OK", "Fail")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))

	for _, r := range runs {
		root := r.Root
		if len(root) > 40 {
			root = "..." + root[len(root)-37:]
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-40s  %5d  %5d  %5d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), root,
			r.Total, r.Succeeded, r.Failed)
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func showRun(store *history.Store, runID string, jsonOutput bool) error {
	docs, err := store.RunDocuments(context.Background(), runID)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no run found with id %s", runID)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	for _, d := range docs {
		switch d.Status {
		case types.StatusSucceeded:
			fmt.Fprintf(os.Stdout, "succeeded  %s -> %s (%s)\n",
				d.Path, d.OutputPath, d.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(os.Stdout, "failed     %s (%s)\n", d.Path, d.Error)
		}
	}

	fmt.Fprintf(os.Stdout, "\n%d documents\n", len(docs))
	return nil
}
