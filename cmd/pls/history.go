// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pnum-lookup/internal/history"
	"github.com/pdiddy/pnum-lookup/pkg/types"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear recorded lookups",
		Long: `History shows lookups recorded with --history (or history.enabled in the
config file), newest first. Use --clear to delete all recorded lookups.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: a.runHistory,
	}

	cmd.Flags().String("action", "", "only show lookups for this action")
	cmd.Flags().Int("limit", 20, "maximum number of entries to show")
	cmd.Flags().Bool("json", false, "output entries as JSON")
	cmd.Flags().Bool("clear", false, "delete all recorded lookups")
	return cmd
}

func (a *app) runHistory(cmd *cobra.Command, _ []string) error {
	actionName, _ := cmd.Flags().GetString("action")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	clearAll, _ := cmd.Flags().GetBool("clear")

	opts := history.ListOptions{Limit: limit}
	if actionName != "" {
		action, err := types.ParseAction(actionName)
		if err != nil {
			return usageError(err)
		}
		opts.Action = action
	}

	path := a.v.GetString("history.path")
	if path == "" {
		path = history.DefaultPath()
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if clearAll {
		n, err := store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d recorded lookup(s).\n", n)
		return nil
	}

	entries, err := store.List(cmd.Context(), opts)
	if err != nil {
		return err
	}
	return formatHistoryOutput(out, entries, jsonOutput)
}

func formatHistoryOutput(w io.Writer, entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No recorded lookups.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-12s  %-14s  %-6s  %s\n",
		"ID", "Time (UTC)", "Action", "Pnum", "Status", "Request ID")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		fmt.Fprintf(w, "%-5d  %-20s  %-12s  %-14s  %-6d  %s\n",
			e.ID, e.RequestedAt.Format("2006-01-02 15:04:05"), e.Action, e.Pnum, e.StatusCode, e.RequestID)
	}
	fmt.Fprintf(w, "\n%d entries\n", len(entries))
	return nil
}
