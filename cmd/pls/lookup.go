// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pnum-lookup/internal/client"
	"github.com/pdiddy/pnum-lookup/internal/format"
	"github.com/pdiddy/pnum-lookup/internal/save"
	"github.com/pdiddy/pnum-lookup/pkg/types"
)

// runLookup sends one request for the action in args[0] and prints, pretty
// prints, or saves the response.
func (a *app) runLookup(cmd *cobra.Command, args []string) error {
	action, err := types.ParseAction(args[0])
	if err != nil {
		return usageError(err)
	}
	pnum, _ := cmd.Flags().GetString("pnum")
	saveResponse, _ := cmd.Flags().GetBool("save")
	verbose, _ := cmd.Flags().GetBool("verbose")

	req := types.Request{Action: action, Pnum: pnum, Save: saveResponse, Verbose: verbose}
	if err := req.Validate(); err != nil {
		return usageError(err)
	}

	cfg, err := a.config()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if req.Verbose {
		if req.Pnum != "" {
			fmt.Fprintf(out, "\nSending request with action '%s' and pnum '%s'.\n", req.Action, req.Pnum)
		} else {
			fmt.Fprintf(out, "\nSending request with action '%s'.\n", req.Action)
		}
	}

	c := client.New(cfg.HTTP, a.logger)
	resp, err := c.Send(cmd.Context(), req.Action, req.Pnum)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	a.record(cmd.Context(), cfg.History, resp)

	if !resp.OK() {
		format.Failure(out, resp, req.Verbose)
		return errReported
	}

	if req.Verbose {
		fmt.Fprintln(out, "\nResponse received.")
		fmt.Fprint(out, "\nPrinting response in readable format:\n\n")
		if err := format.Pretty(out, resp); err != nil {
			return err
		}
	}

	if req.Save {
		if req.Verbose {
			fmt.Fprintf(out, "\nSaving response to %s...\n", cfg.Output.Format)
		}
		path, err := save.Write(cfg.Output.SaveDir, resp, cfg.Output.Format)
		if err != nil {
			return fmt.Errorf("saving response: %w", err)
		}
		if req.Verbose {
			fmt.Fprintf(out, "Response saved to %s\n", path)
		}
	}

	if !req.Verbose {
		return format.Raw(out, resp)
	}
	return nil
}
