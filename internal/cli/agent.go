// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-hybridsign.
//
// go-hybridsign is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// rotateCmd rotates an agent's active signing keys
var rotateCmd = &cobra.Command{
	Use:   "rotate <agent-id>",
	Short: "Rotate an agent's signing keys",
	Long: `Create a successor key for every active signing key the agent holds,
suite for suite. Predecessor keys stay active so outstanding signatures
remain verifiable; deactivate them explicitly when they are retired.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		agentID := args[0]

		app, err := getApp()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = app.Close() }()

		records, err := app.Orchestrator.Rotate(agentID)
		if err != nil {
			handleError(err)
			return
		}
		printer := NewPrinter(flagOutput, os.Stdout)
		if err := printer.PrintKeyList(records); err != nil {
			handleError(err)
		}
	},
}

// profileCmd summarizes an agent's signing posture
var profileCmd = &cobra.Command{
	Use:   "profile <agent-id>",
	Short: "Show an agent's signing profile",
	Long: `Summarize an agent's active keys by suite category and report whether
the agent is hybrid-ready (holds at least one classical and one
post-quantum key).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		agentID := args[0]

		app, err := getApp()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = app.Close() }()

		profile, err := app.Orchestrator.Profile(agentID)
		if err != nil {
			handleError(err)
			return
		}
		printer := NewPrinter(flagOutput, os.Stdout)
		if err := printer.PrintProfile(profile); err != nil {
			handleError(err)
		}
	},
}
