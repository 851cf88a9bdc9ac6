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

// suitesCmd lists the registered signature suites
var suitesCmd = &cobra.Command{
	Use:   "suites",
	Short: "List supported signature suites",
	Long:  `List the registered signature suites with their category and sizes`,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := getApp()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = app.Close() }()

		printer := NewPrinter(flagOutput, os.Stdout)
		if err := printer.PrintSuites(app.Registry.Suites()); err != nil {
			handleError(err)
		}
	},
}
