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

	"github.com/jeremyhahn/go-hybridsign/pkg/encoding"
)

// signCmd signs a message with one key
var signCmd = &cobra.Command{
	Use:   "sign <key-id> <message>",
	Short: "Sign a message",
	Long:  `Sign a message with the given key and print the signature as hex`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		keyID, message := args[0], args[1]

		app, err := getApp()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = app.Close() }()

		sig, err := app.Engine.Sign(keyID, []byte(message))
		if err != nil {
			handleError(err)
			return
		}
		printer := NewPrinter(flagOutput, os.Stdout)
		if err := printer.PrintSignature(sig); err != nil {
			handleError(err)
		}
	},
}

// verifyCmd verifies a signature
var verifyCmd = &cobra.Command{
	Use:   "verify <key-id> <message> <signature-hex>",
	Short: "Verify a signature",
	Long: `Verify a hex-encoded signature over a message. Verification is permitted
against inactive and verification-only keys.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		keyID, message, sigHex := args[0], args[1], args[2]

		app, err := getApp()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = app.Close() }()

		sig, err := encoding.DecodeHex(sigHex)
		if err != nil {
			handleError(err)
			return
		}

		valid, err := app.Engine.Verify(keyID, []byte(message), sig)
		if err != nil {
			handleError(err)
			return
		}
		printer := NewPrinter(flagOutput, os.Stdout)
		if err := printer.PrintVerification(valid); err != nil {
			handleError(err)
		}
		if !valid {
			os.Exit(1)
		}
	},
}

// hybridSignCmd signs one message with several keys
var hybridSignCmd = &cobra.Command{
	Use:   "hybrid-sign <message> <key-id>...",
	Short: "Sign a message with multiple suites",
	Long: `Sign the same message with each listed key in order and print the
signatures in the same order. The operation is all-or-nothing: any failure
aborts the whole call and no signatures are returned.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		message, keyIDs := args[0], args[1:]

		app, err := getApp()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = app.Close() }()

		sigs, err := app.Orchestrator.HybridSign(keyIDs, []byte(message))
		if err != nil {
			handleError(err)
			return
		}
		printer := NewPrinter(flagOutput, os.Stdout)
		if err := printer.PrintSignatures(sigs); err != nil {
			handleError(err)
		}
	},
}
