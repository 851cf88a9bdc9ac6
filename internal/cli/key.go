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
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// keyCmd represents the key command
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage signing keys",
	Long:  `Create, list, deactivate, export, and import signing keys`,
}

// keyCreateCmd creates a new key for an agent
var keyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new signing key",
	Long:  `Generate a key pair for the given suite and store an active key record`,
	Run: func(cmd *cobra.Command, args []string) {
		agentID, _ := cmd.Flags().GetString("agent")
		suiteID, _ := cmd.Flags().GetString("suite")

		app, err := getApp()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = app.Close() }()

		if suiteID == "" {
			suiteID = app.Config.DefaultSuite
		}

		rec, err := app.Store.CreateKey(agentID, suiteID)
		if err != nil {
			handleError(err)
			return
		}
		printer := NewPrinter(flagOutput, os.Stdout)
		if err := printer.PrintKeyRecord(rec); err != nil {
			handleError(err)
		}
	},
}

// keyListCmd lists an agent's keys
var keyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List an agent's keys",
	Long:  `List key records for an agent in creation order`,
	Run: func(cmd *cobra.Command, args []string) {
		agentID, _ := cmd.Flags().GetString("agent")
		activeOnly, _ := cmd.Flags().GetBool("active")

		app, err := getApp()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = app.Close() }()

		records := app.Store.ListKeysForAgent(agentID, activeOnly)
		printer := NewPrinter(flagOutput, os.Stdout)
		if err := printer.PrintKeyList(records); err != nil {
			handleError(err)
		}
	},
}

// keyDeactivateCmd deactivates a key
var keyDeactivateCmd = &cobra.Command{
	Use:   "deactivate <key-id>",
	Short: "Deactivate a key",
	Long: `Flip a key record's status to inactive. Deactivation is idempotent;
signatures already issued remain verifiable against the key's public material.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keyID := args[0]

		app, err := getApp()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = app.Close() }()

		if err := app.Store.Deactivate(keyID); err != nil {
			handleError(err)
			return
		}
		printer := NewPrinter(flagOutput, os.Stdout)
		if err := printer.PrintSuccess(fmt.Sprintf("Deactivated key %s", keyID)); err != nil {
			handleError(err)
		}
	},
}

// keyExportCmd exports a key's public material
var keyExportCmd = &cobra.Command{
	Use:   "export <key-id>",
	Short: "Export a public key",
	Long:  `Export a key's public material as hex or as a JSON bundle`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keyID := args[0]
		asBundle, _ := cmd.Flags().GetBool("bundle")

		app, err := getApp()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = app.Close() }()

		if asBundle {
			bundle, err := app.Gateway.ExportBundle(keyID)
			if err != nil {
				handleError(err)
				return
			}
			fmt.Println(string(bundle))
			return
		}

		hexKey, err := app.Gateway.ExportPublicKeyHex(keyID)
		if err != nil {
			handleError(err)
			return
		}
		fmt.Println(hexKey)
	},
}

// keyImportCmd imports a public key as a verification-only record
var keyImportCmd = &cobra.Command{
	Use:   "import <hex-or-bundle-file>",
	Short: "Import a public key",
	Long: `Create a verification-only key record from a hex-encoded public key
or, with --bundle, from a JSON bundle file`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		agentID, _ := cmd.Flags().GetString("agent")
		suiteID, _ := cmd.Flags().GetString("suite")
		asBundle, _ := cmd.Flags().GetBool("bundle")

		app, err := getApp()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = app.Close() }()

		var keyID string
		if asBundle {
			data, err := os.ReadFile(args[0])
			if err != nil {
				handleError(fmt.Errorf("read bundle: %w", err))
				return
			}
			keyID, err = app.Gateway.ImportBundle(agentID, data)
			if err != nil {
				handleError(err)
				return
			}
		} else {
			keyID, err = app.Gateway.ImportPublicKeyHex(agentID, args[0], suiteID)
			if err != nil {
				handleError(err)
				return
			}
		}

		printer := NewPrinter(flagOutput, os.Stdout)
		if err := printer.PrintSuccess(fmt.Sprintf("Imported key %s", keyID)); err != nil {
			handleError(err)
		}
	},
}

func init() {
	keyCreateCmd.Flags().String("agent", "", "owning agent identifier (required)")
	keyCreateCmd.Flags().String("suite", "", "signature suite (defaults to config default_suite)")
	_ = keyCreateCmd.MarkFlagRequired("agent")

	keyListCmd.Flags().String("agent", "", "agent identifier (required)")
	keyListCmd.Flags().Bool("active", false, "only list active keys")
	_ = keyListCmd.MarkFlagRequired("agent")

	keyExportCmd.Flags().Bool("bundle", false, "export as a JSON bundle with fingerprint")

	keyImportCmd.Flags().String("agent", "", "owning agent identifier (required)")
	keyImportCmd.Flags().String("suite", "", "signature suite of the imported key")
	keyImportCmd.Flags().Bool("bundle", false, "treat the argument as a JSON bundle file path")
	_ = keyImportCmd.MarkFlagRequired("agent")

	keyCmd.AddCommand(keyCreateCmd)
	keyCmd.AddCommand(keyListCmd)
	keyCmd.AddCommand(keyDeactivateCmd)
	keyCmd.AddCommand(keyExportCmd)
	keyCmd.AddCommand(keyImportCmd)
}
