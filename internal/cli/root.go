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

	"github.com/jeremyhahn/go-hybridsign/internal/config"
)

var (
	flagConfigFile string
	flagOutput     string
	flagVerbose    bool
	flagStorage    string
	flagKeyDir     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hybridsign",
	Short: "hybridsign CLI - Classical and post-quantum signing key management",
	Long: `hybridsign manages signing identities across classical elliptic-curve
and post-quantum lattice-based signature suites with one uniform
lifecycle: create, sign, verify, rotate, export, and import.

Supported suites:
  - classical-secp256k1: ECDSA over secp256k1 (SHA-256)
  - classical-ed25519:   Ed25519
  - lattice-level-2:     ML-DSA-44 (FIPS 204)
  - lattice-level-3:     ML-DSA-65 (FIPS 204)
  - lattice-level-5:     ML-DSA-87 (FIPS 204)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "",
		"config file (default is $HYBRIDSIGN_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "",
		"storage backend override (memory, file)")
	rootCmd.PersistentFlags().StringVar(&flagKeyDir, "key-dir", "",
		"directory for the file storage backend")

	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(hybridSignCmd)
	rootCmd.AddCommand(rotateCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(suitesCmd)
	rootCmd.AddCommand(versionCmd)
}

// getApp resolves the configuration, applies flag overrides, and builds the
// component graph for the current invocation.
func getApp() (*App, error) {
	cfg, err := config.Load(flagConfigFile)
	if err != nil {
		return nil, err
	}
	if flagStorage != "" {
		cfg.Storage.Backend = flagStorage
	}
	if flagKeyDir != "" {
		cfg.Storage.Path = flagKeyDir
		if cfg.Storage.Backend == "" || cfg.Storage.Backend == "memory" {
			cfg.Storage.Backend = "file"
		}
	}
	return newApp(cfg, flagVerbose)
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	printer := NewPrinter(flagOutput, os.Stderr)
	_ = printer.PrintError(err)
	os.Exit(1)
}
