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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jeremyhahn/go-hybridsign/pkg/encoding"
	"github.com/jeremyhahn/go-hybridsign/pkg/keystore"
	"github.com/jeremyhahn/go-hybridsign/pkg/lifecycle"
	"github.com/jeremyhahn/go-hybridsign/pkg/suite"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

func (p *Printer) printJSON(v interface{}) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(msg string) error {
	if p.format == OutputFormatJSON {
		return p.printJSON(map[string]string{"status": "ok", "message": msg})
	}
	_, err := fmt.Fprintln(p.writer, msg)
	return err
}

// PrintError prints an error
func (p *Printer) PrintError(err error) error {
	if p.format == OutputFormatJSON {
		return p.printJSON(map[string]string{"status": "error", "error": err.Error()})
	}
	_, werr := fmt.Fprintf(p.writer, "Error: %v\n", err)
	return werr
}

// PrintKeyRecord prints a single key record
func (p *Printer) PrintKeyRecord(rec *keystore.KeyRecord) error {
	if p.format == OutputFormatJSON {
		return p.printJSON(rec)
	}
	fmt.Fprintf(p.writer, "Key ID:     %s\n", rec.ID)
	fmt.Fprintf(p.writer, "Agent:      %s\n", rec.AgentID)
	fmt.Fprintf(p.writer, "Suite:      %s\n", rec.SuiteID)
	fmt.Fprintf(p.writer, "Status:     %s\n", rec.Status)
	fmt.Fprintf(p.writer, "Usage:      %s\n", usageString(rec.Usage))
	fmt.Fprintf(p.writer, "Created:    %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(p.writer, "Public key: %s\n", encoding.EncodeHex(rec.PublicKey))
	return nil
}

// PrintKeyList prints a list of key records
func (p *Printer) PrintKeyList(records []*keystore.KeyRecord) error {
	if p.format == OutputFormatJSON {
		return p.printJSON(map[string]interface{}{"keys": records})
	}
	if len(records) == 0 {
		fmt.Fprintln(p.writer, "No keys found")
		return nil
	}
	fmt.Fprintf(p.writer, "%-36s %-22s %-10s %-12s\n", "KEY ID", "SUITE", "STATUS", "USAGE")
	fmt.Fprintln(p.writer, strings.Repeat("-", 84))
	for _, rec := range records {
		fmt.Fprintf(p.writer, "%-36s %-22s %-10s %-12s\n",
			rec.ID, rec.SuiteID, rec.Status, usageString(rec.Usage))
	}
	return nil
}

// PrintSuites prints the registered suite descriptors
func (p *Printer) PrintSuites(descriptors []suite.Descriptor) error {
	if p.format == OutputFormatJSON {
		return p.printJSON(map[string]interface{}{"suites": descriptors})
	}
	fmt.Fprintf(p.writer, "%-22s %-14s %12s %12s\n", "SUITE", "CATEGORY", "PUBKEY BYTES", "SIG BYTES")
	fmt.Fprintln(p.writer, strings.Repeat("-", 64))
	for _, d := range descriptors {
		fmt.Fprintf(p.writer, "%-22s %-14s %12d %12d\n",
			d.ID, d.Category, d.PublicKeySize, d.SignatureSize)
	}
	return nil
}

// PrintProfile prints an agent profile
func (p *Printer) PrintProfile(profile *lifecycle.Profile) error {
	if p.format == OutputFormatJSON {
		return p.printJSON(profile)
	}
	fmt.Fprintf(p.writer, "Agent:        %s\n", profile.AgentID)
	fmt.Fprintf(p.writer, "Active keys:  %d\n", profile.ActiveCount)
	categories := make([]string, 0, len(profile.Categories))
	for _, c := range profile.Categories {
		categories = append(categories, c.String())
	}
	fmt.Fprintf(p.writer, "Categories:   %s\n", strings.Join(categories, ", "))
	fmt.Fprintf(p.writer, "Hybrid ready: %t\n", profile.HybridReady())
	return nil
}

// PrintSignature prints one signature as hex
func (p *Printer) PrintSignature(signature []byte) error {
	if p.format == OutputFormatJSON {
		return p.printJSON(map[string]string{"signature": encoding.EncodeHex(signature)})
	}
	_, err := fmt.Fprintln(p.writer, encoding.EncodeHex(signature))
	return err
}

// PrintSignatures prints an ordered signature list as hex
func (p *Printer) PrintSignatures(signatures [][]byte) error {
	if p.format == OutputFormatJSON {
		hexSigs := make([]string, len(signatures))
		for i, sig := range signatures {
			hexSigs[i] = encoding.EncodeHex(sig)
		}
		return p.printJSON(map[string]interface{}{"signatures": hexSigs})
	}
	for i, sig := range signatures {
		fmt.Fprintf(p.writer, "[%d] %s\n", i, encoding.EncodeHex(sig))
	}
	return nil
}

// PrintVerification prints a verification result
func (p *Printer) PrintVerification(valid bool) error {
	if p.format == OutputFormatJSON {
		return p.printJSON(map[string]bool{"valid": valid})
	}
	if valid {
		_, err := fmt.Fprintln(p.writer, "Signature is VALID")
		return err
	}
	_, err := fmt.Fprintln(p.writer, "Signature is INVALID")
	return err
}

func usageString(usage []keystore.Usage) string {
	parts := make([]string, len(usage))
	for i, u := range usage {
		parts[i] = string(u)
	}
	return strings.Join(parts, ",")
}
