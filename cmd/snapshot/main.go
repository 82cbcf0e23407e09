// Command snapshot runs one Brent/WTI calibration and writes the response JSON
// to a file, for static dashboard pages that cannot call the API directly.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/epeers/tracker/config"
	"github.com/epeers/tracker/internal/bundesbank"
	"github.com/epeers/tracker/internal/cache"
	"github.com/epeers/tracker/internal/eia"
	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/services"
	"github.com/epeers/tracker/internal/yahoo"
)

var (
	outPath   string
	asOf      string
	showTable bool
)

var rootCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write a calibrated Brent/WTI spread snapshot to a JSON file",
	Example: `  # Snapshot as of now
  snapshot --out data/brent-wti.json

  # Replay a past date and print a summary
  snapshot --out /tmp/replay.json --as-of 2026-04-15 --table`,
	SilenceUsage: true,
	RunE:         runSnapshot,
}

func init() {
	rootCmd.Flags().StringVar(&outPath, "out", "", "output JSON file (required)")
	rootCmd.Flags().StringVar(&asOf, "as-of", "", "snapshot date, YYYY-MM-DD or RFC3339 (default now)")
	rootCmd.Flags().BoolVar(&showTable, "table", false, "print a summary table to stdout")
	_ = rootCmd.MarkFlagRequired("out")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	now := time.Now()
	if asOf != "" {
		var d models.FlexibleDate
		if err := d.UnmarshalParam(asOf); err != nil {
			return fmt.Errorf("--as-of must be YYYY-MM-DD or RFC3339: %w", err)
		}
		now = d.Time
	}

	ctx := context.Background()
	acq := services.NewAcquisitionService(
		yahoo.NewClient(nil),
		eia.NewClient(cfg.EIAKey, nil),
		bundesbank.NewClient(nil),
		cache.NewMemoryCache(),
		nil,
	)
	svc := services.NewCalibrationService(acq, cfg.Tracker, nil)

	warnCtx, wc := services.NewWarningContext(ctx)
	resp, err := svc.Compute(warnCtx, now)
	if err != nil {
		return fmt.Errorf("calibration failed: %w", err)
	}
	resp.Warnings = wc.GetWarnings()

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := writeAtomic(outPath, append(data, '\n')); err != nil {
		return err
	}
	log.Infof("Wrote %s (as of %s, resolution %s)", outPath, resp.AsOf, resp.Metaculus.Resolution.Status())

	if showTable {
		renderSummary(cmd.OutOrStdout(), resp)
	}
	return nil
}

// writeAtomic writes data to a temp file in the target directory and renames
// it over path, so readers never see a partial file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename into %s: %w", path, err)
	}
	return nil
}

func renderSummary(w io.Writer, resp *models.CalibratedResponse) {
	table := tablewriter.NewWriter(w)
	table.Header("Leg", "Symbol", "Live", "Basis", "Method", "Calibrated", "Basis age")

	for _, leg := range []struct {
		name string
		s    models.LegSummary
	}{{"WTI", resp.WTI}, {"Brent", resp.Brent}} {
		age := fmt.Sprintf("%dbd", leg.s.BasisAgeDays)
		if leg.s.BasisStale {
			age += " (stale)"
		}
		table.Append(
			leg.name,
			leg.s.Symbol,
			fmt.Sprintf("%.2f", leg.s.LiveFutures),
			fmt.Sprintf("%+.2f", leg.s.SmoothedBasis),
			string(leg.s.SmoothedBasisMethod),
			fmt.Sprintf("%.2f", leg.s.CalibratedSpot),
			age,
		)
	}
	table.Append(
		"Spread",
		"B-A",
		fmt.Sprintf("%.2f", resp.Spread.LiveFutures),
		fmt.Sprintf("%+.2f", resp.Spread.Basis),
		"",
		fmt.Sprintf("%.2f", resp.Spread.Calibrated),
		"",
	)
	table.Render()

	fmt.Fprintf(w, "Resolution (%s): %s\n", resp.Metaculus.TargetDate, resp.Metaculus.Resolution.Status())
	if !resp.Intraday.Available {
		fmt.Fprintf(w, "Intraday unavailable: %s\n", resp.Intraday.Reason)
	}
}
