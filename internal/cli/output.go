package cli

import (
	"fmt"
	"strings"

	"github.com/chargefit/reconcile-backend/internal/domain/fitter"
	"github.com/chargefit/reconcile-backend/internal/infrastructure/storage"
	"github.com/chargefit/reconcile-backend/internal/ingest"
)

// PrintHeader prints the command header
func PrintHeader(source string, dryRun bool) {
	mode := "RECORDING"
	if dryRun {
		mode = "DRY-RUN"
	}
	fmt.Printf("chargefit: %s (%s mode)\n\n", source, mode)
}

// PrintLineErrors prints rows that were rejected during ingestion
func PrintLineErrors(lineErrs []ingest.LineError) {
	if len(lineErrs) == 0 {
		return
	}
	fmt.Printf("Skipped %d invalid row(s):\n", len(lineErrs))
	for _, le := range lineErrs {
		fmt.Printf("  - %s\n", le)
	}
	fmt.Println()
}

// PrintResults prints one line per fitted row
func PrintResults(results []fitter.Result) {
	for i, res := range results {
		marker := " "
		if res.ExactFit() {
			marker = "="
		}
		fmt.Printf("row %-3d target=%-10.2f fit=%-10.2f gap=%-8.2f %s %v\n",
			i, res.Row.Target, res.Sum, res.Gap(), marker, res.Selected)
	}
}

// PrintRunSummary prints the batch summary and all-time stats
func PrintRunSummary(run *storage.ReconcileRun, store storage.Repository) {
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Summary: Rows=%d ExactFits=%d RunID=%s\n",
		run.RowCount, run.ExactFits, run.ID)

	if store != nil {
		stats, _ := store.GetStats()
		if stats != nil && stats.TotalRuns > 0 {
			fmt.Printf("\nAll-Time Stats: Runs=%d Rows=%d ExactFits=%d AvgGap=$%.2f\n",
				stats.TotalRuns, stats.TotalRows, stats.ExactFits, stats.AverageGap)
		}
	}
}
