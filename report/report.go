// Package report formats console summaries, the primary output of every
// migration run.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/diff"
)

// Summary writes a per-entity table of run counters.
func Summary(w io.Writer, reports []migrate.Report) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "nothing to report")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tPHASE\tFETCHED\tMIGRATED\tSKIPPED\tFAILED\tDURATION")

	var totalMigrated, totalFailed int
	for _, r := range reports {
		phase := string(r.Phase)
		if r.DryRun {
			phase += " (dry-run)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.Entity, phase, r.Fetched, r.Migrated, r.Skipped, r.Failed,
			r.Duration().Round(time.Millisecond))
		totalMigrated += r.Migrated
		totalFailed += r.Failed
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d migrated, %d failed across %d entities\n", totalMigrated, totalFailed, len(reports))
}

// DiffSummary writes a per-entity table of differential results.
func DiffSummary(w io.Writer, results []diff.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "nothing to report")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tSOURCE\tTARGET\tMISSING\tORPHANED\tIN SYNC")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%v\n",
			r.Entity, r.SourceCount, r.TargetCount, len(r.Missing), len(r.Orphaned), r.InSync())
	}
	tw.Flush()

	for _, r := range results {
		if n := len(r.Missing); n > 0 {
			fmt.Fprintf(w, "\n%s missing legacy ids: %s\n", r.Entity, previewIDs(r.Missing, 20))
		}
	}
}

// previewIDs renders up to max IDs, eliding the rest.
func previewIDs(ids []migrate.LegacyID, max int) string {
	out := ""
	for i, id := range ids {
		if i == max {
			return fmt.Sprintf("%s... (%d more)", out, len(ids)-max)
		}
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", id)
	}
	return out
}
