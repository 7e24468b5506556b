// Package render is the presentation layer: it writes records, comparison
// verdicts, and terminal pipeline states for the CLI.
package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/slabcheck/slabcheck/internal/model"
	"github.com/slabcheck/slabcheck/internal/pipeline"
)

var categoryLabels = map[model.PriceCategory]string{
	model.SignificantlyOverpriced: "Significantly overpriced",
	model.ModeratelyOverpriced:    "Moderately overpriced",
	model.SlightlyHigher:          "Slightly above reference",
	model.FairlyPriced:            "Fairly priced",
	model.Underpriced:             "Underpriced",
}

var categoryColors = map[model.PriceCategory]text.Color{
	model.SignificantlyOverpriced: text.FgRed,
	model.ModeratelyOverpriced:    text.FgYellow,
	model.SlightlyHigher:          text.FgYellow,
	model.FairlyPriced:            text.FgGreen,
	model.Underpriced:             text.FgHiGreen,
}

// Outcome writes a pipeline outcome to w. Every terminal state renders
// something: a record, a manual-entry prompt, a not-applicable note, or an
// error with its retry hint.
func Outcome(w io.Writer, o pipeline.Outcome) {
	switch o.Kind {
	case pipeline.OutcomeRecord:
		Record(w, o.Record)
		if o.Comparison != nil {
			Comparison(w, o.Comparison)
		}
	case pipeline.OutcomeManualEntry:
		fmt.Fprintln(w, "No cert number found automatically.")
		fmt.Fprintln(w, "This looks like a graded-card listing; run `slabcheck fetch <cert-number>` with the number from the slab label.")
	case pipeline.OutcomeNotApplicable:
		fmt.Fprintln(w, "Not a graded-card listing; nothing to check.")
	case pipeline.OutcomeError:
		fmt.Fprintf(w, "Error: %s\n", o.ErrorMessage)
		if o.Retryable {
			fmt.Fprintln(w, "Re-run the command to retry.")
		}
	}
}

// Record writes the cert record panel.
func Record(w io.Writer, r *model.CertRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRow(table.Row{"Cert #", r.CertNumber})
	t.AppendRow(table.Row{"Card", r.CardName})
	if r.CardDetails != "" {
		t.AppendRow(table.Row{"Details", r.CardDetails})
	}
	t.AppendRow(table.Row{"Grade", r.Grade})
	if r.Provenance.FromCache && r.Provenance.CachedAt != nil {
		t.AppendRow(table.Row{"Source", "cache (" + r.Provenance.CachedAt.Format("2006-01-02 15:04") + ")"})
	} else {
		t.AppendRow(table.Row{"Source", "live fetch"})
	}
	t.Render()

	if r.PriceTable.Len() > 0 {
		gradeTable(w, "Price guide", r.PriceTable)
	}
	if r.PopulationTable.Len() > 0 {
		gradeTable(w, "Population", r.PopulationTable)
	}
}

func gradeTable(w io.Writer, title string, gt model.GradeTable) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Grade", "Value"})
	for _, row := range gt.Entries() {
		t.AppendRow(table.Row{row.Label, row.Value})
	}
	t.Render()
}

// Comparison writes the price verdict.
func Comparison(w io.Writer, c *model.PriceComparison) {
	label := categoryLabels[c.Category]
	if color, ok := categoryColors[c.Category]; ok {
		label = color.Sprint(label)
	}
	fmt.Fprintf(w, "Listing %s vs reference %s: %s (%s%%)\n",
		c.ListingPrice.StringFixed(2),
		c.ReferencePrice.StringFixed(2),
		label,
		c.PercentDifference.StringFixed(1),
	)
}
