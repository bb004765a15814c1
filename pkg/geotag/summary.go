package geotag

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// SummaryTable renders one row per asset in r. Plain output sticks to ASCII
// box drawing.
func SummaryTable(r *Report, plain bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if plain {
		tw.SetStyle(table.StyleDefault)
	}
	tw.AppendHeader(table.Row{"File", "Status", "Local time", "Offset", "Latitude", "Longitude"})

	for _, p := range r.Patches {
		status := "tagged"
		if p.Partial() {
			status = "gps only"
		}
		tw.AppendRow(table.Row{
			p.SourceFile, status, p.DateTimeOriginal, p.OffsetTimeOriginal,
			fmt.Sprintf("%.6f", p.Latitude), fmt.Sprintf("%.6f", p.Longitude),
		})
	}
	for _, s := range r.Skips {
		tw.AppendRow(table.Row{s.SourceFile, "skipped: " + string(s.Reason), "", "", "", ""})
	}

	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d assets", r.Seen),
		fmt.Sprintf("%d tagged, %d skipped", len(r.Patches), len(r.Skips)),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	return tw.Render()
}
