package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"subburn/internal/pipeline"
)

// renderSummary builds the end-of-batch table: one row per video with
// the stage it reached and either its output or its error.
func renderSummary(results []pipeline.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Video", "Status", "Segments", "Output"})

	for _, res := range results {
		status := "ok"
		output := res.OutputPath
		if output == "" {
			output = res.SubtitlePath
		}
		if res.Failed() {
			status = fmt.Sprintf("failed (%s)", res.Stage)
			output = res.Err.Error()
		}
		tw.AppendRow(table.Row{
			pipeline.BaseName(res.Video),
			status,
			res.Segments,
			output,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
