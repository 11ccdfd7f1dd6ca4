package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/milosgajdos/go-kalman/track"
)

func renderReport(w io.Writer, title string, r *track.Report) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(title)

	style := table.StyleRounded
	style.Options.SeparateColumns = true
	tw.SetStyle(style)

	status := "converged"
	if !r.Converged() {
		status = "diverged"
	}

	tw.AppendHeader(table.Row{"METRIC", "VALUE"})
	tw.AppendRows([]table.Row{
		{"estimates", len(r.Points)},
		{"skipped", r.Skipped},
		{"evaluated", r.Evaluated},
		{"failures", r.Failures},
		{"threshold", r.Threshold},
		{"max position error", r.MaxPosErr},
		{"position rmse", r.RMSEPos},
		{"max velocity error", r.MaxVelErr},
		{"velocity rmse", r.RMSEVel},
	})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"status", status})

	tw.Render()
}
