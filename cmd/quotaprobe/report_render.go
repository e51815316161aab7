package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"

	"quotaprobe/internal/langserver"
	"quotaprobe/internal/textutil"
)

// renderReport writes the human-readable quota report: a short identity
// header followed by one table row per model. Partial payloads degrade to a
// "no data" line instead of failing.
func renderReport(w io.Writer, report langserver.Report, useColor bool) {
	fmt.Fprintln(w, "Antigravity Model Quota")

	user := textutil.Ternary(report.UserEmail != "",
		fmt.Sprintf("%s (%s)", report.UserName, report.UserEmail),
		report.UserName)
	fmt.Fprintf(w, "User: %s\n", user)
	fmt.Fprintf(w, "Plan: %s\n", report.PlanName)
	fmt.Fprintf(w, "Prompt credits: %s  |  Flow credits: %s\n", report.PromptCredits, report.FlowCredits)

	if !report.HasModels() {
		fmt.Fprintln(w, "No model quota data found in response.")
		return
	}

	rows := make([]tableRow, 0, len(report.Models))
	for _, model := range report.Models {
		rows = append(rows, tableRow{
			cells:  []string{model.Label, quotaCell(model), model.ResetDisplay()},
			colors: severityColors(model),
		})
	}

	fmt.Fprintln(w, renderTable(
		[]string{"Model", "Quota", "Resets At"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
		useColor,
	))
}

func quotaCell(model langserver.ModelQuota) string {
	pct, ok := model.Percent()
	if !ok {
		return "N/A"
	}
	return strconv.Itoa(pct) + "%"
}

func severityColors(model langserver.ModelQuota) text.Colors {
	if _, ok := model.Percent(); !ok {
		return nil
	}
	switch model.Severity() {
	case langserver.SeverityCritical:
		return text.Colors{text.FgRed}
	case langserver.SeverityWarning:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgGreen}
	}
}
