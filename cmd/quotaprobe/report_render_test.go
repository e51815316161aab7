package main

import (
	"bytes"
	"strings"
	"testing"

	"quotaprobe/internal/langserver"
)

func floatPtr(v float64) *float64 { return &v }

func TestRenderReportWithModels(t *testing.T) {
	report := langserver.Report{
		UserName:      "Ada Lovelace",
		UserEmail:     "ada@example.com",
		PlanName:      "Pro",
		PromptCredits: "120",
		FlowCredits:   "45",
		Models: []langserver.ModelQuota{
			{Label: "Claude Sonnet 4.5", RemainingFraction: floatPtr(0.65), ResetTime: "2026-08-30T18:00:00Z"},
			{Label: "Gemini 3 Pro"},
		},
	}

	var buf bytes.Buffer
	renderReport(&buf, report, false)
	out := buf.String()

	if !strings.Contains(out, "Ada Lovelace (ada@example.com)") {
		t.Fatalf("missing user line: %s", out)
	}
	if !strings.Contains(out, "Plan: Pro") {
		t.Fatalf("missing plan line: %s", out)
	}
	if !strings.Contains(out, "Prompt credits: 120") || !strings.Contains(out, "Flow credits: 45") {
		t.Fatalf("missing credit line: %s", out)
	}
	if !strings.Contains(out, "Claude Sonnet 4.5") || !strings.Contains(out, "65%") {
		t.Fatalf("missing model row: %s", out)
	}
	if !strings.Contains(out, "2026-08-30 18:00") {
		t.Fatalf("missing reset time: %s", out)
	}
	if !strings.Contains(out, "N/A") {
		t.Fatalf("missing N/A for absent fraction: %s", out)
	}
}

func TestRenderReportWithoutModels(t *testing.T) {
	report := langserver.Report{UserName: "Unknown", PlanName: "Unknown", PromptCredits: "?", FlowCredits: "?"}

	var buf bytes.Buffer
	renderReport(&buf, report, false)
	out := buf.String()

	if !strings.Contains(out, "No model quota data found in response.") {
		t.Fatalf("missing no-data line: %s", out)
	}
	if strings.Contains(out, "Resets At") {
		t.Fatalf("table rendered without models: %s", out)
	}
}

func TestQuotaCell(t *testing.T) {
	if got := quotaCell(langserver.ModelQuota{RemainingFraction: floatPtr(0.873)}); got != "87%" {
		t.Fatalf("quotaCell = %q, want 87%%", got)
	}
	if got := quotaCell(langserver.ModelQuota{}); got != "N/A" {
		t.Fatalf("quotaCell = %q, want N/A", got)
	}
}

func TestSeverityColors(t *testing.T) {
	if colors := severityColors(langserver.ModelQuota{}); colors != nil {
		t.Fatalf("expected no colors for absent fraction, got %v", colors)
	}
	if colors := severityColors(langserver.ModelQuota{RemainingFraction: floatPtr(0.1)}); len(colors) == 0 {
		t.Fatal("expected color for critical quota")
	}
	if colors := severityColors(langserver.ModelQuota{RemainingFraction: floatPtr(0.4)}); len(colors) == 0 {
		t.Fatal("expected color for warning quota")
	}
	if colors := severityColors(langserver.ModelQuota{RemainingFraction: floatPtr(0.9)}); len(colors) == 0 {
		t.Fatal("expected color for nominal quota")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"A", "B"},
		[]tableRow{{cells: []string{"only"}}},
		[]columnAlignment{alignLeft, alignRight},
		false,
	)
	if !strings.Contains(out, "only") {
		t.Fatalf("missing cell: %s", out)
	}
}
