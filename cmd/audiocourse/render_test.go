package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"audiocourse/internal/build"
	"audiocourse/internal/sentence"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"x"}}, []columnAlignment{alignLeft, alignRight})
	requireContains(t, out, "x")
	requireContains(t, out, "-")
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}

func TestRenderBuildReportListsNonBuiltUnits(t *testing.T) {
	started := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	report := build.Report{
		Started:  started,
		Finished: started.Add(2 * time.Second),
		Results: []build.ItemResult{
			{Sentence: sentence.Sentence{Line: 1, FolderName: "hola"}, Status: build.StatusBuilt},
			{Sentence: sentence.Sentence{Line: 2, FolderName: "adiós"}, Status: build.StatusSkipped, Reason: "already exists"},
			{Sentence: sentence.Sentence{Line: 3, FolderName: "gracias"}, Status: build.StatusFailed, Reason: "compose", Err: errors.New("boom")},
		},
	}
	var buf bytes.Buffer
	renderBuildReport(&buf, report)
	out := buf.String()
	if strings.Contains(out, "hola ") {
		t.Fatalf("built units are summarized, not listed:\n%s", out)
	}
	requireContains(t, out, "already exists")
	requireContains(t, out, "compose: boom")
	requireContains(t, out, "2s")
}

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("FFmpeg", statusError, "missing", false)
	requireContains(t, line, "FFmpeg:")
	requireContains(t, line, "[ERROR] missing")
	if !strings.HasPrefix(renderStatusLine("x", statusOK, "", true), ansiGreen) {
		t.Fatal("expected colored OK line")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "0s",
		1500 * time.Microsecond: "2ms",
		90 * time.Second:        "1m30s",
	}
	for in, want := range cases {
		if got := formatDuration(in); got != want {
			t.Errorf("formatDuration(%s) = %q, want %q", in, got, want)
		}
	}
}
