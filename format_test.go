package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(m Mode) *RunReport {
	return &RunReport{
		RunID:   "8a7b1c2e-0000-4000-8000-000000000000",
		Mode:    m,
		Horizon: 24,
		Answer:  33,
		Scenarios: []ScenarioResult{
			{Index: 0, BlueprintID: 1, Optimum: 9, Stats: SearchStats{Calls: 1200, CacheSize: 300}, Elapsed: 1500 * time.Millisecond, TimeMs: 1500},
			{Index: 1, BlueprintID: 2, Optimum: 12, Stats: SearchStats{Calls: 800, CacheSize: 200}, Elapsed: 500 * time.Millisecond, TimeMs: 500},
		},
		Workers: 2,
		Elapsed: 2 * time.Second,
		TotalMs: 2000,
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, sampleReport(ModeQuality))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "Optimum")
	assert.Equal(t, []string{"1", "9", "1200", "300", "1.5s"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"2", "12", "800", "200", "0.5s"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"SUM", "33", "2.0s"}, strings.Fields(lines[5]))

	buf.Reset()
	printTable(&buf, sampleReport(ModeTopProduct))
	assert.Contains(t, buf.String(), "PRODUCT")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, BenchOutput{Date: "2026-01-01T00:00:00Z", Reports: []*RunReport{sampleReport(ModeQuality)}}))

	var got struct {
		Reports []struct {
			Mode      string `json:"mode"`
			Answer    int    `json:"answer"`
			TotalMs   int64  `json:"totalMs"`
			Scenarios []struct {
				BlueprintID int         `json:"blueprintId"`
				Optimum     int         `json:"optimum"`
				Stats       SearchStats `json:"stats"`
			} `json:"scenarios"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Reports, 1)
	r := got.Reports[0]
	assert.Equal(t, "quality", r.Mode)
	assert.Equal(t, 33, r.Answer)
	assert.Equal(t, int64(2000), r.TotalMs)
	require.Len(t, r.Scenarios, 2)
	assert.Equal(t, 1200, r.Scenarios[0].Stats.Calls)
	assert.NotContains(t, buf.String(), "elapsed")
}
