package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystemWithWriters(level, &out, &errOut)
	d.SetColors(false)
	d.SetShowTime(false)
	return d, &out, &errOut
}

func TestDiagnosticLevels(t *testing.T) {
	tests := []struct {
		level    DiagnosticLevel
		expected []string
		absent   []string
	}{
		{DiagnosticError, nil, []string{"[WARN]", "[INFO]", "[VERBOSE]", "[DEBUG]"}},
		{DiagnosticInfo, []string{"[WARN] w", "[INFO] i", "[SUCCESS] s"}, []string{"[VERBOSE]", "[DEBUG]"}},
		{DiagnosticVerbose, []string{"[INFO] i", "[VERBOSE] v"}, []string{"[DEBUG]"}},
		{DiagnosticDebug, []string{"[VERBOSE] v", "[DEBUG] d"}, nil},
	}

	for _, tt := range tests {
		d, out, errOut := newTestDiagnostics(tt.level)
		d.Error("e")
		d.Warn("w")
		d.Info("i")
		d.Success("s")
		d.Verbose("v")
		d.Debug("d")

		assert.Equal(t, "[ERROR] e\n", errOut.String())
		for _, want := range tt.expected {
			assert.Contains(t, out.String(), want)
		}
		for _, unwanted := range tt.absent {
			assert.NotContains(t, out.String(), unwanted)
		}
	}
}

func TestDiagnosticSilent(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticSilent)
	d.Error("e")
	d.Section("title")
	d.Summary("done", map[string]interface{}{"a": 1})

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestDiagnosticListIndent(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)
	d.List("top %d", 1)
	d.Indent()
	d.List("nested")
	d.Unindent()
	d.Unindent()
	d.List("back")

	assert.Equal(t, "- top 1\n  - nested\n- back\n", out.String())
}

func TestDiagnosticSummarySorted(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)
	d.Summary("Scan Complete", map[string]interface{}{
		"Packages scanned": 2,
		"Factory methods":  7,
	})

	text := out.String()
	assert.Contains(t, text, "Scan Complete")
	assert.Less(t, strings.Index(text, "Factory methods: 7"), strings.Index(text, "Packages scanned: 2"))
}

func TestDiagnosticColors(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)
	d.SetColors(true)
	d.Info("colored")

	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "colored")
}
