package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tsawler/titulus/layout"
)

const partsCSV = "FIXTURE LOCATION,MODEL,PART NO,QTY/VEH,PART DESCRIPTION\n" +
	"9M CSEL,3WC,08-DRA-14-02,2,BELLOW ASSY. WITH RETAINING CLIP\n"

// resetGenerateFlags restores the generate command's package state between
// tests.
func resetGenerateFlags() {
	genPreset = layout.PresetStandard
	genLayoutFile = ""
	genOutput = ""
	genQuiet = false
	genValidate = false
}

// writeCSV drops a small parts list into a temp directory.
func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// outputText reads back the concatenated text of the first page.
func outputText(t *testing.T, path string) string {
	t.Helper()
	f, r, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()

	page := r.Page(1)
	require.False(t, page.V.IsNull())

	var sb strings.Builder
	for _, item := range page.Content().Text {
		sb.WriteString(item.S)
	}
	return sb.String()
}

// executeCommand runs the CLI end to end through cobra.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRunGenerate(t *testing.T) {
	logger = zap.NewNop()
	defer resetGenerateFlags()

	input := writeCSV(t, partsCSV)
	output := filepath.Join(filepath.Dir(input), "out.pdf")
	genOutput = output

	require.NoError(t, runGenerate(generateCmd, []string{input}))
	assert.FileExists(t, output)
	assert.Contains(t, outputText(t, output), "08-DRA-14-02")
}

func TestRunGenerateDefaultOutput(t *testing.T) {
	logger = zap.NewNop()
	defer resetGenerateFlags()

	input := writeCSV(t, partsCSV)

	require.NoError(t, runGenerate(generateCmd, []string{input}))
	assert.FileExists(t, filepath.Join(filepath.Dir(input), "parts_labels.pdf"))
}

func TestRunGenerateValidates(t *testing.T) {
	logger = zap.NewNop()
	defer resetGenerateFlags()

	input := writeCSV(t, partsCSV)
	output := filepath.Join(filepath.Dir(input), "out.pdf")
	genValidate = true

	require.NoError(t, runGenerate(generateCmd, []string{input, output}))
	assert.FileExists(t, output)
}

func TestRunGenerateLayoutFile(t *testing.T) {
	logger = zap.NewNop()
	defer resetGenerateFlags()

	data, err := layout.Encode(layout.Standard())
	require.NoError(t, err)
	layoutPath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(layoutPath, data, 0o644))

	input := writeCSV(t, partsCSV)
	output := filepath.Join(filepath.Dir(input), "out.pdf")
	genLayoutFile = layoutPath

	require.NoError(t, runGenerate(generateCmd, []string{input, output}))
	assert.FileExists(t, output)
}

func TestRunGenerateErrors(t *testing.T) {
	logger = zap.NewNop()
	defer resetGenerateFlags()

	t.Run("missing input", func(t *testing.T) {
		err := runGenerate(generateCmd, []string{filepath.Join(t.TempDir(), "absent.csv")})
		assert.Error(t, err)
	})

	t.Run("header only", func(t *testing.T) {
		input := writeCSV(t, "PART NO,QTY\n")
		err := runGenerate(generateCmd, []string{input})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no records")
	})

	t.Run("bad layout file", func(t *testing.T) {
		genLayoutFile = filepath.Join(t.TempDir(), "absent.yaml")
		defer resetGenerateFlags()
		err := runGenerate(generateCmd, []string{writeCSV(t, partsCSV)})
		assert.Error(t, err)
	})
}

func TestGenerateViaRootCommand(t *testing.T) {
	defer resetGenerateFlags()

	input := writeCSV(t, partsCSV)
	output := filepath.Join(filepath.Dir(input), "out.pdf")

	_, err := executeCommand(t, "generate", input, output)
	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestEnvironmentSelectsPreset(t *testing.T) {
	defer resetGenerateFlags()
	t.Setenv("TITULUS_PRESET", "station")

	input := writeCSV(t, "STRUCTURE,STATION NO,PART NO,QTY,PART NAME\n"+
		"UNDERBODY,ST-04,PN-1,2,CROSS MEMBER\n")
	output := filepath.Join(filepath.Dir(input), "out.pdf")

	_, err := executeCommand(t, "generate", input, output)
	require.NoError(t, err)
	assert.Contains(t, outputText(t, output), "STATION NO")
}

func TestPresetsCommand(t *testing.T) {
	out, err := executeCommand(t, "presets")
	require.NoError(t, err)
	assert.Equal(t, "legacy\nstandard\nstation\n", out)
}

func TestPresetsDump(t *testing.T) {
	defer func() { presetsDump = "" }()

	out, err := executeCommand(t, "presets", "--dump", "station")
	require.NoError(t, err)
	assert.Contains(t, out, "name: station")
	assert.Contains(t, out, "cells:")

	_, err = executeCommand(t, "presets", "--dump", "bogus")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "titulus dev")
}
