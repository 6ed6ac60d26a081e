package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"traceprep/internal/config"
	"traceprep/internal/table"
)

func setupGlobals(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
}

func writeTrace(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "trace.csv")
	data := "op_unit,name,subkey,latency\n" +
		"1,a,x,5\n" +
		"2,a,x,10\n" +
		"2,a,x,20\n" +
		"2,b,y,7\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestFilterCmd(t *testing.T) {
	setupGlobals(t)
	dir := t.TempDir()

	filterInput = writeTrace(t, dir)
	filterOutput = filepath.Join(dir, "writes.csv")
	filterCollapse = true
	filterStrip = false
	defer func() { filterCollapse = false }()

	require.NoError(t, runFilter(&cobra.Command{}, nil))

	out, err := table.ReadFile(filterOutput)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "subkey", "latency"}, out.Header)
	require.Equal(t, 2, out.NumRows())
	assert.Equal(t, []string{"a", "x", "15"}, out.Rows[0])
	assert.Equal(t, []string{"b", "y", "7"}, out.Rows[1])
}

func TestSampleCmd(t *testing.T) {
	setupGlobals(t)
	dir := t.TempDir()

	sampleInput = writeTrace(t, dir)
	sampleOutput = filepath.Join(dir, "samples")
	sampleRate = 50
	sampleCount = 0

	require.NoError(t, runSample(&cobra.Command{}, nil))

	out, err := table.ReadFile(filepath.Join(dir, "samples", "trace_50.csv"))
	require.NoError(t, err)
	assert.Equal(t, 2, out.NumRows())
}

func TestSplitCmd(t *testing.T) {
	setupGlobals(t)
	dir := t.TempDir()

	splitInput = writeTrace(t, dir)
	splitOutput = filepath.Join(dir, "folds")
	splitSeedVal = 0
	splitPrefix = ""

	require.NoError(t, runSplit(&cobra.Command{}, nil))

	for i := 0; i < 5; i++ {
		_, err := os.Stat(filepath.Join(splitOutput, fmt.Sprintf("training_%d.csv", i)))
		assert.NoError(t, err, "training fold %d missing", i)
		_, err = os.Stat(filepath.Join(splitOutput, fmt.Sprintf("test_%d.csv", i)))
		assert.NoError(t, err, "test fold %d missing", i)
	}
}

func TestPipelineCmd(t *testing.T) {
	setupGlobals(t)
	dir := t.TempDir()

	pipelineInput = writeTrace(t, dir)
	pipelineOutput = filepath.Join(dir, "out")
	pipelineCollapse = true
	pipelineStrip = false
	pipelineRate = 0
	pipelineCount = 0
	defer func() { pipelineCollapse = false }()

	require.NoError(t, runPipeline(&cobra.Command{}, nil))

	// Folds carry the pipeline prefix from config
	training, err := table.ReadFile(filepath.Join(dir, "out", "pipeline_training_0.csv"))
	require.NoError(t, err)
	test, err := table.ReadFile(filepath.Join(dir, "out", "pipeline_test_0.csv"))
	require.NoError(t, err)
	assert.Equal(t, 2, training.NumRows()+test.NumRows())
}

func TestSampleCmd_FlagConflict(t *testing.T) {
	setupGlobals(t)
	dir := t.TempDir()

	rootCmd.SetArgs([]string{
		"sample",
		"--input", writeTrace(t, dir),
		"--output", dir,
		"--rate", "50",
		"--samples", "3",
	})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate")
}

func TestFilterCmd_MissingInput(t *testing.T) {
	setupGlobals(t)

	rootCmd.SetArgs([]string{"filter", "--output", "out.csv"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input")
}

func TestFilterCmd_MissingOpUnit(t *testing.T) {
	setupGlobals(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,latency\na,5\n"), 0644))

	filterInput = path
	filterOutput = filepath.Join(dir, "out.csv")

	err := runFilter(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op_unit")

	// No output file left behind
	_, statErr := os.Stat(filterOutput)
	assert.True(t, os.IsNotExist(statErr))
}
