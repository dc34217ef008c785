package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tr181tools/excelifier/internal/dmxml"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<document spec="urn:broadband-forum-org:tr-181-2-15">
  <model name="Device:2.15">
    <object name="Device.WiFi.">
      <parameter name="Channel" access="readOnly">
        <description>Current channel</description>
        <syntax><unsignedInt/></syntax>
      </parameter>
    </object>
  </model>
</document>`

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. (Equivalent to t.Chdir, which
// requires Go 1.24+.)
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

// execute runs the root command with the given args, capturing its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// The missing-flag test must run before any test that passes -f: cobra's
// required-flag check keys off the flag's Changed state, which persists
// across Execute calls within one process.
func TestRootMissingFileFlag(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file")
	assert.Contains(t, out, "Usage:")

	// No output file is written when the flag is missing.
	_, statErr := os.Stat(filepath.Join(dir, "output.xlsx"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootNonexistentInput(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out, err := execute(t, "-f", filepath.Join(dir, "missing.xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, dmxml.ErrInputNotFound)

	// Runtime failures do not dump the usage text.
	assert.NotContains(t, out, "Usage:")

	_, statErr := os.Stat(filepath.Join(dir, "output.xlsx"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootConvertsFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	input := filepath.Join(dir, "model.xml")
	require.NoError(t, os.WriteFile(input, []byte(sampleDoc), 0644))
	output := filepath.Join(dir, "device.xlsx")

	_, err := execute(t, "-f", input, "-o", output)
	require.NoError(t, err)

	_, statErr := os.Stat(output)
	assert.NoError(t, statErr)
}

func TestCheckCommandWritesNoOutput(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	input := filepath.Join(dir, "model.xml")
	require.NoError(t, os.WriteFile(input, []byte(sampleDoc), 0644))

	_, err := execute(t, "check", "-f", input)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "output.xlsx"))
	assert.True(t, os.IsNotExist(statErr))
}
