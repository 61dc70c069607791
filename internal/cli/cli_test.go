// Copyright 2026 Asma Gulbaz

package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotPath = "testdata/dialog.yaml"

// runCommand executes the root command with args and captures stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFindCommand_Singular(t *testing.T) {
	out, err := runCommand(t, "find", "button", "title=OK", "--snapshot", snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, "button \"OK\" (handle 7)\n", out)
}

func TestFindCommand_Plural(t *testing.T) {
	out, err := runCommand(t, "find", "buttons", "--snapshot", snapshotPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	// Breadth-first: the top-level OK button comes before the toolbar's.
	assert.Contains(t, lines[0], `"OK"`)
	assert.Contains(t, lines[1], `"General"`)
}

func TestFindCommand_RegexpFilter(t *testing.T) {
	out, err := runCommand(t, "find", "button", "title=/^Gen/", "--snapshot", snapshotPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"General"`)
}

func TestFindCommand_NoMatch(t *testing.T) {
	out, err := runCommand(t, "find", "slider", "--snapshot", snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, "no match\n", out)

	out, err = runCommand(t, "find", "sliders", "--snapshot", snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, "no matches\n", out)
}

func TestFindCommand_NoSnapshot(t *testing.T) {
	t.Setenv("AX_SNAPSHOT", "")
	_, err := runCommand(t, "find", "button")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tree source")
}

func TestFindCommand_SnapshotFromEnv(t *testing.T) {
	t.Setenv("AX_SNAPSHOT", snapshotPath)
	out, err := runCommand(t, "find", "button", "title=OK")
	require.NoError(t, err)
	assert.Contains(t, out, `"OK"`)
}

func TestGetCommand(t *testing.T) {
	out, err := runCommand(t, "get", "checkbox", "value", "--snapshot", snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, "value = 0\n", out)
}

func TestGetCommand_PredicateName(t *testing.T) {
	_, err := runCommand(t, "get", "button", "enabled?", "title=OK", "--snapshot", snapshotPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enabled?")
}

func TestGetCommand_PluralRejected(t *testing.T) {
	_, err := runCommand(t, "get", "buttons", "title", "--snapshot", snapshotPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "singular")
}

func TestSetCommand(t *testing.T) {
	out, err := runCommand(t, "set", "textfield", "value", "hello", "--snapshot", snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, "value set to \"hello\"\n", out)
}

func TestSetCommand_ReadOnly(t *testing.T) {
	_, err := runCommand(t, "set", "button", "title", "x", "title=OK", "--snapshot", snapshotPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not writable")
}

func TestPerformCommand(t *testing.T) {
	out, err := runCommand(t, "perform", "button", "press", "title=OK", "--snapshot", snapshotPath)
	require.NoError(t, err)
	assert.Contains(t, out, "performed press")
}

func TestPerformCommand_UnknownAction(t *testing.T) {
	_, err := runCommand(t, "perform", "button", "decrement", "title=OK", "--snapshot", snapshotPath)
	require.Error(t, err)
}

func TestWaitCommand_Timeout(t *testing.T) {
	_, err := runCommand(t, "wait", "sheet", "--timeout", "100ms", "--interval", "20ms",
		"--snapshot", snapshotPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sheet appeared")
}

func TestWaitCommand_Present(t *testing.T) {
	out, err := runCommand(t, "wait", "button", "title=OK", "--timeout", "200ms",
		"--snapshot", snapshotPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"OK"`)
}

// A plural type waits for all matches and prints them in visitation order,
// the same normalization find applies.
func TestWaitCommand_Plural(t *testing.T) {
	out, err := runCommand(t, "wait", "buttons", "--timeout", "200ms",
		"--snapshot", snapshotPath)
	require.NoError(t, err)

	okIdx := strings.Index(out, `"OK"`)
	generalIdx := strings.Index(out, `"General"`)
	require.GreaterOrEqual(t, okIdx, 0)
	require.GreaterOrEqual(t, generalIdx, 0)
	assert.Less(t, okIdx, generalIdx, "shallower match should print first")
}

// The generic element spec is an unconstrained wait, not a role named
// "element".
func TestWaitCommand_ElementWildcard(t *testing.T) {
	out, err := runCommand(t, "wait", "element", "title=OK", "--timeout", "200ms",
		"--snapshot", snapshotPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"OK"`)
}

// --gone over an element that never existed reports gone immediately.
func TestWaitCommand_GoneVacuous(t *testing.T) {
	out, err := runCommand(t, "wait", "sheet", "--gone", "--timeout", "100ms", "--interval", "20ms",
		"--snapshot", snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, "gone\n", out)
}

func TestWaitCommand_GoneStillPresent(t *testing.T) {
	_, err := runCommand(t, "wait", "button", "title=OK", "--gone",
		"--timeout", "100ms", "--interval", "20ms", "--snapshot", snapshotPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still present")
}

func TestTreeCommand(t *testing.T) {
	out, err := runCommand(t, "tree", "--snapshot", snapshotPath)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "tree", []byte(out))
}

func TestParseFilterArgs(t *testing.T) {
	f, err := parseFilterArgs([]string{"title=OK", "enabled=true", "count=3", "ratio=0.5", "name=/^S/"})
	require.NoError(t, err)

	assert.Equal(t, "OK", f["title"])
	assert.Equal(t, true, f["enabled"])
	assert.Equal(t, int64(3), f["count"])
	assert.Equal(t, 0.5, f["ratio"])
	assert.IsType(t, (*regexp.Regexp)(nil), f["name"])
}

func TestParseFilterArgs_Invalid(t *testing.T) {
	_, err := parseFilterArgs([]string{"title"})
	assert.Error(t, err)

	_, err = parseFilterArgs([]string{"=x"})
	assert.Error(t, err)

	_, err = parseFilterArgs([]string{"title=/[/"})
	assert.Error(t, err)
}

func TestParseFilterArgs_Empty(t *testing.T) {
	f, err := parseFilterArgs(nil)
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "(absent)", formatValue(nil))
	assert.Equal(t, `"x"`, formatValue("x"))
	assert.Equal(t, "true", formatValue(true))
	assert.Equal(t, "7", formatValue(int64(7)))
	assert.Equal(t, `["a", 1]`, formatValue([]any{"a", int64(1)}))
}
