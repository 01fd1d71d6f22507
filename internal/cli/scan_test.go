package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/i18n-detect/internal/config"
	"github.com/mvp-joe/i18n-detect/internal/detect"
	"github.com/mvp-joe/i18n-detect/internal/discovery"
	"github.com/mvp-joe/i18n-detect/internal/report"
)

// Test Plan for scan:
// - Text format prints one line per segment with parser positions
// - JSON format prints the envelope with entries in input order
// - Directory arguments are expanded with the configured ignore patterns
// - A syntax error aborts the scan by default
// - --collect-errors reports the broken file and keeps going
// - --fail-on-found returns an error when text is found
// - --output writes the report to a file
// - Config file values apply when no flag overrides them
// - filterReport keeps only the changed files
// - Every extension watch mode reacts to is picked up by default discovery
//
// Commands share package-level flag state, so these tests do not run in parallel.

const componentSource = `export const Component = () => {
  return <div>text</div>;
};
`

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScan_TextFormat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file1.tsx")
	writeFile(t, file, componentSource)

	out, err := executeCommand(t, "scan", "--root", dir, "--quiet", "--format", "text", file)
	require.NoError(t, err)
	assert.Equal(t, file+":2:14-18\t\"text\"\n", out)
}

func TestScan_JSONFormat(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "b.tsx")
	second := filepath.Join(dir, "a.ts")
	writeFile(t, first, componentSource)
	writeFile(t, second, "const label = 'Save';\n")

	out, err := executeCommand(t, "scan", "--root", dir, "--quiet", first, second)
	require.NoError(t, err)

	var env report.Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	require.Len(t, env.Entries, 2)
	assert.Equal(t, first, env.Entries[0].FilePath)
	assert.Equal(t, second, env.Entries[1].FilePath)
	assert.Equal(t, []detect.Segment{{OriginalText: "Save", LineNumber: 1, StartIndex: 14, EndIndex: 20}}, env.Entries[1].Segment)
	assert.Empty(t, env.Failures)
}

func TestScan_ExpandsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "app.tsx"), componentSource)
	writeFile(t, filepath.Join(dir, "node_modules", "lib", "index.js"), "const x = 'vendored';\n")
	writeFile(t, filepath.Join(dir, "dist", "app.js"), "const x = 'built';\n")

	out, err := executeCommand(t, "scan", "--root", dir, "--quiet", "--format", "text", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src", "app.tsx")+":2:14-18\t\"text\"\n", out)
}

func TestScan_FailurePolicy(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.tsx")
	good := filepath.Join(dir, "good.tsx")
	writeFile(t, broken, "const = <div>;\n")
	writeFile(t, good, componentSource)

	t.Run("abort by default", func(t *testing.T) {
		_, err := executeCommand(t, "scan", "--root", dir, "--quiet", broken, good)
		require.Error(t, err)
		assert.ErrorIs(t, err, detect.ErrParse)
	})

	t.Run("collect errors", func(t *testing.T) {
		out, err := executeCommand(t, "scan", "--root", dir, "--quiet", "--collect-errors", broken, good)
		require.NoError(t, err)

		var env report.Envelope
		require.NoError(t, json.Unmarshal([]byte(out), &env))
		require.Len(t, env.Entries, 1)
		assert.Equal(t, good, env.Entries[0].FilePath)
		require.Len(t, env.Failures, 1)
		assert.Equal(t, broken, env.Failures[0].FilePath)
		assert.Equal(t, detect.ErrorKindParse, env.Failures[0].Kind)
	})
}

func TestScan_FailOnFound(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file1.tsx")
	writeFile(t, file, componentSource)
	empty := filepath.Join(dir, "empty.ts")
	writeFile(t, empty, "export {};\n")

	_, err := executeCommand(t, "scan", "--root", dir, "--quiet", "--fail-on-found", file)
	assert.ErrorIs(t, err, errHardcodedTextFound)

	_, err = executeCommand(t, "scan", "--root", dir, "--quiet", "--fail-on-found", empty)
	assert.NoError(t, err)
}

func TestScan_OutputFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file1.tsx")
	writeFile(t, file, componentSource)
	outFile := filepath.Join(dir, "report.txt")

	out, err := executeCommand(t, "scan", "--root", dir, "--quiet", "--format", "text", "--output", outFile, file)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, file+":2:14-18\t\"text\"\n", string(data))
}

func TestScan_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file1.tsx")
	writeFile(t, file, componentSource)
	writeFile(t, filepath.Join(dir, ".i18n-detect", "config.yml"), "output:\n  format: text\n")

	out, err := executeCommand(t, "scan", "--root", dir, "--quiet", file)
	require.NoError(t, err)
	assert.Equal(t, file+":2:14-18\t\"text\"\n", out)

	out, err = executeCommand(t, "scan", "--root", dir, "--quiet", "--format", "json", file)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), "flag should override config")
}

func TestScan_InvalidFlag(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(t, "scan", "--root", dir, "--quiet", "--format", "xml", dir)
	assert.Error(t, err)

	_, err = executeCommand(t, "scan", "--root", dir, "--quiet", "--concurrency", "0", dir)
	assert.Error(t, err)
}

func TestFilterReport(t *testing.T) {
	segment := detect.NewSegmentBuilder().WithOriginalText("a").WithLineNumber(1).Build()
	rep := &detect.Report{
		Entries: []detect.TextEntry{
			{FilePath: "a.tsx", Segment: []detect.Segment{segment}},
			{FilePath: "b.tsx", Segment: []detect.Segment{segment}},
			{FilePath: "c.tsx", Segment: []detect.Segment{segment}},
		},
		Failures: []detect.FileFailure{
			{FilePath: "d.tsx", Kind: detect.ErrorKindParse, Message: "bad"},
		},
	}

	filtered := filterReport(rep, []string{"c.tsx", "a.tsx", "d.tsx", "gone.tsx"})

	require.Len(t, filtered.Entries, 2)
	assert.Equal(t, "a.tsx", filtered.Entries[0].FilePath)
	assert.Equal(t, "c.tsx", filtered.Entries[1].FilePath)
	assert.Equal(t, rep.Failures, filtered.Failures)

	assert.Empty(t, filterReport(rep, nil).Entries)
}

func TestSourceExtensionsAreDiscovered(t *testing.T) {
	dir := t.TempDir()
	var want []string
	for _, ext := range sourceExtensions {
		path := filepath.Join(dir, "file"+ext)
		writeFile(t, path, "export {};\n")
		want = append(want, path)
	}

	cfg := config.Default()
	fd, err := discovery.NewFileDiscovery(dir, cfg.Paths.Include, cfg.Paths.Ignore)
	require.NoError(t, err)
	files, err := fd.DiscoverFiles()
	require.NoError(t, err)

	assert.ElementsMatch(t, want, files)
}
