package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func TestFind_FileMode(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "nothing\nthe cat sat on the mat\n"})
	path := filepath.Join(dir, "a.txt")

	stdout, _, err := runCommand(t, "find", "-q", "at", "-f", path, "--color", "never", "--width", "80")
	require.NoError(t, err)

	want := "Searching in files [\"" + path + "\"]\n" +
		"Found the following matches in file 'a.txt': \n" +
		"line number: 2 position: [6-7, 10-11, 21-22] line content: the cat sat on the mat\n" +
		"\n"
	assert.Equal(t, want, stdout)
}

func TestFind_IgnoreCase(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "Hello WORLD\n"})

	stdout, _, err := runCommand(t, "find", "-q", "world", "-i", "-f", filepath.Join(dir, "a.txt"), "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "line number: 1 position: [7-11] line content: Hello WORLD\n")

	stdout, _, err = runCommand(t, "find", "-q", "world", "-f", filepath.Join(dir, "a.txt"), "--color", "never")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Found the following matches")
}

func TestFind_PositionalFilePaths(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.txt": "needle\n",
		"b.txt": "another needle\n",
	})

	stdout, _, err := runCommand(t, "find", "-q", "needle", "--color", "never",
		"-f", filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Found the following matches in file 'a.txt'")
	assert.Contains(t, stdout, "Found the following matches in file 'b.txt'")
	assert.Contains(t, stdout, "line number: 1 position: [9-14] line content: another needle\n")
}

func TestFind_DirMode(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.txt":     "needle here\n",
		"sub/b.txt": "and a needle\n",
		"c.txt":     "nothing\n",
	})

	stdout, _, err := runCommand(t, "find", "-q", "needle", "-d", dir, "--color", "never", "--progress=false")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Searching in directory [\""+dir+"\"]\n"))
	assert.Contains(t, stdout, "Found the following matches in file 'a.txt'")
	assert.Contains(t, stdout, "Found the following matches in file 'sub/b.txt'")
	assert.NotContains(t, stdout, "c.txt")
}

func TestFind_DirModeSameBaseName(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a/x.txt": "needle in a\n",
		"b/x.txt": "needle in b\n",
	})
	outDir := t.TempDir()

	stdout, _, err := runCommand(t, "find", "-q", "needle", "-d", dir, "-o", outDir,
		"--color", "never", "--progress=false")
	require.NoError(t, err)

	for _, out := range []string{stdout, readFile(t, filepath.Join(outDir, "output.txt"))} {
		assert.Equal(t, 1, strings.Count(out, "Found the following matches in file 'a/x.txt': \n"), out)
		assert.Equal(t, 1, strings.Count(out, "Found the following matches in file 'b/x.txt': \n"), out)
		assert.NotContains(t, out, "'x.txt'")
	}
}

func TestFind_FileModeSameBaseName(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a/x.txt": "needle\n",
		"b/x.txt": "needle\n",
	})
	a, err := canonicalize(filepath.Join(dir, "a", "x.txt"))
	require.NoError(t, err)
	b, err := canonicalize(filepath.Join(dir, "b", "x.txt"))
	require.NoError(t, err)

	stdout, _, err := runCommand(t, "find", "-q", "needle", "--color", "never", "-f", a, b)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Found the following matches in file '"+a+"': \n")
	assert.Contains(t, stdout, "Found the following matches in file '"+b+"': \n")
}

func TestFind_ConfigDirDoesNotBlockFileMode(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "needle\n"})
	file := filepath.Join(dir, "a.txt")

	args := withConfigArgs([]string{"find", "-q", "needle", "-f", file, "--color", "never"},
		[]string{"--dir", dir, "--ignore-case"})
	stdout, _, err := runCommand(t, args...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Searching in files [\""+file+"\"]\n"), stdout)
	assert.Contains(t, stdout, "'a.txt'")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFind_EmptyListAsymmetry(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"hit.txt":  "needle\n",
		"miss.txt": "nothing\n",
	})
	miss := filepath.Join(dir, "miss.txt")

	stdout, _, err := runCommand(t, "find", "-q", "needle", "--color", "never", "--stats",
		"-f", filepath.Join(dir, "hit.txt"), miss)
	require.NoError(t, err)
	assert.Contains(t, stdout, "miss.txt", "file mode keeps files without matches")

	stdout, _, err = runCommand(t, "find", "-q", "needle", "--color", "never", "--stats",
		"--progress=false", "-d", dir)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "miss.txt", "directory mode omits files without matches")
	assert.Contains(t, stdout, "hit.txt")
}

func TestFind_OutputFile(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "the cat sat on the mat\n"})
	outDir := t.TempDir()

	stdout, _, err := runCommand(t, "find", "-q", "at", "-f", filepath.Join(dir, "a.txt"),
		"-o", outDir, "--color", "always", "--width", "80")
	require.NoError(t, err)

	reportPath := filepath.Join(outDir, "output.txt")
	assert.Contains(t, stdout, "Output saved to: \""+reportPath+"\"")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Equal(t, "Found the following matches in file 'a.txt': \n"+
		"line number: 1 position: [6-7, 10-11, 21-22] line content: the cat sat on the mat\n", string(data))
	assert.NotContains(t, string(data), "\x1b[")
}

func TestFind_Errors(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "x\n"})
	file := filepath.Join(dir, "a.txt")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty query", []string{"find", "-q", "", "-f", file}, "query must not be empty"},
		{"both modes", []string{"find", "-q", "x", "-f", file, "-d", dir}, "not both"},
		{"neither mode", []string{"find", "-q", "x"}, "must specify either"},
		{"missing output dir", []string{"find", "-q", "x", "-f", file, "-o", filepath.Join(dir, "nope")}, "does not exist"},
		{"bad color", []string{"find", "-q", "x", "-f", file, "--color", "pink"}, "invalid color mode"},
		{"bad log level", []string{"find", "-q", "x", "-f", file, "--log-level", "loud"}, "invalid log level"},
		{"no valid files", []string{"find", "-q", "x", "-f", filepath.Join(dir, "missing")}, "no valid files"},
		{"missing dir", []string{"find", "-q", "x", "-d", filepath.Join(dir, "missing")}, "directory does not exist"},
		{"dir is a file", []string{"find", "-q", "x", "-d", file}, "not a valid directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFind_UnreadableFileIsNotFatal(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"good.txt": "needle\n",
		"bad.txt":  "needle \xff\xfe\n",
	})

	stdout, _, err := runCommand(t, "find", "-q", "needle", "--color", "never",
		"-f", filepath.Join(dir, "good.txt"), filepath.Join(dir, "bad.txt"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "'good.txt'")
	assert.NotContains(t, stdout, "'bad.txt'")
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rspfind version "+Version+"\n", stdout)
}
