package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	Stdout string
	Stderr string
}

func runTestApp(t *testing.T, stdin string, args ...string) (runResult, error) {
	t.Helper()
	outBuf := new(strings.Builder)
	errBuf := new(strings.Builder)
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = outBuf
	app.ErrWriter = errBuf
	err := app.Run(append([]string{"acgrep"}, args...))
	return runResult{outBuf.String(), errBuf.String()}, err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const patterns = "he\nshe\n\nhis\nhers\n"

func TestBuildAndScan(t *testing.T) {
	for _, layout := range []string{"16", "12", "8", "da"} {
		t.Run(layout, func(t *testing.T) {
			dir := t.TempDir()
			words := writeFile(t, dir, "words.txt", patterns)
			text := writeFile(t, dir, "text.txt", "ahishers")
			image := filepath.Join(dir, "words.ac")

			_, err := runTestApp(t, "", "build", "--layout", layout, "-o", image, words)
			require.NoError(t, err)

			res, err := runTestApp(t, "", "scan", "-a", image, text)
			require.NoError(t, err)
			want := text + ":4:his\n" + text + ":6:she\n" + text + ":6:he\n" + text + ":8:hers\n"
			assert.Equal(t, want, res.Stdout)
		})
	}
}

func TestBuildFromStdinAndScanStdin(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "words.ac")
	_, err := runTestApp(t, patterns, "build", "--zstd", "-o", image)
	require.NoError(t, err)

	res, err := runTestApp(t, "ushers", "scan", "-a", image)
	require.NoError(t, err)
	assert.Equal(t, "-:4:she\n-:4:he\n-:6:hers\n", res.Stdout)
}

func TestScanManyFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "words.ac")
	_, err := runTestApp(t, patterns, "build", "-o", image)
	require.NoError(t, err)

	var files []string
	var want strings.Builder
	for i, content := range []string{"his", "nothing", "hers", "she", "x"} {
		f := writeFile(t, dir, "f"+string(rune('0'+i)), content)
		files = append(files, f)
		switch content {
		case "his":
			want.WriteString(f + ":3:his\n")
		case "hers":
			want.WriteString(f + ":2:he\n" + f + ":4:hers\n")
		case "she":
			want.WriteString(f + ":3:she\n" + f + ":3:he\n")
		}
	}
	res, err := runTestApp(t, "", append([]string{"scan", "-j", "2", "-a", image}, files...)...)
	require.NoError(t, err)
	assert.Equal(t, want.String(), res.Stdout)

	res, err = runTestApp(t, "", append([]string{"scan", "--count", "-a", image}, files...)...)
	require.NoError(t, err)
	assert.Equal(t, "4\n", res.Stdout)
}

func TestScanReverseFoldCase(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "rev.ac")
	_, err := runTestApp(t, "He\nSHE\n", "build", "--reverse", "--fold-case", "--layout", "da", "--ext", "1", "-o", image)
	require.NoError(t, err)

	text := writeFile(t, dir, "text.txt", "uSHErs")
	res, err := runTestApp(t, "", "scan", "--reverse", "--fold-case", "-a", image, text)
	require.NoError(t, err)
	// Words are restored from the trie: the image has no strpool.
	assert.Equal(t, text+":2:he\n"+text+":1:she\n", res.Stdout)

	res, err = runTestApp(t, "", "scan", "--count", "--reverse", "--fold-case", "-a", image, text, text)
	require.NoError(t, err)
	assert.Equal(t, "2\n", res.Stdout)
}

func TestScanIDsOnly(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "ids.ac")
	_, err := runTestApp(t, "abc\n", "build", "--ext", "0", "-o", image)
	require.NoError(t, err)

	res, err := runTestApp(t, "xabc", "scan", "-a", image)
	require.NoError(t, err)
	assert.Equal(t, "-:4:#0\n", res.Stdout)
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "words.ac")
	res, err := runTestApp(t, patterns, "--verbose", "build", "--layout", "12", "-o", image)
	require.NoError(t, err)
	assert.Contains(t, res.Stderr, "aho-corasick compiled")
	assert.Contains(t, res.Stderr, "image written")

	res, err = runTestApp(t, "", "stats", image)
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "layout:      Layout12")
	assert.Contains(t, res.Stdout, "words:       4")
	assert.Contains(t, res.Stdout, "states:      10")
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "words.ac")

	_, err := runTestApp(t, patterns, "build", "--layout", "7", "-o", image)
	assert.ErrorContains(t, err, "unknown layout")

	_, err = runTestApp(t, patterns, "build", "--ext", "5", "-o", image)
	assert.ErrorContains(t, err, "--ext 5")

	_, err = runTestApp(t, "", "scan", "-a", filepath.Join(dir, "missing.ac"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = runTestApp(t, patterns, "build", "-o", image)
	require.NoError(t, err)
	_, err = runTestApp(t, "", "scan", "-a", image, filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = runTestApp(t, "", "stats")
	assert.Error(t, err)

	garbage := writeFile(t, dir, "garbage.ac", strings.Repeat("x", 200))
	_, err = runTestApp(t, "", "stats", garbage)
	assert.Error(t, err)
}
