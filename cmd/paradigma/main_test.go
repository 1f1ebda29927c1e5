package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	// Flag variables outlive Execute.
	configPath, verbose, storeDSN = "", false, ""
	modelsOut, modelsIn, transducerOut, transducerIn = "", "", "", ""
	sampleSize, showMisses = 0, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), "%v", args)
	return out.String()
}

func TestBuildAnalyzeModels(t *testing.T) {
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "corpus.tsv")
	require.NoError(t, os.WriteFile(corpusPath, []byte(
		"amo\tamare\t1|s\namas\tamare\t2|s\namat\tamare\t3|s\n\n"+
			"laudo\tlaudare\t1|s\nlaudas\tlaudare\t2|s\nlaudat\tlaudare\t3|s\n"), 0o644))
	modelsPath := filepath.Join(dir, "models.txt")
	fstPath := filepath.Join(dir, "analyzer.fst")

	out := run(t, "build", corpusPath, "-m", modelsPath, "-t", fstPath)
	assert.Contains(t, out, "1 models")

	out = run(t, "analyze", "-t", fstPath, "cantat", "xyz")
	assert.Equal(t, "cantat\tcanto\t3\nxyz\t?\n", out)

	out = run(t, "models", modelsPath)
	assert.Equal(t, "amare: 2 stems\nVariables:\n0.25: .\n0: \n", out)
}

func TestBuildWithStore(t *testing.T) {
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "corpus.tsv")
	require.NoError(t, os.WriteFile(corpusPath, []byte("amo\tamare\t1\namas\tamare\t2\n"), 0o644))
	dsn := filepath.Join(dir, "models.db")

	run(t, "--store", dsn, "build", corpusPath)
	out := run(t, "--store", dsn, "models")
	assert.Contains(t, out, "amare: 1 stems")

	out = run(t, "--store", dsn, "analyze", "amas")
	assert.Equal(t, "amas\tamo\t2\n", out)
}

func TestBuildSampleEvaluate(t *testing.T) {
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "corpus.tsv")
	require.NoError(t, os.WriteFile(corpusPath, []byte(
		"amo\tamo\t1|s\namas\tamo\t2|s\namat\tamo\t3|s\n\n"+
			"laudo\tlaudo\t1|s\nlaudas\tlaudo\t2|s\nlaudat\tlaudo\t3|s\n"), 0o644))
	heldoutPath := filepath.Join(dir, "heldout.tsv")
	require.NoError(t, os.WriteFile(heldoutPath, []byte(
		"canto\tcanto\t1|s\ncantas\tcantare\t2|s\ncantis\tcanto\t2|s\ncantat\tcanto\t3|s\n"), 0o644))
	fstPath := filepath.Join(dir, "analyzer.fst")

	out := run(t, "build", corpusPath, "--sample", "1", "-t", fstPath)
	assert.Contains(t, out, "1 models")

	out = run(t, "build", corpusPath, "-t", fstPath)
	assert.Contains(t, out, "1 models")

	out = run(t, "evaluate", "-t", fstPath, heldoutPath)
	assert.Equal(t, "forms: 4\nwith lemma: 0.5\ntags only: 0.75\n", out)

	out = run(t, "evaluate", "-t", fstPath, "--misses", heldoutPath)
	assert.Contains(t, out, "miss\tcantas\tcantare[2|s]\n")
	assert.Contains(t, out, "miss\tcantis\tcanto[2|s]\n")
}
