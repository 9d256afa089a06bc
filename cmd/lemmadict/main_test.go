package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lemmago/codec"
	"github.com/hupe1980/lemmago/testutil"
)

func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if stdin != nil {
		cmd.SetIn(bytes.NewReader(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func lines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var res []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		res = append(res, m)
	}
	return res
}

func writeSources(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rus.json"), codec.MustMarshal(codec.JSON{}, testutil.RussianSpec()), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ukr.json"), codec.MustMarshal(codec.JSON{}, testutil.UkrainianSpec()), 0o644))
	return dir
}

func TestBuildInspect(t *testing.T) {
	src := writeSources(t)
	out := t.TempDir()

	res, err := run(t, nil, "build", "--dir", out, "--diacritics", "rus", filepath.Join(src, "rus.json"))
	require.NoError(t, err)
	built := lines(t, res)[0]
	assert.Equal(t, "rus.lemd", built["name"])
	assert.Equal(t, "binary", built["format"])
	assert.Equal(t, "rus-fixture-1", built["fingerprint"])
	assert.FileExists(t, filepath.Join(out, "rus.lemd"))

	res, err = run(t, nil, "build", "--dir", out, "--format", "proto", "--compress", "zstd", "--codec", "go-json", filepath.Join(src, "ukr.json"))
	require.NoError(t, err)
	assert.Equal(t, "ukr.pb.zstd", lines(t, res)[0]["name"])

	res, err = run(t, nil, "inspect", "--dir", out, "rus.lemd", "ukr.pb.zstd")
	require.NoError(t, err)
	info := lines(t, res)
	require.Len(t, info, 2)
	assert.Equal(t, "binary", info[0]["format"])
	assert.Equal(t, true, info[0]["mapped"])
	assert.Equal(t, "rus-fixture-1", info[0]["fingerprint"])
	assert.NotNil(t, info[0]["stats"])
	assert.Equal(t, "proto", info[1]["format"])
	assert.Equal(t, "ukr-fixture-1", info[1]["fingerprint"])
}

func TestBuildFromStdin(t *testing.T) {
	out := t.TempDir()
	spec := codec.MustMarshal(codec.JSON{}, testutil.EnglishSpec())

	_, err := run(t, spec, "build", "--dir", out)
	assert.ErrorContains(t, err, "--name")

	res, err := run(t, spec, "build", "--dir", out, "--name", "eng.lemd", "--compress", "lz4")
	require.NoError(t, err)
	assert.Equal(t, "eng.lemd", lines(t, res)[0]["name"])
	assert.FileExists(t, filepath.Join(out, "eng.lemd"))
}

func TestBuildErrors(t *testing.T) {
	src := writeSources(t)
	in := filepath.Join(src, "rus.json")

	_, err := run(t, nil, "build", "--dir", t.TempDir(), "--format", "xml", in)
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, nil, "build", "--dir", t.TempDir(), "--compress", "brotli", in)
	assert.ErrorContains(t, err, "unknown algorithm")

	_, err = run(t, nil, "build", "--dir", t.TempDir(), "--codec", "yaml", in)
	assert.ErrorContains(t, err, "unknown codec")

	_, err = run(t, nil, "build", "--dir", t.TempDir(), "--diacritics", "eng", in)
	assert.ErrorContains(t, err, "no diacritics")
}

func TestAnalyzeAndForms(t *testing.T) {
	src := writeSources(t)
	dir := t.TempDir()
	_, err := run(t, nil, "build", "--dir", dir, "--diacritics", "rus", filepath.Join(src, "rus.json"))
	require.NoError(t, err)
	_, err = run(t, nil, "build", "--dir", dir, "--format", "proto", filepath.Join(src, "ukr.json"))
	require.NoError(t, err)

	res, err := run(t, nil, "analyze", "--dir", dir, "--dict", "rus=rus.lemd", "--dict", "ukr=ukr.pb", "ТАКСИ", "дням")
	require.NoError(t, err)
	words := lines(t, res)
	require.Len(t, words, 2)

	taxi := words[0]["lemmas"].([]any)
	require.Len(t, taxi, 2)
	assert.Equal(t, "такси", taxi[0].(map[string]any)["text"])
	assert.Equal(t, "rus", taxi[0].(map[string]any)["language"])
	assert.Equal(t, "такса", taxi[1].(map[string]any)["text"])
	assert.Equal(t, "bastard", taxi[1].(map[string]any)["quality"])

	days := words[1]["lemmas"].([]any)
	require.Len(t, days, 1)
	assert.Equal(t, "день", days[0].(map[string]any)["text"])

	res, err = run(t, nil, "forms", "--dir", dir, "--dict", "rus=rus.lemd", "--grammar", "pl", "дням")
	require.NoError(t, err)
	forms := lines(t, res)
	require.Len(t, forms, 1)
	assert.Equal(t, "день", forms[0]["lemma"])
	var texts []string
	for _, f := range forms[0]["forms"].([]any) {
		texts = append(texts, f.(map[string]any)["text"].(string))
	}
	assert.Equal(t, []string{"дни", "дни", "дней", "дням", "днями", "днях"}, texts)

	_, err = run(t, nil, "analyze", "--dir", dir, "--dict", "rus", "день")
	assert.ErrorContains(t, err, "language=name")

	_, err = run(t, nil, "analyze", "--dir", dir, "--dict", "rus=rus.lemd", "--accept", "maybe", "день")
	assert.ErrorContains(t, err, "unknown candidate kind")
}
