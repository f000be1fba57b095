package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/rdom/internal/errors"
	"github.com/vango-dev/rdom/pkg/dom"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestDiffGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	tests := []struct {
		name string
		next string
	}{
		{"diff_reorder", "reorder.yaml"},
		{"diff_mixed", "mixed.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "diff", fixture("old.yaml"), fixture(tt.next))
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(out))
		})
	}
}

func TestDiffJSON(t *testing.T) {
	out, err := run(t, "diff", "--format=json", fixture("old.yaml"), fixture("reorder.yaml"))
	require.NoError(t, err)

	var tr dom.Trace
	require.NoError(t, json.Unmarshal([]byte(out), &tr))
	assert.Equal(t, 2, tr.Stats.Moved)
	require.Len(t, tr.Ops, 2)
	assert.Equal(t, dom.OpMove, tr.Ops[0].Kind)
	assert.Equal(t, "li", tr.Ops[0].Label)
	assert.True(t, strings.HasPrefix(tr.After, `<ul class="list"><li>two</li>`))
}

func TestDiffErrors(t *testing.T) {
	_, err := run(t, "diff", fixture("old.yaml"))
	assert.Error(t, err, "one argument")

	_, err = run(t, "diff", "--format=xml", fixture("old.yaml"), fixture("reorder.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeCLIUsage, errors.CodeOf(err))

	_, err = run(t, "diff", fixture("old.yaml"), fixture("missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeTreeDecode, errors.CodeOf(err))

	_, err = run(t, "diff", fixture("old.yaml"), fixture("dup.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeTreeDuplicate, errors.CodeOf(err))
}

func TestLIS(t *testing.T) {
	out, err := run(t, "lis", "1", "3", "0", "2")
	require.NoError(t, err)
	assert.Equal(t, "2 3\n", out)

	out, err = run(t, "lis", "--values", "--", "4", "2", "3", "-1", "5")
	require.NoError(t, err)
	assert.Equal(t, "2 3 5\n", out)

	_, err = run(t, "lis", "x")
	require.Error(t, err)
	assert.Equal(t, errors.CodeCLIUsage, errors.CodeOf(err))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go version:")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, writeFile(path, "server:\n  addr: \":7070\"\n"))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)

	_, err = loadConfig(filepath.Join(dir, "nope.yaml"))
	assert.Equal(t, errors.CodeConfigNotFound, errors.CodeOf(err))
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
