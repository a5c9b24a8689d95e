package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/aepsite/internal/config"
	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/sitestructure"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("aepsite"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	var out bytes.Buffer
	err = kctx.Run(&Global{Out: &out}, &cli)
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func clearSourceEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{config.EnvAEPLocation, config.EnvLinterLocation, config.EnvComponentsLocation} {
		t.Setenv(env, "")
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aepsite.yaml")

	out, err := run(t, "--config", path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = run(t, "--config", path, "init")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = run(t, "--config", path, "init", "--force")
	require.NoError(t, err)
}

func TestSample(t *testing.T) {
	file := filepath.Join(t.TempDir(), "library.proto")
	writeFile(t, file, "service Library {\n  rpc GetBook(GetBookRequest) returns (Book);\n}\n\nmessage Book {\n  string name = 1;\n}\n")

	out, err := run(t, "sample", file, "message Book")
	require.NoError(t, err)
	assert.Contains(t, out, "message Book {\n  string name = 1;\n}")
	assert.NotContains(t, out, "service Library")

	_, err = run(t, "sample", file, "message Shelf")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategorySample))

	_, err = run(t, "sample", "--type", "json", file, "x")
	require.Error(t, err)
}

func TestSidebar(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "site-structure.json")
	data, err := sitestructure.New().Marshal()
	require.NoError(t, err)
	writeFile(t, snapshot, string(data))

	out, err := run(t, "sidebar", "--structure", snapshot, "-o", "-")
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.NotEmpty(t, items)
	assert.Equal(t, "Overview", items[0]["label"])

	target := filepath.Join(dir, "out", "sidebar.json")
	_, err = run(t, "sidebar", "--structure", snapshot, "-o", target)
	require.NoError(t, err)
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.JSONEq(t, out, string(written))
}

func TestBuild(t *testing.T) {
	clearSourceEnv(t)
	root := t.TempDir()
	aep := filepath.Join(root, "aep")
	writeFile(t, filepath.Join(aep, "aep", "general", "scope.yaml"), "categories:\n  - code: meta\n    title: Meta\n")
	writeFile(t, filepath.Join(aep, "aep", "general", "0001", "aep.md.j2"), "# Purpose\n\nWhy AEPs exist.\n")
	writeFile(t, filepath.Join(aep, "aep", "general", "0001", "aep.yaml"), "id: 1\nslug: purpose\nplacement:\n  category: meta\n")

	site := filepath.Join(root, "site")
	cfgPath := filepath.Join(root, "aepsite.yaml")
	textfile := filepath.Join(root, "aepsite.prom")
	writeFile(t, cfgPath, "sources:\n  aep:\n    path: "+aep+"\noutput:\n  root: "+site+"\nmetrics:\n  textfile: "+textfile+"\n")

	out, err := run(t, "--config", cfgPath, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "edition general: 1 written")
	assert.FileExists(t, filepath.Join(site, "src", "content", "docs", "1.mdx"))

	prom, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "aepsite_build_outcomes_total")

	dry := filepath.Join(root, "dry")
	out, err = run(t, "--config", cfgPath, "build", "--dry-run", "-o", dry)
	require.NoError(t, err)
	assert.Contains(t, out, "(dry run)")
	assert.NoDirExists(t, dry)
}

func TestBuild_MissingConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "build")
	require.Error(t, err)
	assert.Equal(t, 4, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestSidebar_MissingSnapshot(t *testing.T) {
	_, err := run(t, "sidebar", "--structure", filepath.Join(t.TempDir(), "missing.json"), "-o", "-")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}
