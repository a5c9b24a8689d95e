package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/versioning"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func TestAEPRepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "aep/general/0133/aep.md.j2", "# Create\n")
	writeFile(t, root, "aep/general/0001/aep.md.j2", "# Purpose\n")
	writeFile(t, root, "aep/general/scope.yaml", "categories:\n  - code: meta\n    title: Meta\n  - code: resources\n    title: Resources\n")
	writeFile(t, root, "aep/aep-2026/0133/aep.md.j2", "# Create\n")
	writeFile(t, root, "pages/general/faq.md", "# FAQ\n")
	writeFile(t, root, "pages/general/notes.txt", "skip")
	writeFile(t, root, "CONTRIBUTING.md", "# Contributing\n")
	writeFile(t, root, "config/hero.yaml", "buttons: []\n")
	writeFile(t, root, "config/urls.yaml", "site: [broken\n")
	writeFile(t, root, "blog/launch.md", "hello")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "blog", "drafts"), 0o750))

	repo := AEPRepo{Root: root}
	require.NoError(t, repo.Check())

	folders, err := repo.DocumentFolders(versioning.Edition{Name: "general", Folder: "."})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "aep", "general", "0001"),
		filepath.Join(root, "aep", "general", "0133"),
	}, folders)

	folders, err = repo.DocumentFolders(versioning.Edition{Name: "aep-2026", Folder: "aep-2026"})
	require.NoError(t, err)
	assert.Len(t, folders, 1)

	_, err = repo.DocumentFolders(versioning.Edition{Name: "v9", Folder: "v9"})
	assert.ErrorIs(t, err, ErrSourceMissing)

	groups, err := repo.Groups()
	require.NoError(t, err)
	assert.Equal(t, docmodel.Groups{{Code: "meta", Title: "Meta"}, {Code: "resources", Title: "Resources"}}, groups)

	pages, err := repo.Pages()
	require.NoError(t, err)
	assert.Equal(t, []PageSource{
		{Path: filepath.Join(root, "pages", "general", "faq.md"), Name: "faq"},
		{Path: filepath.Join(root, "CONTRIBUTING.md"), Name: "contributing"},
	}, pages)

	cfg, errs := repo.SiteConfig("hero", "urls", "site")
	assert.Len(t, errs, 2)
	assert.Contains(t, cfg, "hero")
	assert.NotContains(t, cfg, "urls")

	blog, err := repo.BlogFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "blog", "launch.md")}, blog)
}

func TestAEPRepo_Missing(t *testing.T) {
	assert.ErrorIs(t, AEPRepo{}.Check(), ErrNotConfigured)
	assert.ErrorIs(t, AEPRepo{Root: filepath.Join(t.TempDir(), "nope")}.Check(), ErrSourceMissing)

	repo := AEPRepo{Root: t.TempDir()}
	_, err := repo.Groups()
	assert.ErrorIs(t, err, ErrGroupFile)
	blog, err := repo.BlogFiles()
	require.NoError(t, err)
	assert.Empty(t, blog)
}

func TestLinterRepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# api-linter\n")
	writeFile(t, root, "docs/rules/0133/request-parent.md", "# Parent\n")
	writeFile(t, root, "docs/rules/0133/index.md", "# Index\n")
	writeFile(t, root, "docs/rules/0004/resource-type.md", "# Type\n")
	writeFile(t, root, "docs/rules/index.md", "# All rules\n")

	repo := LinterRepo{Root: root}
	rules, err := repo.Rules()
	require.NoError(t, err)
	assert.Equal(t, []RuleSource{
		{Path: filepath.Join(root, "docs", "rules", "0004", "resource-type.md"), AEP: "0004"},
		{Path: filepath.Join(root, "docs", "rules", "0133", "request-parent.md"), AEP: "0133"},
	}, rules)
	assert.Equal(t, filepath.Join(root, "README.md"), repo.Readme())
	assert.Empty(t, LinterRepo{Root: t.TempDir()}.Readme())
}

func TestComponentsRepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "json_schema/type/money.yaml", "$id: x\n")
	writeFile(t, root, "json_schema/type/nested/date.json", "{}")
	writeFile(t, root, "json_schema/README.md", "docs")

	files, err := ComponentsRepo{Root: root}.SchemaFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "json_schema", "type", "money.yaml"),
		filepath.Join(root, "json_schema", "type", "nested", "date.json"),
	}, files)

	_, err = ComponentsRepo{Root: t.TempDir()}.SchemaFiles()
	assert.ErrorIs(t, err, ErrSourceMissing)
}
