package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/versioning"
)

// AEPRepo is a checkout of the AEP repository.
type AEPRepo struct {
	Root string
}

// Check reports whether the repository is configured and present.
func (r AEPRepo) Check() error { return checkRoot(r.Root) }

// EditionDir is the directory holding e's document folders.
func (r AEPRepo) EditionDir(e versioning.Edition) string {
	return filepath.Join(r.Root, "aep", e.SourceFolder())
}

// DocumentFolders lists the document folders of edition e.
func (r AEPRepo) DocumentFolders(e versioning.Edition) ([]string, error) {
	dir := r.EditionDir(e)
	if err := checkRoot(dir); err != nil {
		return nil, err
	}
	return glob(dir, "*", isDir)
}

// Groups reads the category list from aep/general/scope.yaml.
func (r AEPRepo) Groups() (docmodel.Groups, error) {
	path := filepath.Join(r.Root, "aep", versioning.GeneralFolder, "scope.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGroupFile, err)
	}
	var gf docmodel.GroupFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrGroupFile, path, err)
	}
	return docmodel.Groups(gf.Categories), nil
}

// PageSource is a general page and the content file it becomes.
type PageSource struct {
	Path string
	// Name is the page link and the output file stem.
	Name string
}

// Pages lists pages/general/*.md followed by CONTRIBUTING.md when present.
func (r AEPRepo) Pages() ([]PageSource, error) {
	var pages []PageSource
	dir := filepath.Join(r.Root, "pages", versioning.GeneralFolder)
	if checkRoot(dir) == nil {
		paths, err := glob(dir, "*.md", isFile)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			pages = append(pages, PageSource{Path: p, Name: stem(p)})
		}
	}
	contributing := filepath.Join(r.Root, "CONTRIBUTING.md")
	if _, err := os.Stat(contributing); err == nil {
		pages = append(pages, PageSource{Path: contributing, Name: "contributing"})
	}
	return pages, nil
}

// SiteConfig merges config/<name>.yaml files keyed by name. Files that are
// missing or malformed are reported in errs and left out.
func (r AEPRepo) SiteConfig(names ...string) (map[string]any, []error) {
	out := map[string]any{}
	var errs []error
	for _, name := range names {
		path := filepath.Join(r.Root, "config", name+".yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		out[name] = v
	}
	return out, errs
}

// BlogFiles lists the regular files directly under blog/.
func (r AEPRepo) BlogFiles() ([]string, error) {
	dir := filepath.Join(r.Root, "blog")
	if err := checkRoot(dir); err != nil {
		if errors.Is(err, ErrSourceMissing) {
			return nil, nil
		}
		return nil, err
	}
	return glob(dir, "*", isFile)
}
