package corpus

import (
	"os"
	"path/filepath"
	"strings"
)

// LinterRepo is a checkout of the protobuf linter.
type LinterRepo struct {
	Root string
}

// Check reports whether the repository is configured and present.
func (r LinterRepo) Check() error { return checkRoot(r.Root) }

// RuleSource is one rule document and the AEP it belongs to.
type RuleSource struct {
	Path string
	AEP  string
}

// Rules lists docs/rules/<aep>/*.md, leaving out index pages.
func (r LinterRepo) Rules() ([]RuleSource, error) {
	dir := filepath.Join(r.Root, "docs", "rules")
	if err := checkRoot(dir); err != nil {
		return nil, err
	}
	paths, err := glob(dir, "*/*.md", isFile)
	if err != nil {
		return nil, err
	}
	out := make([]RuleSource, 0, len(paths))
	for _, p := range paths {
		if strings.HasSuffix(filepath.Base(p), "index.md") {
			continue
		}
		out = append(out, RuleSource{Path: p, AEP: filepath.Base(filepath.Dir(p))})
	}
	return out, nil
}

// Readme is the linter's README path, or "" if it has none.
func (r LinterRepo) Readme() string {
	p := filepath.Join(r.Root, "README.md")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}
