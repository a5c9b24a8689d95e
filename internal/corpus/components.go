package corpus

import (
	"path/filepath"
)

// ComponentsRepo is a checkout of the shared components repository.
type ComponentsRepo struct {
	Root string
}

// Check reports whether the repository is configured and present.
func (r ComponentsRepo) Check() error { return checkRoot(r.Root) }

// SchemaFiles lists every YAML or JSON file below json_schema/.
func (r ComponentsRepo) SchemaFiles() ([]string, error) {
	dir := filepath.Join(r.Root, "json_schema")
	if err := checkRoot(dir); err != nil {
		return nil, err
	}
	return glob(dir, "**/*.{yaml,yml,json}", isFile)
}
