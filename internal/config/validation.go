package config

import (
	"strings"

	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/versioning"
)

// Validate rejects configurations a build cannot run with.
func (c *Config) Validate() error {
	if err := validateEditions(c.Editions); err != nil {
		return err
	}
	if err := c.RewriteOptions().Validate(); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid rewrite tables").Build()
	}
	if _, err := logLevelNormalizer.NormalizeWithValidation(c.Logging.Level); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging level").Build()
	}
	if _, err := logFormatNormalizer.NormalizeWithValidation(c.Logging.Format); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging format").Build()
	}
	for name, src := range map[string]Source{"aep": c.Sources.AEP, "linter": c.Sources.Linter, "components": c.Sources.Components} {
		if src.Path != "" && src.URL != "" {
			return errors.ValidationError("source sets both path and url").
				WithContext("source", name).Build()
		}
	}
	if c.Build.Workers < 1 {
		return errors.ValidationError("build.workers must be positive").
			WithContext("workers", c.Build.Workers).Build()
	}
	return nil
}

func validateEditions(editions []versioning.Edition) error {
	seen := make(map[string]bool, len(editions))
	current := 0
	for i, e := range editions {
		if strings.TrimSpace(e.Name) == "" {
			return errors.ValidationError("edition name is empty").WithContext("index", i).Build()
		}
		if seen[e.Name] {
			return errors.ValidationError("duplicate edition name").WithContext("edition", e.Name).Build()
		}
		seen[e.Name] = true
		if e.Folder == "" || strings.ContainsAny(e.Folder, `/\`) {
			return errors.ValidationError("edition folder must be a single path segment").
				WithContext("edition", e.Name).WithContext("folder", e.Folder).Build()
		}
		if e.IsCurrent() {
			current++
		}
	}
	if current > 1 {
		return errors.ValidationError("more than one edition uses the current folder").
			WithContext("folder", versioning.CurrentFolder).Build()
	}
	return nil
}
