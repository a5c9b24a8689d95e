package git

import (
	"strings"

	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
)

// classify translates go-git errors into ClassifiedErrors.
func classify(err error, op, url string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	l := strings.ToLower(err.Error())
	category := errors.CategoryGit
	switch {
	case strings.Contains(l, "repository not found") || strings.Contains(l, "does not exist") ||
		strings.Contains(l, "couldn't find remote ref"):
		category = errors.CategoryNotFound
	case strings.Contains(l, "connection reset") || strings.Contains(l, "timeout") ||
		strings.Contains(l, "no route to host") || strings.Contains(l, "remote hung up"):
		category = errors.CategoryNetwork
	case strings.Contains(l, "unsupported protocol") || strings.Contains(l, "protocol not supported"):
		category = errors.CategoryConfig
	}

	b := errors.WrapError(err, category, "git "+op+" failed").
		WithContext("op", op).
		WithContext("url", url)
	if category == errors.CategoryNetwork {
		b = b.Retryable()
	}
	return b.Build()
}
