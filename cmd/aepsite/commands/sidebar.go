package commands

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"path/filepath"

	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/output"
	"git.home.luguber.info/inful/aepsite/internal/sidebar"
	"git.home.luguber.info/inful/aepsite/internal/sitestructure"
)

// SidebarCmd implements the 'sidebar' command.
type SidebarCmd struct {
	Structure string `help:"Site structure snapshot to read" default:"generated/site-structure.json"`
	Output    string `short:"o" help:"Sidebar file to write; - for stdout" default:"generated/sidebar.json"`
}

func (s *SidebarCmd) Run(g *Global, _ *CLI) error {
	st, err := sitestructure.Read(s.Structure)
	if err != nil {
		category := errors.CategoryValidation
		if stderrors.Is(err, sitestructure.ErrSnapshotNotFound) {
			category = errors.CategoryNotFound
		}
		return errors.WrapError(err, category, "failed to read site structure").
			WithContext("path", s.Structure).Build()
	}
	data, err := json.MarshalIndent(sidebar.FromStructure(st), "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode sidebar").Build()
	}
	data = append(data, '\n')

	if s.Output == "-" {
		_, _ = g.Out.Write(data)
		return nil
	}
	w := output.NewWriter(filepath.Dir(s.Output), "sidebar")
	_, err = w.Write(context.Background(), filepath.Base(s.Output), data)
	return err
}
