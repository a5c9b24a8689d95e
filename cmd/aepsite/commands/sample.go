package commands

import (
	"fmt"

	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/sample"
)

// SampleCmd implements the 'sample' command.
type SampleCmd struct {
	Type    string   `short:"t" help:"Sample type: proto or yml (default: from the file extension)"`
	File    string   `arg:"" help:"File to extract from" type:"existingfile"`
	Symbols []string `arg:"" help:"Symbols to extract (proto), or one dotted path (yml)"`
}

func (s *SampleCmd) Run(g *Global, _ *CLI) error {
	typ := sample.Type(s.Type)
	if typ == "" {
		t, ok := sample.TypeForFile(s.File)
		if !ok {
			return errors.ValidationError("cannot infer the sample type; pass --type").
				WithContext("path", s.File).Build()
		}
		typ = t
	}
	if len(s.Symbols) > 2 {
		return errors.ValidationError("at most two symbols may be given").Build()
	}

	out, err := sample.ExtractFile(s.File, typ, s.Symbols...)
	if err != nil {
		return errors.WrapError(err, errors.CategorySample, "sample extraction failed").
			WithContext("path", s.File).Build()
	}
	_, _ = fmt.Fprintln(g.Out, out)
	return nil
}
