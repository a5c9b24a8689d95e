package assemble

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/frontmatter"
	"git.home.luguber.info/inful/aepsite/internal/markdown"
	"git.home.luguber.info/inful/aepsite/internal/rewrite"
	"git.home.luguber.info/inful/aepsite/internal/sample"
)

const (
	// TemplateFile holds a document's authored text.
	TemplateFile = "aep.md.j2"
	// MetadataFile holds a document's id, slug and placement.
	MetadataFile = "aep.yaml"
)

// Options configures an Assembler.
type Options struct {
	Rewrite rewrite.Config
	// InlineSamples replaces Sample tags with fenced code holding the snippet.
	InlineSamples bool
	// Workers bounds concurrent document assembly. Values below one mean one.
	Workers int
}

// Assembler builds documents with a fixed rewrite pipeline.
type Assembler struct {
	rewriter      *rewrite.Rewriter
	components    rewrite.Components
	inlineSamples bool
	workers       int
}

// New validates the rewrite tables and builds the pass pipeline.
func New(opts Options) (*Assembler, error) {
	if err := opts.Rewrite.Validate(); err != nil {
		return nil, err
	}
	rw, err := rewrite.New(opts.Rewrite)
	if err != nil {
		return nil, err
	}
	return &Assembler{
		rewriter:      rw,
		components:    opts.Rewrite.DocumentComponents(),
		inlineSamples: opts.InlineSamples,
		workers:       opts.Workers,
	}, nil
}

// Source is one document folder and the directory its output lands in.
type Source struct {
	Folder    string
	OutputDir string
	Edition   string
}

// Document reads src's template and metadata and assembles the record.
func (a *Assembler) Document(src Source) (docmodel.Document, error) {
	tmpl, err := os.ReadFile(filepath.Join(src.Folder, TemplateFile))
	if err != nil {
		return docmodel.Document{}, fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	raw, err := os.ReadFile(filepath.Join(src.Folder, MetadataFile))
	if err != nil {
		return docmodel.Document{}, fmt.Errorf("%w: %w", ErrReadSource, err)
	}

	fields, err := parseMetadata(raw)
	if err != nil {
		return docmodel.Document{}, err
	}
	title, err := markdown.Title(tmpl)
	if err != nil {
		return docmodel.Document{}, fmt.Errorf("%w: %w", ErrTitle, err)
	}

	body := a.rewriter.Rewrite(string(tmpl), rewrite.Env{Folder: src.Folder, OutputDir: src.OutputDir})
	if body, err = a.resolveSamples(body); err != nil {
		return docmodel.Document{}, err
	}
	body.Components = body.Components.Merge(a.components)

	fields["title"] = title
	fields["prev"] = false
	fields["next"] = false
	fields["isAEP"] = true

	placement, _ := fields["placement"].(map[string]any)
	return docmodel.Document{
		ID:          scalarString(fields["id"]),
		Slug:        scalarString(fields["slug"]),
		Title:       title,
		Category:    scalarString(placement["category"]),
		Order:       scalarInt(placement["order"]),
		Folder:      src.Folder,
		Edition:     src.Edition,
		Frontmatter: fields,
		Body:        body,
	}, nil
}

func parseMetadata(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	if scalarString(fields["id"]) == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidMetadata)
	}
	if scalarString(fields["slug"]) == "" {
		return nil, fmt.Errorf("%w: missing slug", ErrInvalidMetadata)
	}
	if _, ok := fields["placement"].(map[string]any); !ok {
		return nil, fmt.Errorf("%w: missing placement", ErrInvalidMetadata)
	}
	return fields, nil
}

func scalarString(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	default:
		return fmt.Sprint(vv)
	}
}

func scalarInt(v any) int {
	switch vv := v.(type) {
	case int:
		return vv
	case float64:
		return int(vv)
	case string:
		n, _ := strconv.Atoi(vv)
		return n
	default:
		return 0
	}
}

func (a *Assembler) resolveSamples(body rewrite.Result) (rewrite.Result, error) {
	for _, ref := range body.Samples {
		typ := sample.Type(ref.Type)
		snippet, err := sample.ExtractFile(ref.Path, typ, ref.Token1, ref.Token2)
		if err != nil {
			return body, fmt.Errorf("%w: %w", ErrSample, err)
		}
		if a.inlineSamples {
			fence := "```" + typ.Language() + "\n" + snippet + "\n```"
			body.Text = strings.Replace(body.Text, ref.Tag, fence, 1)
		}
	}
	return body, nil
}

// Render produces the MDX file for doc: frontmatter with slug set, image
// imports, component imports, then the body.
func Render(doc docmodel.Document, slug string) ([]byte, error) {
	fields := maps.Clone(doc.Frontmatter)
	if fields == nil {
		fields = map[string]any{}
	}
	fields["slug"] = slug

	var b strings.Builder
	for _, img := range doc.Body.Images {
		fmt.Fprintf(&b, "import %s from '%s';\n", img.VariableName, img.ImportPath)
	}
	if imports := doc.Body.Components.Imports(); imports != "" {
		b.WriteString(imports)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(doc.Body.Text)
	if !strings.HasSuffix(doc.Body.Text, "\n") {
		b.WriteString("\n")
	}
	return frontmatter.Render(fields, []byte(b.String()))
}
