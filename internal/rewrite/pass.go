package rewrite

// ImageAsset is an image a document embeds. The file is copied from
// SourcePath to TargetPath and imported under VariableName.
type ImageAsset struct {
	VariableName string `json:"variableName"`
	ImportPath   string `json:"importPath"`
	SourcePath   string `json:"sourcePath"`
	TargetPath   string `json:"targetPath"`
}

// SampleRef is a sample embed emitted by the samples pass. Tag is the exact
// markup that was written into the text.
type SampleRef struct {
	Tag    string `json:"tag"`
	Path   string `json:"path"`
	Type   string `json:"type"`
	Token1 string `json:"token1"`
	Token2 string `json:"token2"`
}

// Result is the state threaded through the passes.
type Result struct {
	Text       string
	Components Components
	Images     []ImageAsset
	Samples    []SampleRef
}

// Env carries the per-document inputs a pass may need.
type Env struct {
	// Folder is the document's source folder. Sample and image paths resolve against it.
	Folder string
	// OutputDir is the directory the MDX file is written to. Image imports are relative to it.
	OutputDir string
}

// Dependencies declares ordering constraints between passes.
type Dependencies struct {
	// MustRunAfter lists passes that must complete before this one.
	MustRunAfter []string
	// MustRunBefore lists passes that must run after this one.
	MustRunBefore []string
}

// Pass is one rewrite step.
type Pass interface {
	Name() string
	Dependencies() Dependencies
	Apply(in Result, env Env) Result
}

// PassFunc adapts a function into a Pass.
type PassFunc struct {
	PassName string
	Deps     Dependencies
	Fn       func(in Result, env Env) Result
}

func (p PassFunc) Name() string                    { return p.PassName }
func (p PassFunc) Dependencies() Dependencies      { return p.Deps }
func (p PassFunc) Apply(in Result, env Env) Result { return p.Fn(in, env) }

func after(names ...string) Dependencies { return Dependencies{MustRunAfter: names} }
