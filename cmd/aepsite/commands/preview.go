package commands

import (
	"path/filepath"

	"git.home.luguber.info/inful/aepsite/internal/build"
	"git.home.luguber.info/inful/aepsite/internal/preview"
	"git.home.luguber.info/inful/aepsite/internal/workspace"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Listen string `short:"l" help:"Listen address (default: preview.listen)"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if p.Listen != "" {
		cfg.Preview.Listen = p.Listen
	}

	ctx, cancel := signalContext()
	defer cancel()

	// Clones persist across rebuilds so refreshes pull instead of cloning.
	dir := cfg.Sources.WorkDir
	if dir == "" {
		dir = filepath.Join(cfg.Output.Root, ".aepsite", "sources")
	}
	ws := workspace.NewPersistentManager(dir)

	inst := newBuildService(ctx, cfg)
	defer inst.Close()
	inst.svc.WithWorkspace(ws)

	return preview.Run(ctx, preview.Options{
		Config:     cfg,
		Service:    inst.svc,
		Workspace:  ws,
		Registry:   inst.registry,
		AfterBuild: func(*build.Report) { inst.writeMetrics(ctx) },
	})
}
