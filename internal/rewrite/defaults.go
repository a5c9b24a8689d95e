package rewrite

// DefaultPasses returns the passes built from cfg.
func DefaultPasses(cfg Config) ([]Pass, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return []Pass{
		samplesPass(cfg),
		tabsPass(cfg),
		htmlCommentsPass(),
		escapesPass(),
		calloutsPass(cfg),
		ruleIdentifiersPass(cfg),
		removeTitlePass(),
		linkPathsPass(),
		fenceLanguagesPass(cfg),
		bracketLinksPass(cfg),
		bareReferencesPass(cfg),
		plainLinksPass(cfg),
		imagesPass(cfg),
	}, nil
}
