package build

import (
	"context"

	"git.home.luguber.info/inful/aepsite/internal/config"
)

// BuildService executes site builds. The CLI and the preview server both
// route through it.
type BuildService interface {
	Run(ctx context.Context, req BuildRequest) (*Report, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	Config  *config.Config
	Options BuildOptions
}

// BuildOptions modify a single build.
type BuildOptions struct {
	// DryRun computes outputs without writing them or recording state.
	DryRun bool
	// Offline reuses existing clones of git sources instead of fetching.
	Offline bool
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusSuccess   BuildStatus = "success"
	BuildStatusWarning   BuildStatus = "warning"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess reports whether the build produced a complete output tree.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess || s == BuildStatusWarning
}
