package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/aepsite/internal/config"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/observability"
)

// Client clones sources below a workspace directory.
type Client struct {
	workspaceDir string
	depth        int
}

// NewClient creates a client for workspaceDir. Clones are full until
// WithDepth is set.
func NewClient(workspaceDir string) *Client { return &Client{workspaceDir: workspaceDir} }

// WithDepth limits clone and fetch history to depth commits.
func (c *Client) WithDepth(depth int) *Client { c.depth = depth; return c }

// Sync makes src available at <workspace>/<name> and returns that path. An
// existing clone is fetched and hard reset to the remote branch; when that
// fails the clone is replaced.
func (c *Client) Sync(ctx context.Context, name string, src config.Source) (string, error) {
	repoPath := filepath.Join(c.workspaceDir, name)
	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err == nil {
		err := c.update(ctx, repoPath, src)
		if err == nil {
			return repoPath, nil
		}
		observability.WarnContext(ctx, "Update failed, cloning again",
			logfields.Source(name), logfields.URL(src.URL), logfields.Error(err))
	}
	if err := c.clone(ctx, repoPath, src); err != nil {
		return "", err
	}
	return repoPath, nil
}

func (c *Client) clone(ctx context.Context, repoPath string, src config.Source) error {
	observability.DebugContext(ctx, "Cloning repository",
		logfields.URL(src.URL), slog.String("branch", src.Branch), logfields.Path(repoPath))
	if err := os.RemoveAll(repoPath); err != nil {
		return fmt.Errorf("failed to remove existing directory: %w", err)
	}

	opts := &git.CloneOptions{URL: src.URL, Depth: c.depth, Tags: git.NoTags}
	if src.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Branch)
		opts.SingleBranch = true
	}
	repository, err := git.PlainCloneContext(ctx, repoPath, false, opts)
	if err != nil {
		return classify(err, "clone", src.URL)
	}
	logHead(ctx, repository, "Repository cloned", src)
	return nil
}

func (c *Client) update(ctx context.Context, repoPath string, src config.Source) error {
	repository, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("open repo: %w", err)
	}
	branch := src.Branch
	if branch == "" {
		head, herr := repository.Head()
		if herr != nil {
			return fmt.Errorf("resolve head: %w", herr)
		}
		branch = head.Name().Short()
	}

	remoteRef := plumbing.NewRemoteReferenceName("origin", branch)
	spec := ggitcfg.RefSpec(fmt.Sprintf("+%s:%s", plumbing.NewBranchReferenceName(branch), remoteRef))
	err = repository.FetchContext(ctx, &git.FetchOptions{
		RemoteName: "origin",
		RefSpecs:   []ggitcfg.RefSpec{spec},
		Depth:      c.depth,
		Tags:       git.NoTags,
		Force:      true,
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return classify(err, "fetch", src.URL)
	}

	ref, err := repository.Reference(remoteRef, true)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", remoteRef, err)
	}
	wt, err := repository.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: ref.Hash(), Mode: git.HardReset}); err != nil {
		return fmt.Errorf("reset to %s: %w", ref.Hash(), err)
	}
	logHead(ctx, repository, "Repository updated", src)
	return nil
}

// Head returns the commit checked out at repoPath.
func Head(repoPath string) (string, error) {
	repository, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", fmt.Errorf("open repo: %w", err)
	}
	ref, err := repository.Head()
	if err != nil {
		return "", fmt.Errorf("resolve head: %w", err)
	}
	return ref.Hash().String(), nil
}

func logHead(ctx context.Context, repository *git.Repository, msg string, src config.Source) {
	attrs := []slog.Attr{logfields.URL(src.URL)}
	if ref, err := repository.Head(); err == nil {
		attrs = append(attrs, slog.String("commit", ref.Hash().String()[:8]))
	}
	observability.InfoContext(ctx, msg, attrs...)
}
