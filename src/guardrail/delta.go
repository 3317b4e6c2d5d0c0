package guardrail

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// Delta detects files changed relative to a baseline, so the engine can
// analyze only what moved. Outside a git repo, or when any diff fails, it
// returns nil (meaning "scan everything") rather than an error.
type Delta struct {
	RootDir      string
	TargetBranch string
	Verbose      bool
}

// ChangedFiles returns the set of files changed in the worktree (staged and
// unstaged) plus files changed between HEAD and the target branch.
func (d *Delta) ChangedFiles(ctx context.Context) (map[string]bool, error) {
	repo, err := git.PlainOpen(d.RootDir)
	if err != nil {
		d.logf("delta: not a git repo, scanning all files")
		return nil, nil
	}

	worktree, err := d.worktreeChanges(repo)
	if err != nil {
		d.logf("delta: worktree diff failed: %v, scanning all files", err)
		return nil, nil
	}

	branch, err := d.branchChanges(ctx, repo)
	if err != nil {
		d.logf("delta: branch diff failed: %v, scanning all files", err)
		return nil, nil
	}

	changed := make(map[string]bool, len(worktree)+len(branch))
	for p := range worktree {
		changed[p] = true
	}
	for p := range branch {
		changed[p] = true
	}
	return changed, nil
}

func (d *Delta) worktreeChanges(repo *git.Repository) (map[string]bool, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, err
	}

	changed := make(map[string]bool)
	for path, s := range status {
		if s.Worktree == git.Unmodified && s.Staging == git.Unmodified {
			continue
		}
		changed[path] = true
	}
	return changed, nil
}

func (d *Delta) branchChanges(ctx context.Context, repo *git.Repository) (map[string]bool, error) {
	target := d.targetBranch(repo)
	if target == "" {
		return nil, nil
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	headCommit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting HEAD commit: %w", err)
	}

	targetRef, err := repo.Reference(plumbing.NewBranchReferenceName(target), true)
	if err != nil {
		targetRef, err = repo.Reference(plumbing.NewRemoteReferenceName("origin", target), true)
		if err != nil {
			return nil, nil // target branch not found, skip
		}
	}
	targetCommit, err := repo.CommitObject(targetRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting target commit: %w", err)
	}

	// HEAD == target (push to the default branch): diff against the parent
	// so the latest commit still gets analyzed.
	if headCommit.Hash == targetCommit.Hash {
		if headCommit.NumParents() == 0 {
			return nil, nil
		}
		parent, err := headCommit.Parent(0)
		if err != nil {
			return nil, nil
		}
		targetCommit = parent
	}

	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, err
	}
	targetTree, err := targetCommit.Tree()
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, targetTree, headTree, &object.DiffTreeOptions{})
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	changed := make(map[string]bool)
	for _, change := range changes {
		if name := changeName(change); name != "" {
			changed[name] = true
		}
	}
	return changed, nil
}

// targetBranch resolves the baseline branch: explicit env var, config,
// common CI variables, the remote's HEAD, then "main".
func (d *Delta) targetBranch(repo *git.Repository) string {
	if branch := os.Getenv("GUARDRAILS_TARGET_BRANCH"); branch != "" {
		return branch
	}
	if d.TargetBranch != "" {
		return d.TargetBranch
	}
	for _, v := range []string{
		"CI_MERGE_REQUEST_TARGET_BRANCH_NAME", // GitLab CI
		"GITHUB_BASE_REF",                     // GitHub Actions
		"BITBUCKET_PR_DESTINATION_BRANCH",     // Bitbucket
		"CHANGE_TARGET",                       // Jenkins
	} {
		if branch := os.Getenv(v); branch != "" {
			return branch
		}
	}
	if branch := defaultBranch(repo); branch != "" {
		return branch
	}
	return "main"
}

// defaultBranch reads the symbolic ref for origin/HEAD.
func defaultBranch(repo *git.Repository) string {
	ref, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", "HEAD"), false)
	if err != nil {
		return ""
	}
	const prefix = "refs/remotes/origin/"
	target := ref.Target().String()
	if strings.HasPrefix(target, prefix) {
		return strings.TrimPrefix(target, prefix)
	}
	return ""
}

func changeName(change *object.Change) string {
	action, err := change.Action()
	if err != nil {
		return ""
	}
	switch action {
	case merkletrie.Insert, merkletrie.Modify:
		return change.To.Name
	case merkletrie.Delete:
		return change.From.Name
	}
	return ""
}

// FilterByDelta keeps only changed files. A nil changed set means full scan.
func FilterByDelta(files []FileRef, changed map[string]bool) []FileRef {
	if changed == nil {
		return files
	}
	filtered := make([]FileRef, 0, len(changed))
	for _, f := range files {
		path := strings.TrimPrefix(f.Path, "./")
		if changed[path] || changed[f.Path] {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func (d *Delta) logf(format string, args ...any) {
	if d.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
