// Package git annotates history entries with repository context using
// go-git.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/xvierd/timerdeck/internal/ports"
)

// ErrNoRepository is returned when the directory is not inside a repository.
var ErrNoRepository = errors.New("git repository not found")

// Detector implements the ports.GitDetector interface using go-git.
type Detector struct {
	workingDir string
}

// NewDetector creates a detector rooted at workingDir. An empty dir means
// the process working directory at detection time.
func NewDetector(workingDir string) *Detector {
	return &Detector{workingDir: workingDir}
}

// Ensure Detector implements ports.GitDetector.
var _ ports.GitDetector = (*Detector)(nil)

// Detect reads branch, commit and remote of the repository containing
// workingDir, falling back to the detector's own directory.
func (d *Detector) Detect(ctx context.Context, workingDir string) (*ports.GitInfo, error) {
	repo, err := d.open(workingDir)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Fresh repository without commits.
			return d.unborn(repo)
		}
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	branch := head.Name().Short()
	if !head.Name().IsBranch() {
		branch = "HEAD detached"
	}

	info := &ports.GitInfo{
		Branch:     branch,
		Commit:     head.Hash().String(),
		Repository: remoteName(repo),
	}

	if ctx.Err() != nil {
		return info, ctx.Err()
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return info, nil
	}
	if status, err := worktree.Status(); err == nil {
		info.IsClean = status.IsClean()
	}
	return info, nil
}

// IsAvailable reports whether the detector's directory is inside a repository.
func (d *Detector) IsAvailable() bool {
	_, err := d.open("")
	return err == nil
}

func (d *Detector) open(workingDir string) (*git.Repository, error) {
	if workingDir == "" {
		workingDir = d.workingDir
	}
	if workingDir == "" {
		var err error
		workingDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(workingDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNoRepository
		}
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return repo, nil
}

// unborn reports the branch HEAD points at before the first commit.
func (d *Detector) unborn(repo *git.Repository) (*ports.GitInfo, error) {
	ref, err := repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}
	return &ports.GitInfo{
		Branch:     ref.Target().Short(),
		Repository: remoteName(repo),
		IsClean:    true,
	}, nil
}

func remoteName(repo *git.Repository) string {
	remotes, err := repo.Remotes()
	if err != nil || len(remotes) == 0 {
		return ""
	}
	urls := remotes[0].Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return extractRepoName(urls[0])
}

// extractRepoName extracts "owner/repo" from a git URL.
func extractRepoName(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")

	// SSH URLs like git@github.com:user/repo.git
	if strings.HasPrefix(url, "git@") {
		if i := strings.LastIndex(url, ":"); i >= 0 {
			return strings.TrimSuffix(url[i+1:], ".git")
		}
	}

	// HTTPS URLs like https://github.com/user/repo.git
	if strings.HasPrefix(url, "http") {
		parts := strings.Split(url, "/")
		if len(parts) >= 2 {
			repo := strings.TrimSuffix(parts[len(parts)-1], ".git")
			return parts[len(parts)-2] + "/" + repo
		}
	}

	return url
}
