package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}
	return dir, repo
}

func commitFile(t *testing.T, dir string, repo *git.Repository, name, content string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if _, err := worktree.Add(name); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}
	hash, err := worktree.Commit("Add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com"},
	})
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}
	return hash.String()
}

func TestDetector_Detect(t *testing.T) {
	dir, repo := initRepo(t)
	commit := commitFile(t, dir, repo, "notes.txt", "focus")

	info, err := NewDetector("").Detect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Commit != commit {
		t.Errorf("Expected commit %s, got %s", commit, info.Commit)
	}
	// go-git defaults to master
	if info.Branch != "master" && info.Branch != "main" {
		t.Errorf("Unexpected branch: %s", info.Branch)
	}
	if !info.IsClean {
		t.Error("Expected clean worktree after commit")
	}
}

func TestDetector_Detect_Subdirectory(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "a")
	sub := filepath.Join(dir, "level1", "level2")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	d := NewDetector(sub)
	if !d.IsAvailable() {
		t.Fatal("expected repository to be found from a subdirectory")
	}
	info, err := d.Detect(context.Background(), "")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Branch == "" {
		t.Error("expected a branch name")
	}
}

func TestDetector_Detect_Dirty(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "a")
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := NewDetector("").Detect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.IsClean {
		t.Error("Expected dirty worktree with modified files")
	}
}

func TestDetector_Detect_Unborn(t *testing.T) {
	dir, _ := initRepo(t)

	info, err := NewDetector("").Detect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Branch != "master" && info.Branch != "main" {
		t.Errorf("Unexpected branch: %s", info.Branch)
	}
	if info.Commit != "" {
		t.Errorf("expected no commit, got %s", info.Commit)
	}
}

func TestDetector_Detect_Remote(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "a.txt", "a")
	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:xvierd/timerdeck.git"},
	}); err != nil {
		t.Fatal(err)
	}

	info, err := NewDetector("").Detect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Repository != "xvierd/timerdeck" {
		t.Errorf("expected xvierd/timerdeck, got %q", info.Repository)
	}
}

func TestDetector_Detect_NoGitRepo(t *testing.T) {
	d := NewDetector(t.TempDir())
	if d.IsAvailable() {
		t.Error("expected no repository")
	}
	_, err := d.Detect(context.Background(), "")
	if !errors.Is(err, ErrNoRepository) {
		t.Errorf("expected ErrNoRepository, got %v", err)
	}
}

func TestExtractRepoName(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"git@github.com:user/repo.git", "user/repo"},
		{"https://github.com/user/repo.git", "user/repo"},
		{"https://gitlab.com/org/project.git", "org/project"},
		{"git@bitbucket.org:team/repo.git", "team/repo"},
		{"/path/to/repo", "/path/to/repo"}, // Local path fallback
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := extractRepoName(tt.url)
			if result != tt.expected {
				t.Errorf("extractRepoName(%q) = %q, want %q", tt.url, result, tt.expected)
			}
		})
	}
}
