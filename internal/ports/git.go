package ports

import "context"

// GitInfo holds the repository context recorded with history entries.
type GitInfo struct {
	Branch     string
	Commit     string
	Repository string
	IsClean    bool
}

// GitDetector defines the interface for git context detection.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect reads the repository containing workingDir.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable reports whether the current directory is inside a repository.
	IsAvailable() bool
}
