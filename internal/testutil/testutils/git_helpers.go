// Package helpers holds test fixtures shared across packages.
package helpers

import (
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// SetupTestGitRepo initializes a temporary git repository on branch and, when
// originURL is non-empty, adds it as the origin remote.
// Returns the repository and the absolute path to the temporary directory.
func SetupTestGitRepo(t *testing.T, branch, originURL string) (*git.Repository, string) {
	t.Helper()

	tempDir := t.TempDir()

	repo, err := git.PlainInitWithOptions(tempDir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName(branch)},
	})
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}

	if originURL != "" {
		if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{originURL}}); err != nil {
			t.Fatalf("failed to add origin remote: %v", err)
		}
	}

	return repo, tempDir
}
