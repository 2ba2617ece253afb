package gitinfo

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

const shortHashLen = 7

// GitInfoAdapter implements domain.RevisionReader using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

// Revision returns the short HEAD hash of the repository containing path.
// Parent directories are searched for the repository root.
func (g *GitInfoAdapter) Revision(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String()[:shortHashLen], nil
}
