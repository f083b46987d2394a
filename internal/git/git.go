// Package git detects the git repository around a directory. todoterm uses
// it to name a new project after the repository it is created in.
package git

import (
	"errors"
	"os"
	"path/filepath"
)

var ErrNotRepo = errors.New("not a git repository")

type Repo struct {
	Root string
	Name string
}

// FindRepo returns the repository containing dir.
// Returns ErrNotRepo if dir is not inside a git repository.
func FindRepo(dir string) (*Repo, error) {
	root, err := findRepoRoot(dir)
	if err != nil {
		return nil, err
	}
	return &Repo{
		Root: root,
		Name: filepath.Base(root),
	}, nil
}

// GetRepo returns the repository containing the current directory.
func GetRepo() (*Repo, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return FindRepo(dir)
}

// findRepoRoot walks up the directory tree to find the git repository root.
// A .git file marks a worktree or submodule.
func findRepoRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		gitPath := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitPath); err == nil && (info.IsDir() || info.Mode().IsRegular()) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotRepo
		}
		dir = parent
	}
}
