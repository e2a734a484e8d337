// Package gitmeta reads the git state of a scanned repository so the
// architecture model records exactly which revision it describes.
package gitmeta

import (
	"github.com/go-git/go-git/v5"

	"github.com/petrarca/doc-architect/internal/model"
)

// Describe retrieves the repository reference for the given path.
// Returns nil when the path is not inside a git repository; a scan of a
// plain directory is perfectly valid.
func Describe(path string) *model.RepositoryRef {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}

	ref := &model.RepositoryRef{}

	head, err := repo.Head()
	if err == nil {
		// Short hash (first 7 characters)
		ref.Commit = head.Hash().String()[:7]
		if head.Name().IsBranch() {
			ref.Branch = head.Name().Short()
		} else {
			ref.Branch = "HEAD" // Detached HEAD
		}
	}

	// Worktree status is the expensive part; tolerate failure
	if worktree, err := repo.Worktree(); err == nil {
		if status, err := worktree.Status(); err == nil {
			ref.Dirty = !status.IsClean()
		}
	}

	if config, err := repo.Config(); err == nil {
		if origin := config.Remotes["origin"]; origin != nil && len(origin.URLs) > 0 {
			ref.RemoteURL = origin.URLs[0]
		}
	}

	return ref
}
