// Package git reads baseline file content from revisions of a local git repository
package git

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/fumiya-kume/ccrefactor/internal/types"
	"github.com/fumiya-kume/ccrefactor/pkg/errors"
	"github.com/fumiya-kume/ccrefactor/pkg/logger"
)

const branchHEAD = "HEAD"

// Fetcher reads files from commits of one repository
type Fetcher struct {
	repo   *git.Repository
	root   string
	logger logger.LoggerInterface
}

// Open finds the repository containing path, a file or directory, searching parent directories
func Open(path string, log logger.LoggerInterface) (*Fetcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.FileSystemError("resolve", path, err)
	}

	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.NewError(errors.ErrorTypeGit).
				WithMessagef("%s is not inside a git repository", path).
				WithCause(err).
				WithContext("path", path).
				WithSuggestion("Pass the baseline as a file, or run inside a repository").
				Build()
		}
		return nil, errors.GitError("open repository", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, errors.GitError("open worktree", err)
	}

	return &Fetcher{
		repo:   repo,
		root:   worktree.Filesystem.Root(),
		logger: logger.OrNop(log),
	}, nil
}

// Root returns the top directory of the working tree
func (f *Fetcher) Root() string {
	return f.root
}

// RelativePath turns a path on disk into the slash-separated path git stores
func (f *Fetcher) RelativePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.FileSystemError("resolve", path, err)
	}
	// the worktree root may sit behind a symlink, as /tmp does on macOS
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	root := f.root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.NewError(errors.ErrorTypeValidation).
			WithMessagef("%s is outside the repository at %s", path, f.root).
			WithContext("path", path).
			Build()
	}
	return filepath.ToSlash(rel), nil
}

// FetchContent returns the text of ref.Path at ref.Ref, HEAD when no revision is set
func (f *Fetcher) FetchContent(ctx context.Context, ref types.FileRef) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	revision := ref.Ref
	if revision == "" {
		revision = branchHEAD
	}
	path := strings.Trim(filepath.ToSlash(ref.Path), "/")
	if path == "" || path == "." {
		return "", errors.InvalidShapeError(ref.String(), "file")
	}

	f.logger.Debug("reading %s at %s", path, revision)

	hash, err := f.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) || stderrors.Is(err, plumbing.ErrObjectNotFound) {
			return "", errors.InputNotFoundError(ref.String())
		}
		return "", errors.GitError("resolve "+revision, err)
	}

	commit, err := f.repo.CommitObject(*hash)
	if err != nil {
		return "", errors.GitError("read commit "+hash.String(), err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return "", errors.GitError("read tree", err)
	}

	file, err := tree.File(path)
	if err != nil {
		if !stderrors.Is(err, object.ErrFileNotFound) {
			return "", errors.GitError("read "+path, err)
		}
		if _, dirErr := tree.Tree(path); dirErr == nil {
			return "", errors.InvalidShapeError(ref.String(), "file")
		}
		f.logger.Error("%s does not exist at %s", path, revision)
		return "", errors.InputNotFoundError(ref.String())
	}

	content, err := file.Contents()
	if err != nil {
		return "", errors.GitError("read "+path, err)
	}
	return content, nil
}
