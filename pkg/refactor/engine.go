package refactor

import (
	"context"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fumiya-kume/ccrefactor/pkg/backup"
	"github.com/fumiya-kume/ccrefactor/pkg/errors"
	"github.com/fumiya-kume/ccrefactor/pkg/logger"
)

// EngineConfig configures an Engine
type EngineConfig struct {
	Logger logger.LoggerInterface
	// Backups snapshots targets when Options.CreateBackup is set; nil uses the wall clock
	Backups *backup.Manager
	// Extensions selects files in a directory refactor; empty means DefaultExtensions
	Extensions []string
	// Workers bounds parallel planning in a directory refactor; 1 or less is sequential
	Workers int
}

// Engine applies rule chains to files and directories
type Engine struct {
	logger     logger.LoggerInterface
	backups    *backup.Manager
	extensions []string
	workers    int
}

// NewEngine creates a refactoring engine
func NewEngine(config EngineConfig) *Engine {
	log := logger.OrNop(config.Logger)
	backups := config.Backups
	if backups == nil {
		backups = backup.NewManager(nil, log)
	}
	return &Engine{
		logger:     log,
		backups:    backups,
		extensions: config.Extensions,
		workers:    config.Workers,
	}
}

// filePlan is the planned rewrite of one file
type filePlan struct {
	path      string
	mode      os.FileMode
	original  string
	rewritten string
	changes   []RefactoringChange
}

// Refactor applies the rule chain to target, a file or a directory. Every file is
// planned and guarded before anything is written, so a guard rejection on any file
// leaves the whole target untouched.
func (e *Engine) Refactor(ctx context.Context, target string, patterns Patterns, opts Options) (*RefactoringResult, error) {
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.InputNotFoundError(target)
		}
		return nil, errors.FileSystemError("stat", target, err)
	}

	files := []string{target}
	if info.IsDir() {
		files, err = collectFiles(ctx, target, e.extensions)
		if err != nil {
			return nil, errors.FileSystemError("walk", target, err)
		}
	}

	result := &RefactoringResult{
		ID:      uuid.NewString(),
		Files:   []string{},
		Changes: []RefactoringChange{},
		DryRun:  opts.DryRun,
	}
	e.logger.Debug("refactor %s: planning %d files", result.ID, len(files))

	plans, err := e.plan(ctx, files, patterns, opts)
	if err != nil {
		return nil, err
	}

	for _, p := range plans {
		if p.rewritten == p.original {
			continue
		}
		result.Files = append(result.Files, p.path)
		result.Changes = append(result.Changes, p.changes...)
	}

	if opts.DryRun {
		return result, nil
	}

	if opts.CreateBackup {
		path, err := e.backups.Create(target)
		if err != nil {
			return nil, err
		}
		result.BackupPath = path
	}

	for _, p := range plans {
		if p.rewritten == p.original {
			continue
		}
		if err := os.WriteFile(p.path, []byte(p.rewritten), p.mode.Perm()); err != nil {
			return result, errors.FileSystemError("write", p.path, err)
		}
	}

	e.logger.Info("refactor %s: rewrote %d of %d files with %d changes",
		result.ID, len(result.Files), len(files), len(result.Changes))
	return result, nil
}

// plan runs the rule chain and guard for every file. Results keep the order of
// files; with several workers the first error in that order wins.
func (e *Engine) plan(ctx context.Context, files []string, patterns Patterns, opts Options) ([]filePlan, error) {
	plans := make([]filePlan, len(files))

	if e.workers <= 1 {
		for i, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			p, err := e.planFile(path, patterns, opts)
			if err != nil {
				return nil, err
			}
			plans[i] = p
		}
		return plans, nil
	}

	errs := make([]error, len(files))
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			plans[i], errs[i] = e.planFile(path, patterns, opts)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers report through errs

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return plans, nil
}

// planFile runs the whole rule chain on one file; it is never interrupted midway
func (e *Engine) planFile(path string, patterns Patterns, opts Options) (filePlan, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return filePlan{}, errors.InputNotFoundError(path)
		}
		return filePlan{}, errors.FileSystemError("stat", path, err)
	}

	// #nosec G304 - path comes from the refactoring target
	data, err := os.ReadFile(path)
	if err != nil {
		return filePlan{}, errors.FileSystemError("read", path, err)
	}
	original := string(data)

	rewritten, changes := ApplyRules(original, patterns, opts.Rules, e.logger)
	for i := range changes {
		changes[i].File = path
	}

	if opts.PreserveLogic && len(changes) > 0 {
		if err := CheckPreservation(path, original, rewritten); err != nil {
			e.logger.Warn("guard rejected %s: %v", path, err)
			return filePlan{}, err
		}
	}

	return filePlan{
		path:      path,
		mode:      info.Mode(),
		original:  original,
		rewritten: rewritten,
		changes:   changes,
	}, nil
}

// RefactorContent runs the rule chain and guard on in-memory content
func (e *Engine) RefactorContent(name, content string, patterns Patterns, opts Options) (string, []RefactoringChange, error) {
	rewritten, changes := ApplyRules(content, patterns, opts.Rules, e.logger)
	for i := range changes {
		changes[i].File = name
	}
	if opts.PreserveLogic && len(changes) > 0 {
		if err := CheckPreservation(name, content, rewritten); err != nil {
			return content, nil, err
		}
	}
	return rewritten, changes, nil
}
