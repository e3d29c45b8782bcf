// Package internal wires configuration, content fetchers and the comparison and
// refactoring engines into the operations the CLI exposes
package internal

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiya-kume/ccrefactor/internal/types"
	"github.com/fumiya-kume/ccrefactor/pkg/backup"
	"github.com/fumiya-kume/ccrefactor/pkg/clock"
	"github.com/fumiya-kume/ccrefactor/pkg/compare"
	"github.com/fumiya-kume/ccrefactor/pkg/config"
	"github.com/fumiya-kume/ccrefactor/pkg/diff"
	"github.com/fumiya-kume/ccrefactor/pkg/errors"
	"github.com/fumiya-kume/ccrefactor/pkg/git"
	"github.com/fumiya-kume/ccrefactor/pkg/github"
	"github.com/fumiya-kume/ccrefactor/pkg/logger"
	"github.com/fumiya-kume/ccrefactor/pkg/refactor"
	"github.com/fumiya-kume/ccrefactor/pkg/validation"
	"github.com/fumiya-kume/ccrefactor/pkg/watcher"
)

// ContentFetcher reads a file at a revision
type ContentFetcher interface {
	FetchContent(ctx context.Context, ref types.FileRef) (string, error)
}

// Notifier plays audible cues for outcomes worth interrupting the user for
type Notifier interface {
	PlayAlertSound()
	PlaySuccessSound()
	PlayErrorSound()
}

// LocalFetcher reads files from disk
type LocalFetcher struct{}

// FetchContent reads ref.Path, ignoring any revision
func (LocalFetcher) FetchContent(ctx context.Context, ref types.FileRef) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(ref.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.InputNotFoundError(ref.Path)
		}
		return "", errors.FileSystemError("stat", ref.Path, err)
	}
	if info.IsDir() {
		return "", errors.InvalidShapeError(ref.Path, "file")
	}

	// #nosec G304 - the path is chosen by the user
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return "", errors.FileSystemError("read", ref.Path, err)
	}
	return string(data), nil
}

// Processor runs ccrefactor's operations against an explicit configuration
type Processor struct {
	config   *config.Config
	logger   logger.LoggerInterface
	clock    clock.Clock
	notifier Notifier
	fetchers map[types.Source]ContentFetcher
}

// ProcessorOption customizes a Processor
type ProcessorOption func(*Processor)

// WithFetcher replaces the fetcher used for a source
func WithFetcher(source types.Source, fetcher ContentFetcher) ProcessorOption {
	return func(p *Processor) {
		p.fetchers[source] = fetcher
	}
}

// WithClock sets the clock used for backup timestamps and request pacing
func WithClock(clk clock.Clock) ProcessorOption {
	return func(p *Processor) {
		p.clock = clk
	}
}

// WithNotifier enables audible cues
func WithNotifier(n Notifier) ProcessorOption {
	return func(p *Processor) {
		p.notifier = n
	}
}

// NewProcessor creates a processor. A nil config uses config.DefaultConfig.
func NewProcessor(cfg *config.Config, log logger.LoggerInterface, opts ...ProcessorOption) *Processor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	p := &Processor{
		config:   cfg,
		logger:   logger.OrNop(log),
		clock:    clock.NewRealClock(),
		fetchers: map[types.Source]ContentFetcher{types.SourceLocal: LocalFetcher{}},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the configuration the processor runs with
func (p *Processor) Config() *config.Config {
	return p.config
}

// LocalRef names a file on disk
func LocalRef(path string) types.FileRef {
	return types.FileRef{Path: path, Source: types.SourceLocal}
}

// GitBaseline names the version of the local file at a revision of the repository containing it
func (p *Processor) GitBaseline(local, revision string) (types.FileRef, error) {
	fetcher, err := p.gitFetcher(local)
	if err != nil {
		return types.FileRef{}, err
	}

	path, err := fetcher.RelativePath(local)
	if err != nil {
		return types.FileRef{}, err
	}
	return validation.ParseGitRef(revision, path)
}

// GitHubBaseline names a file on GitHub. A repoRef of "@ref" or "" takes the
// repository from the local git remote, and an empty path reuses the local
// file's path inside its repository.
func (p *Processor) GitHubBaseline(local, repoRef, path string) (types.FileRef, error) {
	if repoRef == "" || strings.HasPrefix(repoRef, "@") {
		fetcher, err := p.gitFetcher(local)
		if err != nil {
			return types.FileRef{}, err
		}
		owner, repo, err := fetcher.GitHubRemote(p.config.GitHub.Host)
		if err != nil {
			return types.FileRef{}, err
		}
		repoRef = owner + "/" + repo + repoRef
	}

	if path == "" {
		if fetcher, err := p.gitFetcher(local); err == nil {
			if rel, err := fetcher.RelativePath(local); err == nil {
				path = rel
			}
		}
		if path == "" {
			path = filepath.Base(local)
		}
	}

	return validation.ParseGitHubRef(repoRef, path)
}

// Fetch reads the content a reference names
func (p *Processor) Fetch(ctx context.Context, ref types.FileRef) (string, error) {
	fetcher, err := p.fetcherFor(ref)
	if err != nil {
		return "", err
	}
	return fetcher.FetchContent(ctx, ref)
}

// Comparison is a comparison together with the inputs it was computed from
type Comparison struct {
	Local    types.FileRef             `json:"local"`
	Baseline types.FileRef             `json:"baseline"`
	Result   *compare.ComparisonResult `json:"result"`

	localContent    string
	baselineContent string
}

// Compare compares the local file against a baseline
func (p *Processor) Compare(ctx context.Context, local string, baseline types.FileRef, depth compare.Depth) (*Comparison, error) {
	localContent, baselineContent, err := p.fetchPair(ctx, local, baseline)
	if err != nil {
		return nil, err
	}

	result := compare.NewComparator(p.logger).Compare(localContent, baselineContent, depth)
	return &Comparison{
		Local:           LocalRef(local),
		Baseline:        baseline,
		Result:          result,
		localContent:    localContent,
		baselineContent: baselineContent,
	}, nil
}

// Unified renders the comparison's inputs as a unified patch from baseline to local
func (p *Processor) Unified(c *Comparison) (string, error) {
	return diff.Unified(c.Baseline.String(), c.Local.String(), c.baselineContent, c.localContent, p.config.Compare.Context)
}

// Analyze reports method and logic changes of the local file against a baseline
func (p *Processor) Analyze(ctx context.Context, local string, baseline types.FileRef, opts compare.AnalyzeOptions) (*compare.ChangeAnalysis, error) {
	localContent, baselineContent, err := p.fetchPair(ctx, local, baseline)
	if err != nil {
		return nil, err
	}
	return compare.AnalyzeChanges(localContent, baselineContent, opts), nil
}

// RefactorOptions returns the configured refactor defaults
func (p *Processor) RefactorOptions() refactor.Options {
	return refactor.Options{
		Rules:         append([]string(nil), p.config.Refactor.Rules...),
		PreserveLogic: p.config.Refactor.PreserveLogic,
		CreateBackup:  p.config.Refactor.CreateBackup,
	}
}

// Refactor rewrites target with the configured patterns, merged with patterns
// detected from the target itself when detect is set
func (p *Processor) Refactor(ctx context.Context, target string, opts refactor.Options, detect bool) (*refactor.RefactoringResult, error) {
	patterns := p.config.Refactor.Patterns
	if detect {
		detected, err := refactor.DetectPatternsInPath(ctx, target, p.config.Refactor.Extensions)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("detected patterns: %+v", detected)
		patterns = patterns.Merge(detected)
	}

	engine := refactor.NewEngine(refactor.EngineConfig{
		Logger:     p.logger,
		Backups:    backup.NewManager(p.clock, p.logger),
		Extensions: p.config.Refactor.Extensions,
		Workers:    p.config.Refactor.Workers,
	})

	result, err := engine.Refactor(ctx, target, patterns, opts)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeGuardRejected) {
			p.notify(Notifier.PlayErrorSound)
		}
		return nil, err
	}

	if !result.DryRun && len(result.Files) > 0 {
		p.notify(Notifier.PlaySuccessSound)
	}
	return result, nil
}

// Backup snapshots target next to itself
func (p *Processor) Backup(target string) (string, error) {
	return backup.NewManager(p.clock, p.logger).Create(target)
}

// Watch compares the local file against the baseline now and again after every
// change to the local file, or to the baseline when it is also on disk. It
// returns when ctx is done.
func (p *Processor) Watch(ctx context.Context, local string, baseline types.FileRef, depth compare.Depth, onResult func(*Comparison, error)) error {
	paths := []string{local}
	if baseline.Source == types.SourceLocal {
		paths = append(paths, baseline.Path)
	}

	w, err := watcher.New(paths, p.config.Watch.Debounce, p.logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	run := func() {
		c, err := p.Compare(ctx, local, baseline, depth)
		if err == nil && c.Result.Metrics.MaintainabilityImpact == compare.High {
			p.notify(Notifier.PlayAlertSound)
		}
		onResult(c, err)
	}

	run()
	return w.Run(ctx, func(changed []string) {
		p.logger.Debug("re-comparing after changes to %s", strings.Join(changed, ", "))
		run()
	})
}

func (p *Processor) fetchPair(ctx context.Context, local string, baseline types.FileRef) (string, string, error) {
	localContent, err := p.Fetch(ctx, LocalRef(local))
	if err != nil {
		return "", "", err
	}

	baselineContent, err := p.Fetch(ctx, baseline)
	if err != nil {
		p.logger.Error("fetching baseline %s: %v", baseline, err)
		return "", "", err
	}
	return localContent, baselineContent, nil
}

func (p *Processor) fetcherFor(ref types.FileRef) (ContentFetcher, error) {
	if fetcher, ok := p.fetchers[ref.Source]; ok {
		return fetcher, nil
	}

	switch ref.Source {
	case types.SourceGitHub:
		client, err := github.NewClient(github.ClientConfig{
			Host:            p.config.GitHub.Host,
			RequestsPerHour: p.config.GitHub.RequestsPerHour,
			Timeout:         p.config.GitHub.Timeout,
			Clock:           p.clock,
			Logger:          p.logger,
		})
		if err != nil {
			return nil, err
		}
		p.fetchers[types.SourceGitHub] = client
		return client, nil
	case types.SourceGit:
		return nil, errors.NewError(errors.ErrorTypeGit).
			WithMessage("no repository opened for git references").
			WithSuggestion("Resolve the baseline with GitBaseline first").
			Build()
	default:
		return nil, errors.ValidationError("unknown source " + string(ref.Source))
	}
}

func (p *Processor) gitFetcher(local string) (*git.Fetcher, error) {
	if f, ok := p.fetchers[types.SourceGit].(*git.Fetcher); ok {
		return f, nil
	}
	f, err := git.Open(local, p.logger)
	if err != nil {
		return nil, err
	}
	p.fetchers[types.SourceGit] = f
	return f, nil
}

func (p *Processor) notify(play func(Notifier)) {
	if p.notifier != nil {
		play(p.notifier)
	}
}
