package sceneswap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/sceneswap/internal/transform"
	"github.com/aretw0/sceneswap/pkg/adapters/file"
	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/aretw0/sceneswap/pkg/persistence"
	"github.com/aretw0/sceneswap/pkg/ports"
	"github.com/aretw0/sceneswap/pkg/registry"
	"github.com/aretw0/sceneswap/pkg/scenefile"
)

// Importer is the high-level entry point of the library. It runs the
// post-import pass: transform the tree, then save it next to its source.
type Importer struct {
	cfg         domain.Config
	classifier  ports.Classifier
	store       ports.SceneStore
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	transformer *transform.Transformer
	persister   *persistence.Adapter
}

// Option defines a functional option for configuring the Importer.
type Option func(*Importer)

// WithConfig replaces the default configuration.
func WithConfig(cfg domain.Config) Option {
	return func(i *Importer) {
		i.cfg = cfg
	}
}

// WithClassifier sets the host kind system (default registry.Default()).
func WithClassifier(c ports.Classifier) Option {
	return func(i *Importer) {
		i.classifier = c
	}
}

// WithStore sets where scene files are written (default: local filesystem).
func WithStore(s ports.SceneStore) Option {
	return func(i *Importer) {
		i.store = s
	}
}

// WithLogger sets a custom structured logger for the importer.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. They run after the
// importer's own reporting hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(i *Importer) {
		i.hooks = hooks
	}
}

// ImportResult is what PostImport hands back to the host. Root is always set.
type ImportResult struct {
	Root     *domain.Node
	Replaced int
	Warnings []domain.Warning
	// SavePath is set only when the scene file was written.
	SavePath string
	Save     *domain.SaveReport
	// Err joins every failure reported during the run. It never means the
	// tree was not returned.
	Err error
}

// New initializes a new Importer.
func New(opts ...Option) (*Importer, error) {
	imp := &Importer{cfg: domain.DefaultConfig()}
	for _, opt := range opts {
		opt(imp)
	}
	if imp.classifier == nil {
		imp.classifier = registry.Default()
	}
	if imp.store == nil {
		imp.store = file.New()
	}
	if imp.logger == nil {
		imp.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if imp.cfg.TriggerKind == "" {
		imp.cfg.TriggerKind = domain.KindArea3D
	}
	if imp.cfg.SceneFormat == "" {
		imp.cfg.SceneFormat = domain.DefaultSceneFormat
	}

	sample := domain.NewNode("", imp.cfg.TriggerKind)
	if imp.classifier.Classify(sample) == domain.CapabilityCollisionVolume {
		return nil, fmt.Errorf("trigger kind %s is a collision volume; replacements would be replaced again", imp.cfg.TriggerKind)
	}
	codec, err := scenefile.Lookup(imp.cfg.SceneFormat)
	if err != nil {
		return nil, err
	}

	hooks := reportingHooks(imp.logger).Merge(imp.hooks)
	imp.transformer = transform.New(imp.classifier,
		transform.WithTriggerKind(imp.cfg.TriggerKind),
		transform.WithLifecycleHooks(hooks),
		transform.WithLogger(imp.debugLogger()),
	)
	imp.persister = persistence.New(imp.store,
		persistence.WithCodec(codec),
		persistence.WithLifecycleHooks(hooks),
		persistence.WithLogger(imp.debugLogger()),
	)
	return imp, nil
}

// Config returns the effective configuration.
func (i *Importer) Config() domain.Config {
	return i.cfg
}

// SavedPath returns where PostImport writes root when the source resolves to
// sourcePath.
func (i *Importer) SavedPath(root *domain.Node, sourcePath string) string {
	return i.persister.SavedPath(root.Name, sourcePath)
}

// PostImport runs once per import event. It replaces tagged collision
// volumes under root, then, when saving is enabled, resolves the source file
// and saves the tree next to it under root's name.
//
// No failure aborts the import: the result always carries root, and every
// problem is logged and joined into Err.
func (i *Importer) PostImport(ctx context.Context, root *domain.Node, source ports.SourceResolver) *ImportResult {
	res := &ImportResult{Root: root}
	var errs []error
	defer func() {
		res.Err = errors.Join(errs...)
	}()

	tr, err := i.transformer.Transform(ctx, root, i.cfg.HintTag)
	if err != nil {
		i.logger.Error("Transform failed", "err", err)
		errs = append(errs, err)
		return res
	}
	res.Replaced = tr.Replaced
	res.Warnings = tr.Warnings

	if tr.Replaced == 0 {
		w := domain.Warning{Code: domain.WarningNoMatchesFound, Tag: i.cfg.HintTag}
		res.Warnings = append(res.Warnings, w)
		i.logger.Warn(w.String())
	} else {
		i.logger.Info("Replaced collision volumes", "count", tr.Replaced)
	}

	if !i.cfg.SaveAsTSCN {
		i.debug("Saving disabled")
		return res
	}

	path, err := resolveSource(ctx, source)
	if err != nil {
		i.logger.Error("Could not resolve source file, scene not saved", "err", err)
		errs = append(errs, err)
		return res
	}

	report, err := i.persister.Save(ctx, root, root.Name, path)
	res.Save = report
	if report.Directory.Err != nil {
		errs = append(errs, report.Directory.Err)
	}
	if err != nil {
		errs = append(errs, err)
		return res
	}
	res.SavePath = report.Path
	i.logger.Info("Scene saved", "path", report.Path)
	return res
}

func resolveSource(ctx context.Context, source ports.SourceResolver) (string, error) {
	if source == nil {
		return "", fmt.Errorf("%w: no source resolver", domain.ErrInvalidSourcePath)
	}
	path, err := source.SourceFile(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSourcePath) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidSourcePath, err)
	}
	if path == "" {
		return "", fmt.Errorf("%w: empty source file", domain.ErrInvalidSourcePath)
	}
	return path, nil
}

func (i *Importer) debug(msg string, args ...any) {
	if i.cfg.DebugMode {
		i.logger.Debug(msg, args...)
	}
}

// debugLogger is the logger handed to components; their traces are only
// wanted in debug mode.
func (i *Importer) debugLogger() *slog.Logger {
	if i.cfg.DebugMode {
		return i.logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
