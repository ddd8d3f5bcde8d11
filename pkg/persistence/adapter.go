// Package persistence saves a transformed scene graph as a scene file next
// to the asset it was imported from.
package persistence

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/aretw0/sceneswap/pkg/ports"
	"github.com/aretw0/sceneswap/pkg/scenefile"
)

// Adapter derives the output path, prepares its directory, packs the tree
// and writes the scene file. It never retries and never mutates the tree.
type Adapter struct {
	store  ports.SceneStore
	codec  scenefile.Codec
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Adapter.
type Option func(*Adapter)

// WithCodec selects the scene file codec (default tscn).
func WithCodec(c scenefile.Codec) Option {
	return func(a *Adapter) {
		if c != nil {
			a.codec = c
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Adapter) {
		a.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Adapter writing through store.
func New(store ports.SceneStore, opts ...Option) *Adapter {
	a := &Adapter{
		store:  store,
		codec:  scenefile.TSCN{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Codec returns the codec the adapter writes with.
func (a *Adapter) Codec() scenefile.Codec {
	return a.codec
}

// SavedPath returns where a scene named sceneName imported from sourcePath is written.
func (a *Adapter) SavedPath(sceneName, sourcePath string) string {
	return filepath.Join(filepath.Dir(sourcePath), sceneName+a.codec.Extension())
}

// Save writes root as <dir of sourcePath>/<sceneName><extension>.
//
// An empty sourcePath or sceneName fails before any I/O. A directory that
// cannot be created is reported in the returned report and through the hooks,
// but the pack and write steps still run. A pack failure skips the write.
// The returned error is the first step failure that stopped the save, or nil.
func (a *Adapter) Save(ctx context.Context, root *domain.Node, sceneName, sourcePath string) (*domain.SaveReport, error) {
	report := &domain.SaveReport{}
	if sourcePath == "" {
		return report, &domain.StepError{Kind: domain.ErrInvalidSourcePath, Step: domain.StepValidate, Code: domain.CodeInvalidParameter}
	}
	if sceneName == "" {
		return report, &domain.StepError{Kind: domain.ErrInvalidSceneName, Step: domain.StepValidate, Code: domain.CodeInvalidParameter, Path: sourcePath}
	}
	path := a.SavedPath(sceneName, sourcePath)
	dir := filepath.Dir(path)
	report.Path = path
	a.logger.Debug("Resolved save path", "path", path)

	created, err := a.store.EnsureDir(ctx, dir)
	report.Directory = domain.StepOutcome{Attempted: true}
	if err != nil {
		report.Directory.Err = &domain.StepError{Kind: domain.ErrDirectoryCreateFailed, Step: domain.StepDirectory, Code: codeFor(err, domain.CodeCantCreate), Path: dir, Err: err}
		a.logger.Debug("Failed to create scene directory", "dir", dir, "err", err)
	} else if created {
		report.DirectoryCreated = true
		a.logger.Debug("Created scene directory", "dir", dir)
	}
	a.emit(ctx, domain.StepDirectory, dir, report.Directory.Err)

	packed, err := scenefile.Pack(root)
	report.Pack = domain.StepOutcome{Attempted: true, Err: err}
	a.emit(ctx, domain.StepPack, path, err)
	if err != nil {
		return report, err
	}

	data, err := a.codec.Encode(packed)
	if err == nil {
		err = a.store.Write(ctx, path, data)
	}
	if err != nil {
		err = &domain.StepError{Kind: domain.ErrWriteFailed, Step: domain.StepWrite, Code: codeFor(err, domain.CodeFileCantWrite), Path: path, Err: err}
	} else {
		report.Bytes = len(data)
		a.logger.Debug("Wrote scene file", "path", path, "bytes", report.Bytes)
	}
	report.Write = domain.StepOutcome{Attempted: true, Err: err}
	a.emit(ctx, domain.StepWrite, path, err)
	if err != nil {
		return report, err
	}
	return report, nil
}

func (a *Adapter) emit(ctx context.Context, step domain.Step, path string, err error) {
	if a.hooks.OnSaveStep == nil {
		return
	}
	a.hooks.OnSaveStep(ctx, &domain.SaveEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSaveStep},
		Step:      step,
		Path:      path,
		Err:       err,
	})
}

// codeFor maps filesystem errors to step codes.
func codeFor(err error, fallback domain.Code) domain.Code {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return domain.CodeFileNoPermission
	case errors.Is(err, fs.ErrNotExist):
		return domain.CodeFileBadPath
	default:
		return fallback
	}
}
