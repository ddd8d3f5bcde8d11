package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/sceneswap"
	"github.com/aretw0/sceneswap/internal/config"
	"github.com/aretw0/sceneswap/internal/presentation/tui"
	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/aretw0/sceneswap/pkg/observability"
	"github.com/aretw0/sceneswap/pkg/ports"
	"github.com/aretw0/sceneswap/pkg/scenefile"
)

// ErrOverwritesInput is returned when the scene would be saved over the dump
// it was loaded from and no source path was given.
var ErrOverwritesInput = errors.New("saving would overwrite the input scene")

// ImportOptions contains all the configuration for the import command.
type ImportOptions struct {
	// ScenePath is the host dump to import (.tscn, .json or .yaml).
	ScenePath string
	// SourcePath is the asset the dump was produced from. The scene file is
	// saved next to it. Defaults to ScenePath, unless that would overwrite it.
	SourcePath string
	// ConfigPath is an optional config file; empty means the default location.
	ConfigPath string
	// Overrides are config keys set on the command line. They win over the file.
	Overrides map[string]any
	// ReportPath receives the markdown report when set.
	ReportPath string
	// MetricsFile receives the Prometheus textfile when set.
	MetricsFile string
	Watch       bool
	Quiet       bool

	// Stdout defaults to os.Stdout.
	Stdout io.Writer
}

func (o *ImportOptions) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

// Execute handles the 'import' command logic, dispatching to a single run or Watch mode.
func Execute(opts ImportOptions) error {
	if opts.ScenePath == "" {
		return fmt.Errorf("a scene file is required")
	}
	if opts.Watch {
		return RunWatch(opts)
	}
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	_, err := RunImport(sigCtx, opts)
	return err
}

// LoadConfig reads the config file and applies the command line overrides.
func LoadConfig(opts ImportOptions) (domain.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return domain.Config{}, err
	}
	if len(opts.Overrides) > 0 {
		if err := config.Decode(opts.Overrides, &cfg); err != nil {
			return domain.Config{}, err
		}
		if err := config.Validate(cfg); err != nil {
			return domain.Config{}, err
		}
	}
	return cfg, nil
}

// LoadScene decodes the scene dump at path with the codec matching its extension.
func LoadScene(path string) (*domain.Node, error) {
	codec, err := scenefile.ForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	root, err := scenefile.DecodeTree(codec, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return root, nil
}

// RunImport loads the scene dump, runs the post-import pass and reports the
// outcome. The returned error is the joined failures of the run.
func RunImport(ctx context.Context, opts ImportOptions) (*sceneswap.ImportResult, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger := createLogger(cfg.DebugMode, opts.Quiet)

	root, err := LoadScene(opts.ScenePath)
	if err != nil {
		return nil, err
	}

	var metrics *observability.Metrics
	importerOpts := []sceneswap.Option{
		sceneswap.WithConfig(cfg),
		sceneswap.WithLogger(logger),
	}
	if opts.MetricsFile != "" {
		metrics = observability.NewMetrics(nil)
		importerOpts = append(importerOpts, sceneswap.WithLifecycleHooks(metrics.Hooks()))
	}
	imp, err := sceneswap.New(importerOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing importer: %w", err)
	}

	source := opts.SourcePath
	if source == "" {
		source = opts.ScenePath
		if cfg.SaveAsTSCN && samePath(imp.SavedPath(root, source), opts.ScenePath) {
			return nil, fmt.Errorf("%w %s; pass --source to choose where the scene is saved", ErrOverwritesInput, opts.ScenePath)
		}
	}
	res := imp.PostImport(ctx, root, ports.StaticSource(source))

	if metrics != nil {
		metrics.ObserveImport(res.Err)
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics", "path", opts.MetricsFile, "err", err)
		}
	}
	report(opts, res, logger)
	return res, res.Err
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func report(opts ImportOptions, res *sceneswap.ImportResult, logger *slog.Logger) {
	md := tui.Report(opts.ScenePath, res)
	if opts.ReportPath != "" {
		if err := os.WriteFile(opts.ReportPath, []byte(md), 0644); err != nil {
			logger.Warn("Failed to write report", "path", opts.ReportPath, "err", err)
		}
	}
	if opts.Quiet {
		return
	}
	out := opts.stdout()
	styled := false
	if f, ok := out.(*os.File); ok {
		styled = tui.IsTerminal(f)
	}
	if err := tui.Print(out, md, styled); err != nil {
		logger.Warn("Failed to print report", "err", err)
	}
}
