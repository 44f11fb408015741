// Package app drives a generation run: it prepares the asset tree, produces
// each artifact independently, and reports the outcome through the logger
// and the metrics recorder.
//
// A failed artifact does not stop the run. Every artifact is attempted and
// the failures are returned together.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gaitlab/visualgen/internal/audit"
	"github.com/gaitlab/visualgen/internal/compare"
	"github.com/gaitlab/visualgen/internal/config"
	"github.com/gaitlab/visualgen/internal/diagram"
	"github.com/gaitlab/visualgen/internal/placeholder"
	"github.com/gaitlab/visualgen/internal/typeface"
	"github.com/gaitlab/visualgen/pkg/logger"
	"github.com/gaitlab/visualgen/pkg/metrics"
)

// Artifact kinds, used as the metrics "kind" label.
const (
	KindGRF         = "grf"
	KindPipeline    = "pipeline"
	KindScene       = "scene"
	KindPlaceholder = "placeholder"
)

// Output paths relative to the output directory.
const (
	PipelineFile = "pipeline/pipeline-flowchart.png"
	GRFFile      = "results/grf-comparison.png"
	SceneFile    = "setup/camera-setup.png"
)

// Dirs is the asset tree created under the output directory.
var Dirs = []string{"pipeline", "results", "setup", "demos", "badges", "logos"}

// Generator runs artifact generation for one configuration.
type Generator struct {
	cfg     *config.Config
	log     logger.Logger
	metrics *metrics.Recorder
	runID   string

	fontWarned bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithMetrics sets the recorder. Nil disables metrics.
func WithMetrics(r *metrics.Recorder) Option {
	return func(g *Generator) { g.metrics = r }
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(g *Generator) {
		if id != "" {
			g.runID = id
		}
	}
}

// New returns a Generator for cfg.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:   cfg,
		log:   logger.Nop(),
		runID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(logger.String("run_id", g.runID))
	return g
}

// RunID identifies this run in logs.
func (g *Generator) RunID() string { return g.runID }

// EnsureDirs creates the asset tree under the output directory.
func (g *Generator) EnsureDirs() error {
	for _, d := range Dirs {
		if err := os.MkdirAll(g.out(d), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return nil
}

// Visuals writes the pipeline flowchart, the GRF comparison and the camera
// setup diagram.
func (g *Generator) Visuals(ctx context.Context) error {
	if err := g.EnsureDirs(); err != nil {
		return err
	}
	opts := diagram.Options{DPI: g.cfg.DPI, DebugGrid: g.cfg.DebugGrid}

	var errs []error
	errs = append(errs, g.artifact(ctx, KindPipeline, g.out(PipelineFile), func(path string) error {
		return diagram.WritePipeline(g.pipeline(), path, opts)
	}))
	errs = append(errs, g.artifact(ctx, KindGRF, g.out(GRFFile), func(path string) error {
		return g.grf(ctx, path)
	}))
	errs = append(errs, g.artifact(ctx, KindScene, g.out(SceneFile), func(path string) error {
		return diagram.WriteScene(diagram.DefaultScene(), path, opts)
	}))
	return errors.Join(errs...)
}

// Placeholders writes every catalog placeholder and checks each written
// file against its spec.
func (g *Generator) Placeholders(ctx context.Context) error {
	if err := g.EnsureDirs(); err != nil {
		return err
	}
	var errs []error
	for _, e := range placeholder.Catalog() {
		errs = append(errs, g.artifact(ctx, KindPlaceholder, g.out(e.Path), func(path string) error {
			return g.placeholder(ctx, e.Spec, path)
		}))
	}
	return errors.Join(errs...)
}

// Finish writes the metrics textfile when one is configured.
func (g *Generator) Finish(ctx context.Context) error {
	if g.cfg.MetricsFile == "" || g.metrics == nil {
		return nil
	}
	if err := g.metrics.WriteTextfile(g.cfg.MetricsFile); err != nil {
		return err
	}
	g.log.Debug(ctx, "metrics written", logger.String("path", g.cfg.MetricsFile))
	return nil
}

// artifact runs write for one output, recording its outcome. A cancelled
// context skips the artifact.
func (g *Generator) artifact(ctx context.Context, kind, path string, write func(path string) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	start := time.Now()
	err := write(path)
	g.metrics.Observe(kind, time.Since(start).Seconds())
	g.metrics.Artifact(kind, err)
	if err != nil {
		g.log.Error(ctx, "artifact failed", logger.String("kind", kind), logger.String("path", path), logger.Error(err))
		return fmt.Errorf("%s: %w", path, err)
	}
	g.log.Info(ctx, "created", logger.String("kind", kind), logger.String("path", path))
	return nil
}

func (g *Generator) grf(ctx context.Context, path string) error {
	ref, est := compare.DataPaths(g.cfg.DataDir)
	res, err := compare.Run(ref, est, path, compare.FigureOptions{DPI: g.cfg.DPI})
	if err != nil {
		return err
	}
	if res.Synthetic {
		g.metrics.Fallback(metrics.ReasonSyntheticData)
		g.log.Warn(ctx, "GRF data not found, using synthetic example data", logger.String("data_dir", g.cfg.DataDir), logger.Error(res.Cause))
	}
	for _, s := range res.Stats {
		g.log.Debug(ctx, "channel agreement",
			logger.String("channel", s.Name),
			logger.String("rmse", compare.FormatStat(s.RMSE)),
			logger.String("r", compare.FormatStat(s.R)))
	}
	return nil
}

func (g *Generator) pipeline() diagram.Pipeline {
	p := diagram.DefaultPipeline()
	if g.cfg.PipelineTitle != "" {
		p.Title = g.cfg.PipelineTitle
	}
	if len(g.cfg.Stages) > 0 {
		p.Stages = make([]diagram.Stage, len(g.cfg.Stages))
		for i, s := range g.cfg.Stages {
			p.Stages[i] = diagram.Stage{Title: s.Title, Subtitle: s.Subtitle, Color: s.Color}
		}
	}
	return p
}

func (g *Generator) placeholder(ctx context.Context, spec placeholder.Spec, path string) error {
	z := placeholder.Synthesizer{}
	if g.cfg.FontPath != "" {
		z.Font = typeface.File{Path: g.cfg.FontPath}
	}
	res, err := z.Write(spec, path)
	if err != nil {
		return err
	}
	if res.Font.Fallback {
		g.metrics.Fallback(metrics.ReasonFallbackFont)
		if !g.fontWarned {
			g.fontWarned = true
			g.log.Warn(ctx, "preferred font unavailable, using built-in face",
				logger.String("font_path", g.cfg.FontPath), logger.Error(res.Font.Cause))
		}
	}

	rep, err := audit.Inspect(path, audit.Options{TopColors: 1})
	if err != nil {
		return err
	}
	want := audit.Expect{Width: spec.Width, Height: spec.Height, Frames: res.Frames}
	if spec.Animated() {
		want.DelayMS = int(placeholder.DefaultFrameDelay / time.Millisecond)
		if spec.FrameDelay > 0 {
			want.DelayMS = int(spec.FrameDelay / time.Millisecond)
		}
	}
	return audit.Verify(rep, want)
}

func (g *Generator) out(rel string) string {
	return filepath.Join(g.cfg.OutputDir, filepath.FromSlash(rel))
}
