// Package gen orchestrates a documentation run. The heavy lifting — source
// analysis and page rendering — lives behind interfaces; this package only
// sequences them and manages the output directory. Configuration is passed
// in explicitly rather than looked up globally.
package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artpar/docsmith/config"
)

// Analyzer produces the raw declaration data for a module, typically by
// driving a sourcekitten-style tool.
type Analyzer interface {
	Analyze(ctx context.Context, cfg *config.Config) ([]byte, error)
}

// Renderer turns declaration data into files under the output directory.
type Renderer interface {
	Render(ctx context.Context, cfg *config.Config, declarations []byte) error
}

// Pipeline runs one documentation generation pass.
type Pipeline struct {
	analyzer Analyzer
	renderer Renderer
	logger   zerolog.Logger
}

// NewPipeline creates a pipeline with the given collaborators.
func NewPipeline(analyzer Analyzer, renderer Renderer, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		analyzer: analyzer,
		renderer: renderer,
		logger:   logger,
	}
}

// Run executes one pass: optionally clean the output directory, obtain
// declaration data (a pre-generated sourcekitten file wins over running the
// analyzer), and render into the output directory.
func (p *Pipeline) Run(ctx context.Context, cfg *config.Config) error {
	logger := p.logger.With().
		Str("run_id", uuid.NewString()).
		Str("module", cfg.ModuleName).
		Logger()

	if cfg.Clean {
		if err := cleanOutput(cfg.Output); err != nil {
			return fmt.Errorf("clean output: %w", err)
		}
		logger.Info().Str("output", cfg.Output).Msg("cleaned output directory")
	}

	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	declarations, err := p.declarations(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if err := p.renderer.Render(ctx, cfg, declarations); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	logger.Info().Str("output", cfg.Output).Msg("documentation generated")
	return nil
}

func (p *Pipeline) declarations(ctx context.Context, cfg *config.Config, logger zerolog.Logger) ([]byte, error) {
	if cfg.SourceKittenSourcefile != "" {
		logger.Info().
			Str("sourcefile", cfg.SourceKittenSourcefile).
			Msg("using pre-generated source analysis")
		data, err := os.ReadFile(cfg.SourceKittenSourcefile)
		if err != nil {
			return nil, fmt.Errorf("read sourcefile: %w", err)
		}
		return data, nil
	}

	if p.analyzer == nil {
		return nil, fmt.Errorf("no analyzer configured and no sourcekitten sourcefile given")
	}

	logger.Info().Str("source", cfg.SourceDirectory).Msg("analyzing sources")
	data, err := p.analyzer.Analyze(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return data, nil
}

// cleanOutput removes the contents of dir, not dir itself. Refuses obviously
// dangerous targets.
func cleanOutput(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if abs == string(filepath.Separator) || abs == filepath.Dir(abs) {
		return fmt.Errorf("refusing to clean %q", abs)
	}

	entries, err := os.ReadDir(abs)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(abs, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
