package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/artpar/docsmith/config"
)

// SourceKittenAnalyzer shells out to the sourcekitten binary to produce
// declaration JSON for the configured module.
type SourceKittenAnalyzer struct {
	// Binary is the executable to run; defaults to "sourcekitten".
	Binary string
	Logger zerolog.Logger
}

// Analyze runs `sourcekitten doc` in the configured source directory,
// forwarding the xcodebuild arguments from the configuration.
func (a *SourceKittenAnalyzer) Analyze(ctx context.Context, cfg *config.Config) ([]byte, error) {
	binary := a.Binary
	if binary == "" {
		binary = "sourcekitten"
	}

	args := []string{"doc"}
	if cfg.ModuleName != "" {
		args = append(args, "--module-name", cfg.ModuleName)
	}
	if len(cfg.XcodebuildArguments) > 0 {
		args = append(args, "--")
		args = append(args, cfg.XcodebuildArguments...)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = cfg.SourceDirectory

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	a.Logger.Debug().
		Str("binary", binary).
		Strs("args", args).
		Str("dir", cfg.SourceDirectory).
		Msg("running sourcekitten")

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("sourcekitten: %w: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// DeclarationWriter is a minimal renderer that persists the raw declaration
// data into the output directory for downstream tooling. The real HTML
// pipeline plugs in behind the same Renderer interface.
type DeclarationWriter struct{}

// Render writes the declaration data as <output>/<module or docsmith>.json.
func (DeclarationWriter) Render(_ context.Context, cfg *config.Config, declarations []byte) error {
	name := cfg.ModuleName
	if name == "" {
		name = "docsmith"
	}
	path := filepath.Join(cfg.Output, name+".json")
	if err := os.WriteFile(path, declarations, 0o644); err != nil {
		return fmt.Errorf("write declarations: %w", err)
	}
	return nil
}
