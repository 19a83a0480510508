// Package cli binds the configuration schema to the command line. The
// binder walks the attribute registry in declaration order, registers one
// flag per CLI-bound descriptor, and drives the argument-parsing engine so
// that every matched flag stores its parsed value on the configuration
// object in argv order.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/artpar/docsmith/config"
)

// UsageError reports an argument list the parsing engine rejected: an
// unknown flag, a missing value, or a value a parse function refused. The
// wrapped message names the offending argument.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Binder turns an argument list into a populated configuration object.
// Stdout and Exit exist so tests can observe --help/--version behavior
// without the process terminating.
type Binder struct {
	Name    string
	Version string
	Stdout  io.Writer
	Exit    func(code int)
	Logger  zerolog.Logger
}

// NewBinder returns a binder with production defaults.
func NewBinder(logger zerolog.Logger) *Binder {
	return &Binder{
		Name:    "docsmith",
		Version: "dev",
		Stdout:  os.Stdout,
		Exit:    os.Exit,
		Logger:  logger,
	}
}

// Parse builds a defaulted configuration, binds every registered attribute
// to a flag set, and parses args against it. --help and --version print and
// terminate the process with exit code 0. A rejected argument comes back as
// a *UsageError; no partial configuration escapes in that case.
func (b *Binder) Parse(args []string) (*config.Config, error) {
	cfg := config.New()

	fs := pflag.NewFlagSet(b.Name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)

	for _, attr := range config.Attributes().All() {
		attr.Bind(cfg, fs)
	}

	showVersion := fs.BoolP("version", "v", false, "Print version number")
	showHelp := fs.BoolP("help", "h", false, "Print this help message")

	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{Err: err}
	}

	if *showHelp {
		fmt.Fprint(b.Stdout, b.usage(fs))
		b.Exit(0)
		return nil, nil
	}
	if *showVersion {
		fmt.Fprintf(b.Stdout, "%s version: %s\n", b.Name, b.Version)
		b.Exit(0)
		return nil, nil
	}

	deriveDashURL(cfg)

	b.Logger.Debug().
		Str("output", cfg.Output).
		Str("module", cfg.ModuleName).
		Str("min_acl", cfg.MinACL.String()).
		Msg("command line parsed")

	return cfg, nil
}

func (b *Binder) usage(fs *pflag.FlagSet) string {
	return fmt.Sprintf("Usage: %s [options]\n\nOptions:\n%s", b.Name, fs.FlagUsages())
}

// deriveDashURL fills dash_url from root_url when the command line set the
// latter but not the former: <root_url>/docsets/<module_name>.xml.
func deriveDashURL(cfg *config.Config) {
	if cfg.RootURL == nil || cfg.DashURL != nil {
		return
	}
	cfg.DashURL = cfg.RootURL.JoinPath("docsets", cfg.ModuleName+".xml")
}
