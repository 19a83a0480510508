// Package config declares the docsmith configuration schema and owns the
// process-wide current configuration. Every field is described by an
// attribute descriptor in the shared registry (see attributes.go); the CLI
// binder and the config-file loader both populate Config instances through
// those descriptors, so a field never holds a raw unparsed string.
package config

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/artpar/docsmith/podspec"
)

// Built-in defaults.
const (
	DefaultOutput       = "docs"
	DefaultSwiftVersion = "5.9"
)

// Config holds the current value for every declared attribute. Many
// instances may exist (tests build their own); one designated instance is
// held by a Holder for the lifetime of the process.
type Config struct {
	Output                 string
	Clean                  bool
	XcodebuildArguments    []string
	SourceKittenSourcefile string
	ExcludedFiles          []string
	AuthorName             string
	AuthorURL              *url.URL
	ModuleName             string
	ModuleVersion          string
	Copyright              string
	GitHubURL              *url.URL
	GitHubFilePrefix       string
	RootURL                *url.URL
	DashURL                *url.URL
	MinACL                 AccessLevel
	ReadmePath             string
	PodspecPath            string
	SkipUndocumented       bool
	SwiftVersion           string
	CustomCategories       map[string][]string
	SourceDirectory        string
	TemplateDirectory      string
	AssetsDirectory        string
}

// New builds a fully-defaulted configuration: a podspec-equivalent file in
// the working directory prefills author/module/version (best effort, absence
// is not an error), then literal defaults fill every remaining field. The
// result is internally consistent and usable without any CLI involvement.
func New() *Config {
	cfg := &Config{MinACL: Public}
	prefillFromPodspec(cfg)
	setDefaults(cfg)
	return cfg
}

// prefillFromPodspec globs the working directory for project metadata and
// copies author, module name, and version into the config. Parse failures
// are swallowed: the metadata file is an optional convenience.
func prefillFromPodspec(cfg *Config) {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	path, err := podspec.Find(wd)
	if err != nil || path == "" {
		return
	}
	md, err := podspec.Load(path)
	if err != nil {
		return
	}
	cfg.PodspecPath = path
	cfg.ModuleName = md.Name
	cfg.ModuleVersion = md.Version
	if len(md.Authors) > 0 {
		cfg.AuthorName = md.Authors[0]
	}
}

func setDefaults(cfg *Config) {
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.XcodebuildArguments == nil {
		cfg.XcodebuildArguments = []string{}
	}
	if cfg.ExcludedFiles == nil {
		cfg.ExcludedFiles = []string{}
	}
	if cfg.SwiftVersion == "" {
		cfg.SwiftVersion = DefaultSwiftVersion
	}
	if cfg.CustomCategories == nil {
		cfg.CustomCategories = map[string][]string{}
	}
	if cfg.SourceDirectory == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.SourceDirectory = wd
		} else {
			cfg.SourceDirectory = "."
		}
	}
	if cfg.TemplateDirectory == "" {
		cfg.TemplateDirectory = filepath.Join(installRoot(), "templates")
	}
	if cfg.AssetsDirectory == "" {
		cfg.AssetsDirectory = filepath.Join(installRoot(), "assets")
	}
}

// installRoot is the directory docsmith runs from; templates and assets ship
// alongside the binary.
func installRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
