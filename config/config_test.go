package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/artpar/docsmith/config"
	"github.com/artpar/docsmith/schema"
)

func TestAttributes_NamesPairwiseDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, attr := range config.Attributes().All() {
		if seen[attr.Name] {
			t.Errorf("duplicate attribute name %q", attr.Name)
		}
		seen[attr.Name] = true
	}
	if len(seen) == 0 {
		t.Fatal("registry is empty")
	}
}

func TestNew_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg := config.New()

	if cfg.Output != "docs" {
		t.Errorf("Output = %s, want docs", cfg.Output)
	}
	if cfg.Clean {
		t.Error("Clean = true, want false")
	}
	if cfg.MinACL != config.Public {
		t.Errorf("MinACL = %s, want public", cfg.MinACL)
	}
	if cfg.ExcludedFiles == nil || len(cfg.ExcludedFiles) != 0 {
		t.Errorf("ExcludedFiles = %v, want empty", cfg.ExcludedFiles)
	}
	if cfg.XcodebuildArguments == nil || len(cfg.XcodebuildArguments) != 0 {
		t.Errorf("XcodebuildArguments = %v, want empty", cfg.XcodebuildArguments)
	}
	if cfg.SwiftVersion != config.DefaultSwiftVersion {
		t.Errorf("SwiftVersion = %s, want %s", cfg.SwiftVersion, config.DefaultSwiftVersion)
	}
	if cfg.CustomCategories == nil || len(cfg.CustomCategories) != 0 {
		t.Errorf("CustomCategories = %v, want empty map", cfg.CustomCategories)
	}
	if cfg.AuthorName != "" || cfg.ModuleName != "" {
		t.Errorf("author/module = %q/%q, want empty", cfg.AuthorName, cfg.ModuleName)
	}
	if cfg.RootURL != nil || cfg.DashURL != nil {
		t.Error("URLs should default to nil")
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if cfg.SourceDirectory != wd {
		t.Errorf("SourceDirectory = %s, want %s", cfg.SourceDirectory, wd)
	}
	if cfg.TemplateDirectory == "" || cfg.AssetsDirectory == "" {
		t.Error("template/assets directories should default to install-relative paths")
	}
}

func TestNew_PodspecPrefill(t *testing.T) {
	dir := t.TempDir()
	content := `{"name": "MyLib", "version": "2.0.0", "authors": "Jane Doe"}`
	if err := os.WriteFile(filepath.Join(dir, "MyLib.podspec.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("write podspec: %v", err)
	}
	chdir(t, dir)

	cfg := config.New()

	if cfg.ModuleName != "MyLib" {
		t.Errorf("ModuleName = %s, want MyLib", cfg.ModuleName)
	}
	if cfg.ModuleVersion != "2.0.0" {
		t.Errorf("ModuleVersion = %s, want 2.0.0", cfg.ModuleVersion)
	}
	if cfg.AuthorName != "Jane Doe" {
		t.Errorf("AuthorName = %s, want Jane Doe", cfg.AuthorName)
	}
	if cfg.PodspecPath == "" {
		t.Error("PodspecPath should point at the discovered file")
	}
}

func TestNew_BrokenPodspecIsBestEffort(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Bad.podspec.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write podspec: %v", err)
	}
	chdir(t, dir)

	cfg := config.New()
	if cfg.ModuleName != "" || cfg.PodspecPath != "" {
		t.Error("broken podspec must not prefill anything")
	}
	if cfg.Output != "docs" {
		t.Error("defaults must still apply")
	}
}

func TestDescriptor_RoundTripThroughParse(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := config.New()

	attr, ok := config.Attributes().Lookup("excluded_files")
	if !ok {
		t.Fatal("excluded_files not registered")
	}

	if err := attr.Set(cfg, "a.swift,b.swift"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := attr.Get(cfg)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	paths, ok := got.([]string)
	if !ok {
		t.Fatalf("Get returned %T, want []string", got)
	}
	if len(paths) != 2 {
		t.Fatalf("len = %d, want 2", len(paths))
	}
	for i, want := range []string{"a.swift", "b.swift"} {
		if !filepath.IsAbs(paths[i]) {
			t.Errorf("paths[%d] = %s, want absolute", i, paths[i])
		}
		if !strings.HasSuffix(paths[i], want) {
			t.Errorf("paths[%d] = %s, want suffix %s", i, paths[i], want)
		}
	}
}

func TestMinACL_RecognizedTokens(t *testing.T) {
	attr, _ := config.Attributes().Lookup("min_acl")

	cases := []struct {
		raw  string
		want config.AccessLevel
	}{
		{"private", config.Private},
		{"internal", config.Internal},
		{"public", config.Public},
	}
	for _, tc := range cases {
		cfg := &config.Config{MinACL: config.Public}
		if err := attr.Set(cfg, tc.raw); err != nil {
			t.Fatalf("Set(%s) error: %v", tc.raw, err)
		}
		if cfg.MinACL != tc.want {
			t.Errorf("MinACL(%s) = %s, want %s", tc.raw, cfg.MinACL, tc.want)
		}
	}
}

// Pins the permissive fallback: an unrecognized level keeps the prior value
// instead of erroring. Deliberate legacy behavior, do not "fix" silently.
func TestMinACL_UnknownTokenKeepsPriorValue(t *testing.T) {
	attr, _ := config.Attributes().Lookup("min_acl")

	cfg := &config.Config{MinACL: config.Internal}
	if err := attr.Set(cfg, "bogus"); err != nil {
		t.Fatalf("Set(bogus) error: %v", err)
	}
	if cfg.MinACL != config.Internal {
		t.Errorf("MinACL = %s, want internal (unchanged)", cfg.MinACL)
	}
}

func TestURLAttributes_RejectMalformedValues(t *testing.T) {
	attr, _ := config.Attributes().Lookup("root_url")
	cfg := &config.Config{}

	err := attr.Set(cfg, "notaurl")
	var perr *schema.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Attribute != "root_url" || perr.Raw != "notaurl" {
		t.Errorf("ParseError = %s/%q, want root_url/notaurl", perr.Attribute, perr.Raw)
	}

	if err := attr.Set(cfg, "https://realm.io/docs/"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if cfg.RootURL == nil || cfg.RootURL.Host != "realm.io" {
		t.Errorf("RootURL = %v, want host realm.io", cfg.RootURL)
	}
}
