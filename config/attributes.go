package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/artpar/docsmith/schema"
)

// attribute is shorthand for a descriptor targeting Config.
type attribute = schema.Attribute[Config]

// registry is the full docsmith schema, populated once at package load and
// shared by every Config. Declaration order is the order flags appear in
// help output.
var registry = buildRegistry()

// Attributes returns the shared attribute registry.
func Attributes() *schema.Registry[Config] {
	return registry
}

func buildRegistry() *schema.Registry[Config] {
	r := schema.NewRegistry[Config]()

	r.Register(&schema.Attribute[Config]{
		Name:        "output",
		Description: []string{"Folder to output the generated docs to"},
		Flag:        &schema.FlagSpec{Long: "output", Short: "o", Placeholder: "FOLDER"},
		Parse:       parsePath,
		Getter:      func(c *Config) any { return c.Output },
		Setter:      assign(func(c *Config, v string) { c.Output = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "clean",
		Description: []string{"Delete contents of output directory before running"},
		Flag:        &schema.FlagSpec{Long: "clean", Short: "c", Boolean: true, Negatable: true},
		Parse:       parseBool,
		Getter:      func(c *Config) any { return c.Clean },
		Setter:      assign(func(c *Config, v bool) { c.Clean = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "xcodebuild_arguments",
		Description: []string{"Arguments to forward to xcodebuild"},
		Flag:        &schema.FlagSpec{Long: "xcodebuild-arguments", Short: "x", Placeholder: "arg1,arg2,…argN"},
		Parse:       parseList,
		Getter:      func(c *Config) any { return c.XcodebuildArguments },
		Setter:      assign(func(c *Config, v []string) { c.XcodebuildArguments = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "sourcekitten_sourcefile",
		Description: []string{"File generated from sourcekitten output to parse"},
		Flag:        &schema.FlagSpec{Long: "sourcekitten-sourcefile", Short: "s", Placeholder: "FILEPATH"},
		Parse:       parsePath,
		Getter:      func(c *Config) any { return c.SourceKittenSourcefile },
		Setter:      assign(func(c *Config, v string) { c.SourceKittenSourcefile = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "excluded_files",
		Description: []string{"Files to be excluded from documentation"},
		Flag:        &schema.FlagSpec{Long: "exclude", Short: "e", Placeholder: "file1,file2,…fileN"},
		Parse:       parsePathList,
		Getter:      func(c *Config) any { return c.ExcludedFiles },
		Setter:      assign(func(c *Config, v []string) { c.ExcludedFiles = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "author_name",
		Description: []string{"Name of author to attribute in docs, e.g. Realm"},
		Flag:        &schema.FlagSpec{Long: "author", Short: "a", Placeholder: "AUTHOR_NAME"},
		Getter:      func(c *Config) any { return c.AuthorName },
		Setter:      assign(func(c *Config, v string) { c.AuthorName = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "author_url",
		Description: []string{"Author URL of this project, e.g. https://realm.io"},
		Flag:        &schema.FlagSpec{Long: "author_url", Short: "u", Placeholder: "URL"},
		Parse:       parseURL,
		Getter:      func(c *Config) any { return c.AuthorURL },
		Setter:      assign(func(c *Config, v *url.URL) { c.AuthorURL = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "module_name",
		Description: []string{"Name of module being documented, e.g. RealmSwift"},
		Flag:        &schema.FlagSpec{Long: "module", Short: "m", Placeholder: "MODULE_NAME"},
		Getter:      func(c *Config) any { return c.ModuleName },
		Setter:      assign(func(c *Config, v string) { c.ModuleName = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "module_version",
		Description: []string{"Version string to use as part of the default docs title and inside the docset"},
		Flag:        &schema.FlagSpec{Long: "module-version", Placeholder: "VERSION"},
		Getter:      func(c *Config) any { return c.ModuleVersion },
		Setter:      assign(func(c *Config, v string) { c.ModuleVersion = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "copyright",
		Description: []string{"Copyright markdown rendered at the bottom of the docs pages"},
		Flag:        &schema.FlagSpec{Long: "copyright", Placeholder: "COPYRIGHT_MARKDOWN"},
		Getter:      func(c *Config) any { return c.Copyright },
		Setter:      assign(func(c *Config, v string) { c.Copyright = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "github_url",
		Description: []string{"GitHub URL of this project, e.g. https://github.com/realm/realm-cocoa"},
		Flag:        &schema.FlagSpec{Long: "github_url", Short: "g", Placeholder: "URL"},
		Parse:       parseURL,
		Getter:      func(c *Config) any { return c.GitHubURL },
		Setter:      assign(func(c *Config, v *url.URL) { c.GitHubURL = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "github_file_prefix",
		Description: []string{"GitHub URL file prefix of this project, e.g. https://github.com/realm/realm-cocoa/tree/v0.87.1"},
		Flag:        &schema.FlagSpec{Long: "github-file-prefix", Placeholder: "PREFIX"},
		Getter:      func(c *Config) any { return c.GitHubFilePrefix },
		Setter:      assign(func(c *Config, v string) { c.GitHubFilePrefix = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "root_url",
		Description: []string{"Absolute URL root where these docs will be published, e.g. https://realm.io/docs/swift/0.87.1/api/"},
		Flag:        &schema.FlagSpec{Long: "root-url", Short: "r", Placeholder: "URL"},
		Parse:       parseURL,
		Getter:      func(c *Config) any { return c.RootURL },
		Setter:      assign(func(c *Config, v *url.URL) { c.RootURL = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name: "dash_url",
		Description: []string{
			"Location of the dash XML feed, e.g. https://realm.io/docsets/realm.xml",
			"Defaults to root_url joined with docsets/<module_name>.xml",
		},
		Flag:   &schema.FlagSpec{Long: "dash_url", Short: "d", Placeholder: "URL"},
		Parse:  parseURL,
		Getter: func(c *Config) any { return c.DashURL },
		Setter: assign(func(c *Config, v *url.URL) { c.DashURL = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name: "min_acl",
		Description: []string{
			"Minimum access control level to document: private, internal, or public",
			"Unrecognized levels keep the current value",
		},
		Flag:   &schema.FlagSpec{Long: "min-acl", Placeholder: "[private|internal|public]"},
		Parse:  parseMinACL,
		Getter: func(c *Config) any { return c.MinACL },
		Setter: assign(func(c *Config, v AccessLevel) { c.MinACL = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "readme_path",
		Description: []string{"Relative path to a README markdown file rendered as the docs home page"},
		Flag:        &schema.FlagSpec{Long: "readme", Placeholder: "FILEPATH"},
		Parse:       parsePath,
		Getter:      func(c *Config) any { return c.ReadmePath },
		Setter:      assign(func(c *Config, v string) { c.ReadmePath = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "podspec_path",
		Description: []string{"Path to a podspec file whose metadata prefills author, module, and version"},
		Flag:        &schema.FlagSpec{Long: "podspec", Placeholder: "FILEPATH"},
		Parse:       parsePath,
		Getter:      func(c *Config) any { return c.PodspecPath },
		Setter:      assign(func(c *Config, v string) { c.PodspecPath = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "skip_undocumented",
		Description: []string{"Don't document declarations that have no documentation comments"},
		Flag:        &schema.FlagSpec{Long: "skip-undocumented", Boolean: true},
		Parse:       parseBool,
		Getter:      func(c *Config) any { return c.SkipUndocumented },
		Setter:      assign(func(c *Config, v bool) { c.SkipUndocumented = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "swift_version",
		Description: []string{"Swift version to document against"},
		Flag:        &schema.FlagSpec{Long: "swift-version", Placeholder: "VERSION"},
		Getter:      func(c *Config) any { return c.SwiftVersion },
		Setter:      assign(func(c *Config, v string) { c.SwiftVersion = v }),
	})

	// Declaration-only attributes: no CLI flag, settable through a config
	// file mapping.
	r.Register(&schema.Attribute[Config]{
		Name:        "custom_categories",
		Description: []string{"Custom navigation categories mapping a group name to the names it contains"},
		Getter:      func(c *Config) any { return c.CustomCategories },
		Setter:      assign(func(c *Config, v map[string][]string) { c.CustomCategories = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "source_directory",
		Description: []string{"Directory containing the project sources"},
		Parse:       parsePath,
		Getter:      func(c *Config) any { return c.SourceDirectory },
		Setter:      assign(func(c *Config, v string) { c.SourceDirectory = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "template_directory",
		Description: []string{"Directory containing the doc page templates"},
		Parse:       parsePath,
		Getter:      func(c *Config) any { return c.TemplateDirectory },
		Setter:      assign(func(c *Config, v string) { c.TemplateDirectory = v }),
	})
	r.Register(&schema.Attribute[Config]{
		Name:        "assets_directory",
		Description: []string{"Directory containing the static doc page assets"},
		Parse:       parsePath,
		Getter:      func(c *Config) any { return c.AssetsDirectory },
		Setter:      assign(func(c *Config, v string) { c.AssetsDirectory = v }),
	})

	return r
}

// assign adapts a typed store function to the descriptor's untyped setter,
// rejecting parsed values of the wrong type.
func assign[V any](store func(*Config, V)) func(*Config, any) error {
	return func(c *Config, v any) error {
		tv, ok := v.(V)
		if !ok {
			return fmt.Errorf("expected %T, got %T", tv, v)
		}
		store(c, tv)
		return nil
	}
}

func parseBool(raw string) (any, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// parsePath resolves the value to an absolute path.
func parsePath(raw string) (any, error) {
	abs, err := filepath.Abs(raw)
	if err != nil {
		return nil, err
	}
	return abs, nil
}

// parseList splits a comma-separated value.
func parseList(raw string) (any, error) {
	if raw == "" {
		return []string{}, nil
	}
	return strings.Split(raw, ","), nil
}

// parsePathList splits a comma-separated value and resolves every entry to
// an absolute path.
func parsePathList(raw string) (any, error) {
	entries, _ := parseList(raw)
	paths := entries.([]string)
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		paths[i] = abs
	}
	return paths, nil
}

func parseURL(raw string) (any, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("missing scheme in %q", raw)
	}
	return u, nil
}

func parseMinACL(raw string) (any, error) {
	level, ok := ParseAccessLevel(raw)
	if !ok {
		return nil, schema.ErrSkipAssign
	}
	return level, nil
}
