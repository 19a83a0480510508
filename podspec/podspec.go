// Package podspec discovers and reads CocoaPods-style project metadata
// files. Only the handful of fields that prefill a docsmith configuration
// are extracted; everything else in the file is ignored.
package podspec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Metadata is the subset of podspec fields docsmith cares about.
type Metadata struct {
	Name    string
	Version string
	Authors []string
}

// Find globs dir for a podspec file. JSON podspecs win over Ruby ones;
// within a format the lexically first match wins. Returns "" when the
// directory has no podspec, which is not an error.
func Find(dir string) (string, error) {
	jsonMatches, err := filepath.Glob(filepath.Join(dir, "*.podspec.json"))
	if err != nil {
		return "", fmt.Errorf("glob podspec: %w", err)
	}
	rubyMatches, err := filepath.Glob(filepath.Join(dir, "*.podspec"))
	if err != nil {
		return "", fmt.Errorf("glob podspec: %w", err)
	}
	sort.Strings(jsonMatches)
	sort.Strings(rubyMatches)
	if len(jsonMatches) > 0 {
		return jsonMatches[0], nil
	}
	if len(rubyMatches) > 0 {
		return rubyMatches[0], nil
	}
	return "", nil
}

// Load reads the file at path and parses it.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read podspec: %w", err)
	}
	return Parse(data, strings.HasSuffix(path, ".json"))
}

// Parse extracts metadata from podspec contents. JSON podspecs are decoded
// directly; Ruby podspecs get a best-effort attribute scan, since evaluating
// the Ruby DSL is out of the question here.
func Parse(data []byte, isJSON bool) (*Metadata, error) {
	if isJSON {
		return parseJSON(data)
	}
	return parseRuby(data)
}

func parseJSON(data []byte) (*Metadata, error) {
	var spec struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Authors any    `json:"authors"`
	}
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse podspec: %w", err)
	}

	md := &Metadata{Name: spec.Name, Version: spec.Version}
	switch authors := spec.Authors.(type) {
	case string:
		md.Authors = []string{authors}
	case []any:
		for _, a := range authors {
			if s, ok := a.(string); ok {
				md.Authors = append(md.Authors, s)
			}
		}
	case map[string]any:
		for name := range authors {
			md.Authors = append(md.Authors, name)
		}
		sort.Strings(md.Authors)
	}
	return md, nil
}

var (
	rubyNameRe    = regexp.MustCompile(`\.\s*name\s*=\s*['"]([^'"]+)['"]`)
	rubyVersionRe = regexp.MustCompile(`\.\s*version\s*=\s*['"]([^'"]+)['"]`)
	rubyAuthorRe  = regexp.MustCompile(`\.\s*authors?\s*=\s*(.+)`)
	quotedRe      = regexp.MustCompile(`['"]([^'"]+)['"]`)
)

func parseRuby(data []byte) (*Metadata, error) {
	content := string(data)
	md := &Metadata{}

	if m := rubyNameRe.FindStringSubmatch(content); m != nil {
		md.Name = m[1]
	}
	if m := rubyVersionRe.FindStringSubmatch(content); m != nil {
		md.Version = m[1]
	}
	if m := rubyAuthorRe.FindStringSubmatch(content); m != nil {
		// Authors may be a string, a list, or a name => email hash; take
		// the quoted names in order and skip anything that looks like an
		// email address.
		for _, q := range quotedRe.FindAllStringSubmatch(m[1], -1) {
			if strings.Contains(q[1], "@") {
				continue
			}
			md.Authors = append(md.Authors, q[1])
		}
	}

	if md.Name == "" && md.Version == "" && len(md.Authors) == 0 {
		return nil, fmt.Errorf("parse podspec: no metadata attributes found")
	}
	return md, nil
}
