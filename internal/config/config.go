// Package config loads the project manifest (veryl.yaml) and writes the
// file-list artifact spec.md §6 calls the CLI driver's only persisted
// output besides translated sources. Grounded on original_source's
// veryl_metadata crate (a Metadata struct with project/build sections, a
// FilelistType enum of Absolute/Relative/Flgen) and on the teacher's own
// yaml.v3 usage in internal/evaluator/builtins_yaml.go, the only place in
// the pack that actually decodes YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilelistMode selects one of the three file-list syntaxes spec.md §6
// names.
type FilelistMode string

const (
	FilelistAbsolute FilelistMode = "absolute"
	FilelistRelative FilelistMode = "relative"
	FilelistFlgen    FilelistMode = "flgen" // source_file '<relative>'
)

// Project is the `project:` section of veryl.yaml.
type Project struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Build is the `build:` section of veryl.yaml.
type Build struct {
	FilelistType FilelistMode `yaml:"filelist_type"`
	ClockType    string       `yaml:"clock_type"`
	ResetType    string       `yaml:"reset_type"`
}

// Config is the parsed form of a project's veryl.yaml.
type Config struct {
	Project Project `yaml:"project"`
	Build   Build   `yaml:"build"`

	// path is the manifest's own location, used to resolve the file-list
	// output and relative-path computations next to it.
	path string
}

// Default returns a Config with the teacher-observed defaults: relative
// file lists, posedge clocks, async-low resets.
func Default() *Config {
	return &Config{
		Build: Build{FilelistType: FilelistRelative, ClockType: "posedge", ResetType: "async_low"},
	}
}

// Load reads and parses a veryl.yaml manifest at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.path = path
	if cfg.Build.FilelistType == "" {
		cfg.Build.FilelistType = FilelistRelative
	}
	return cfg, nil
}

// filelistName is `<project>.f` for absolute/relative lists and
// `<project>.list.rb` for the external-generator syntax, matching
// cmd_build.rs's gen_filelist naming.
func (c *Config) filelistName() string {
	if c.Build.FilelistType == FilelistFlgen {
		return c.Project.Name + ".list.rb"
	}
	return c.Project.Name + ".f"
}

// WriteFilelist writes the given file paths (the CLI's build command passes
// the analyzed source files) to the project's file-list artifact, in whichever of the three modes
// Build.FilelistType selects (spec.md §6).
func (c *Config) WriteFilelist(outputs []string) error {
	base := filepath.Dir(c.path)
	var b strings.Builder
	for _, out := range outputs {
		abs, err := filepath.Abs(out)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", out, err)
		}
		switch c.Build.FilelistType {
		case FilelistAbsolute:
			fmt.Fprintf(&b, "%s\n", abs)
		case FilelistFlgen:
			rel, err := filepath.Rel(base, abs)
			if err != nil {
				return fmt.Errorf("relativizing %s: %w", out, err)
			}
			fmt.Fprintf(&b, "source_file '%s'\n", rel)
		default: // FilelistRelative
			rel, err := filepath.Rel(base, abs)
			if err != nil {
				return fmt.Errorf("relativizing %s: %w", out, err)
			}
			fmt.Fprintf(&b, "%s\n", rel)
		}
	}
	return os.WriteFile(filepath.Join(base, c.filelistName()), []byte(b.String()), 0o644)
}
