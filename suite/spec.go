// Package suite runs collections of Brewin programs against expected
// output, expected errors and Starlark properties.
package suite

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/brewin-lang/brewin/vm"
)

type Suite struct {
	Suite SuiteDetails    `toml:"suite" yaml:"suite"`
	Cases map[string]Case `toml:"cases" yaml:"cases"`

	// Path is the file the suite was loaded from, if any.
	Path string `toml:"-" yaml:"-"`
}

type SuiteDetails struct {
	Version int    `toml:"version,omitempty" yaml:"version,omitempty"`
	Dir     string `toml:"dir,omitempty" yaml:"dir,omitempty"`
}

// Case is a single program run. Either File or Source gives the program.
// Output is only checked when set; Error names the expected fatal error
// category ("name", "type", "fault" or "syntax").
type Case struct {
	File     string   `toml:"file,omitempty" yaml:"file,omitempty"`
	Source   string   `toml:"source,omitempty" yaml:"source,omitempty"`
	Input    []string `toml:"input,omitempty" yaml:"input,omitempty"`
	Output   []string `toml:"output" yaml:"output"`
	Error    string   `toml:"error,omitempty" yaml:"error,omitempty"`
	Property string   `toml:"property,omitempty" yaml:"property,omitempty"`
	Version  int      `toml:"version,omitempty" yaml:"version,omitempty"`
}

type Format int

const (
	TOML Format = iota
	YAML
)

func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return TOML
}

func parseSuite(r io.Reader, format Format) (*Suite, error) {
	var out Suite
	switch format {
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&out); err != nil && err != io.EOF {
			return nil, err
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(&out); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

func LoadSuiteFromFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := parseSuite(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("Parsing suite %s: %w", path, err)
	}
	s.Path = path
	s.Suite.Dir = filepath.Clean(filepath.Join(filepath.Dir(path), s.Suite.Dir))
	return s, nil
}

// Name is the suite file's base name without extension.
func (s *Suite) Name() string {
	if s.Path == "" {
		return "suite"
	}
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CaseNames returns the case names in sorted order.
func (s *Suite) CaseNames() []string {
	names := make([]string, 0, len(s.Cases))
	for name := range s.Cases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// version picks the case's version, then the suite's, then v4.
func (s *Suite) version(c *Case) (vm.Version, error) {
	n := c.Version
	if n == 0 {
		n = s.Suite.Version
	}
	if n == 0 {
		return vm.V4, nil
	}
	return vm.ParseVersion(strconv.Itoa(n))
}

func (s *Suite) source(c *Case) (string, error) {
	switch {
	case c.Source != "" && c.File != "":
		return "", fmt.Errorf("Case sets both file and source")
	case c.Source != "":
		return c.Source, nil
	case c.File != "":
		path := c.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.Suite.Dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("Case has neither file nor source")
}
