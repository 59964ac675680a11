package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for dsa
type Config struct {
	TestsDir string            `yaml:"tests_dir"`
	Colour   string            `yaml:"colour"`
	Strict   bool              `yaml:"strict"`
	Aliases  map[string]string `yaml:"aliases"`
	Trace    TraceConfig       `yaml:"trace"`
	Stub     StubConfig        `yaml:"stub"`
	Dev      DevConfig         `yaml:"dev"`
}

// TraceConfig controls the per-case trace
type TraceConfig struct {
	// MaxInputWidth truncates the input column; 0 leaves it whole.
	MaxInputWidth int `yaml:"max_input_width"`
}

// StubConfig controls solution stubs written by `dsa new`. Dir is where
// stubs go when -o is not given; empty means stdout.
type StubConfig struct {
	Package        string `yaml:"package"`
	Dir            string `yaml:"dir"`
	DefaultElement string `yaml:"default_element"`
	Format         bool   `yaml:"format"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

var (
	colourModes     = []string{"auto", "always", "never"}
	elementKinds    = []string{"int", "float64", "float", "string", "bool"}
	configFileNames = []string{".dsa.yml", ".dsa.yaml", "dsa.yml", "dsa.yaml"}
)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		TestsDir: "tests",
		Colour:   "auto",
		Strict:   false,
		Aliases: map[string]string{
			"cf": "codeforces",
		},
		Trace: TraceConfig{
			MaxInputWidth: 0,
		},
		Stub: StubConfig{
			Package:        "solutions",
			DefaultElement: "int",
			Format:         true,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks enumerated and numeric settings
func (c *Config) Validate() error {
	if !contains(colourModes, strings.ToLower(c.Colour)) {
		return fmt.Errorf("colour must be one of %s, got %q", strings.Join(colourModes, ", "), c.Colour)
	}
	if c.Trace.MaxInputWidth < 0 {
		return fmt.Errorf("trace.max_input_width must not be negative, got %d", c.Trace.MaxInputWidth)
	}
	if !contains(elementKinds, c.Stub.DefaultElement) {
		return fmt.Errorf("stub.default_element must be one of %s, got %q", strings.Join(elementKinds, ", "), c.Stub.DefaultElement)
	}
	if c.TestsDir == "" {
		return fmt.Errorf("tests_dir must not be empty")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configFileNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// ResolveCategory maps an alias such as "cf" to its category and
// lower-cases everything else.
func (c *Config) ResolveCategory(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := c.Aliases[name]; ok {
		return target
	}
	return name
}

// SolutionName normalises a user-supplied name to an exported Go
// identifier, e.g. "is-unique" to "IsUnique".
func (c *Config) SolutionName(name string) string {
	return strcase.ToCamel(name)
}

// FixturePath returns tests_dir/<category>/<name>.json
func (c *Config) FixturePath(category, name string) string {
	return filepath.Join(c.TestsDir, c.ResolveCategory(category), c.SolutionName(name)+".json")
}

// StubPath returns stub.dir/<category>_<name>.go, or "" when stubs are
// written to stdout.
func (c *Config) StubPath(category, name string) string {
	if c.Stub.Dir == "" {
		return ""
	}
	file := c.ResolveCategory(category) + "_" + strcase.ToSnake(c.SolutionName(name)) + ".go"
	return filepath.Join(c.Stub.Dir, file)
}

// MergeConfigs merges CLI overrides into a base config
// Non-empty values from override take precedence over base values
func MergeConfigs(base, override *Config) *Config {
	merged := *base

	if override.TestsDir != "" {
		merged.TestsDir = override.TestsDir
	}
	if override.Colour != "" {
		merged.Colour = override.Colour
	}
	if override.Trace.MaxInputWidth > 0 {
		merged.Trace.MaxInputWidth = override.Trace.MaxInputWidth
	}
	if override.Stub.Package != "" {
		merged.Stub.Package = override.Stub.Package
	}

	// Booleans can only be switched on from the command line
	merged.Strict = base.Strict || override.Strict
	merged.Dev.Debug = base.Dev.Debug || override.Dev.Debug

	merged.Aliases = make(map[string]string, len(base.Aliases)+len(override.Aliases))
	for k, v := range base.Aliases {
		merged.Aliases[k] = v
	}
	for k, v := range override.Aliases {
		merged.Aliases[k] = v
	}

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence. An empty
// configPath falls back to FindConfigFile; when nothing is found the
// defaults are used.
func LoadConfigWithCLI(configPath, cliColour string, cliStrict, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	override := &Config{
		Colour: cliColour,
		Strict: cliStrict,
		Dev:    DevConfig{Debug: cliDebug},
	}
	cfg = MergeConfigs(cfg, override)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
