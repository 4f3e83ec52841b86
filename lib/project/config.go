// Package project loads and writes the .provsniff.yaml project file.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vyPal/provsniff/lib/rules/providers"
	"github.com/vyPal/provsniff/util"
	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"
)

const FileName = ".provsniff.yaml"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Requires  string                `yaml:"requires,omitempty"`
	Include   []string              `yaml:"include"`
	Exclude   []string              `yaml:"exclude"`
	Jobs      int                   `yaml:"jobs"`
	Cache     CacheConfig           `yaml:"cache"`
	Rules     map[string]RuleConfig `yaml:"rules"`
	Providers providers.Names       `yaml:"providers"`
	Models    ModelsConfig          `yaml:"models"`
}

type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Size    int    `yaml:"size"`
}

// RuleConfig toggles a rule. A nil Enabled leaves the rule on.
type RuleConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Severity string `yaml:"severity,omitempty"`
}

func (r RuleConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

type ModelsConfig struct {
	GuardedProperty string `yaml:"guardedProperty"`
}

func (c *Config) CreateDefault() {
	c.Include = []string{"*.php"}
	c.Exclude = []string{"vendor/**", "node_modules/**", "storage/**", "bootstrap/cache/**"}
	c.Jobs = 0
	c.Cache = CacheConfig{Enabled: true, Dir: ".provsniff-cache", Size: 4096}
	c.Rules = map[string]RuleConfig{}
	c.Providers = providers.DefaultNames()
	c.Models = ModelsConfig{GuardedProperty: "$guarded"}
}

// Default returns the configuration used when no project file exists.
func Default() Config {
	var c Config
	c.CreateDefault()
	return c
}

// Save writes c to filepath. An existing file is only replaced when overwrite
// is set or prompt confirms it; the returned bool reports whether c was written.
func (c *Config) Save(filepath string, overwrite bool, prompt *util.Prompter) (bool, error) {
	if _, err := os.Stat(filepath); !os.IsNotExist(err) {
		if !overwrite {
			if prompt == nil {
				return false, nil
			}
			ok, err := prompt.PromptYN(filepath+" already exists. Overwrite?", false)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return false, err
	}

	if err := os.WriteFile(filepath, yml, 0644); err != nil {
		return false, err
	}

	return true, nil
}

// Load reads the project file at path. Fields missing from the file keep
// their defaults.
func Load(path string) (Config, error) {
	conf := Default()

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&conf); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, path, err)
	}

	if err := conf.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return conf, nil
}

// Find looks for the project file in dir and its parents.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative", ErrInvalidConfig)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("%w: cache.size must not be negative", ErrInvalidConfig)
	}
	for name, rc := range c.Rules {
		switch rc.Severity {
		case "", "error", "warning":
		default:
			return fmt.Errorf("%w: rule %s: unknown severity %q", ErrInvalidConfig, name, rc.Severity)
		}
	}

	p := c.Providers
	for field, v := range map[string]string{
		"providers.baseClass":           p.BaseClass,
		"providers.deferrableInterface": p.DeferrableInterface,
		"providers.deferProperty":       p.DeferProperty,
		"providers.bindingsProperty":    p.BindingsProperty,
		"providers.providesMethod":      p.ProvidesMethod,
	} {
		if v == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, field)
		}
	}

	if c.Requires != "" {
		if _, err := util.Parse(trimConstraint(c.Requires)); err != nil {
			return fmt.Errorf("%w: requires: %s", ErrInvalidConfig, err)
		}
	}
	return nil
}

// CheckRequires reports an error when version does not satisfy c.Requires.
func (c *Config) CheckRequires(version string) error {
	if c.Requires == "" {
		return nil
	}
	v, err := util.Parse(version)
	if err != nil {
		return err
	}
	ok, err := v.Satisfies(c.Requires)
	if err != nil {
		return fmt.Errorf("%w: requires: %s", ErrInvalidConfig, err)
	}
	if !ok {
		return fmt.Errorf("%w: project requires provsniff %s, running %s", ErrInvalidConfig, c.Requires, version)
	}
	return nil
}

func trimConstraint(s string) string {
	for _, prefix := range []string{">=", "<=", "~", "^", ">", "<"} {
		if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
			return s[len(prefix):]
		}
	}
	return s
}

// Fingerprint hashes the settings that change what rules report.
func (c *Config) Fingerprint() uint64 {
	b, err := yaml.Marshal(struct {
		Rules     map[string]RuleConfig
		Providers providers.Names
		Models    ModelsConfig
	}{c.Rules, c.Providers, c.Models})
	if err != nil {
		return 0
	}
	return xxh3.Hash(b)
}
