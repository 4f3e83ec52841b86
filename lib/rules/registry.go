// Package rules builds the configured rule set.
package rules

import (
	"fmt"
	"sort"

	"github.com/vyPal/provsniff/lib/analyzer"
	"github.com/vyPal/provsniff/lib/project"
	"github.com/vyPal/provsniff/lib/rules/models"
	"github.com/vyPal/provsniff/lib/rules/providers"
)

// Info describes a rule for listings.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Codes       []string `json:"codes"`
}

type entry struct {
	info  Info
	build func(cfg *project.Config) analyzer.Rule
}

var registry = []entry{
	{
		info: Info{
			Name:        providers.Name,
			Description: "Deferred service providers must list exactly the classes they bind in provides()",
			Codes:       []string{providers.CodeUnboundInProvides, providers.CodeBoundNotInProvides},
		},
		build: func(cfg *project.Config) analyzer.Rule { return providers.New(cfg.Providers) },
	},
	{
		info: Info{
			Name:        models.Name,
			Description: "Models must not declare a protected $guarded property",
			Codes:       []string{models.CodeGuardedAttributes},
		},
		build: func(cfg *project.Config) analyzer.Rule { return models.New(cfg.Models.GuardedProperty) },
	},
}

// Catalog lists every known rule sorted by name.
func Catalog() []Info {
	out := make([]Info, len(registry))
	for i, e := range registry {
		out[i] = e.info
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func known(name string) bool {
	for _, e := range registry {
		if e.info.Name == name {
			return true
		}
	}
	return false
}

// New returns an analyzer holding fresh instances of the enabled rules. When
// only is non-empty, rules not named in it are left out.
func New(cfg *project.Config, only ...string) (*analyzer.Analyzer, error) {
	for name := range cfg.Rules {
		if !known(name) {
			return nil, fmt.Errorf("%w: unknown rule %q", project.ErrInvalidConfig, name)
		}
	}
	filter := make(map[string]bool, len(only))
	for _, name := range only {
		if !known(name) {
			return nil, fmt.Errorf("%w: unknown rule %q", project.ErrInvalidConfig, name)
		}
		filter[name] = true
	}

	var enabled []analyzer.Rule
	severity := make(map[string]analyzer.Severity)
	for _, e := range registry {
		name := e.info.Name
		rc := cfg.Rules[name]
		if !rc.IsEnabled() || (len(filter) > 0 && !filter[name]) {
			continue
		}
		enabled = append(enabled, e.build(cfg))
		if rc.Severity != "" {
			severity[name] = analyzer.Severity(rc.Severity)
		}
	}

	a := analyzer.New(enabled...)
	for name, sev := range severity {
		a.SetSeverity(name, sev)
	}
	return a, nil
}
