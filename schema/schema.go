package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// SCHEMA — Logical features and the header aliases that realize them
// ============================================================================
// A Feature is a named category to aggregate on (OCCUPATIONS, STATES) or the
// STATUS pseudo-feature used only for filtering. Different yearly exports
// spell the same column differently, so each feature carries a set of
// accepted header names.
// ============================================================================

// StatusFeature is the mandatory filtering pseudo-feature.
const StatusFeature = "STATUS"

// Feature describes one logical feature and its accepted header aliases.
type Feature struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases" yaml:"aliases"`
}

// IsStatus reports whether f is the STATUS pseudo-feature.
func (f Feature) IsStatus() bool { return f.Name == StatusFeature }

// Registry is the ordered set of features requested for a run.
// Order drives report order; STATUS may sit anywhere.
type Registry struct {
	Features []Feature `json:"features" yaml:"features"`
}

// DefaultRegistry returns the features the H-1B exports are counted on.
func DefaultRegistry() Registry {
	return Registry{Features: []Feature{
		{Name: StatusFeature, Aliases: []string{"STATUS", "CASE_STATUS"}},
		{Name: "OCCUPATIONS", Aliases: []string{"LCA_CASE_SOC_NAME", "SOC_NAME"}},
		{Name: "STATES", Aliases: []string{"LCA_CASE_EMPLOYER_STATE", "WORKSITE_STATE"}},
	}}
}

// Register appends a feature, replacing any existing feature with the same name.
func (r *Registry) Register(f Feature) {
	for i, existing := range r.Features {
		if existing.Name == f.Name {
			r.Features[i] = f
			return
		}
	}
	r.Features = append(r.Features, f)
}

// Status returns the STATUS feature.
func (r Registry) Status() (Feature, bool) {
	for _, f := range r.Features {
		if f.IsStatus() {
			return f, true
		}
	}
	return Feature{}, false
}

// Counted returns every feature other than STATUS, in registry order.
func (r Registry) Counted() []Feature {
	out := make([]Feature, 0, len(r.Features))
	for _, f := range r.Features {
		if !f.IsStatus() {
			out = append(out, f)
		}
	}
	return out
}

// Names returns the counted feature names in registry order.
func (r Registry) Names() []string {
	counted := r.Counted()
	names := make([]string, len(counted))
	for i, f := range counted {
		names[i] = f.Name
	}
	return names
}

// Validate checks the registry is usable for a run.
func (r Registry) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(r.Features))
	for i, f := range r.Features {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("feature #%d has no name", i+1))
			continue
		}
		if seen[f.Name] {
			errs = append(errs, fmt.Errorf("feature %s is declared more than once", f.Name))
		}
		seen[f.Name] = true
		if len(f.Aliases) == 0 {
			errs = append(errs, fmt.Errorf("feature %s has no header aliases", f.Name))
		}
		for _, a := range f.Aliases {
			if a == "" {
				errs = append(errs, fmt.Errorf("feature %s has an empty header alias", f.Name))
			}
		}
	}
	if _, ok := r.Status(); !ok {
		errs = append(errs, fmt.Errorf("feature %s is mandatory", StatusFeature))
	}
	if len(r.Counted()) == 0 {
		errs = append(errs, errors.New("at least one feature besides STATUS is required"))
	}
	return errors.Join(errs...)
}

// ParseRegistry decodes a features document. JSON is accepted as well,
// being a subset of YAML.
func ParseRegistry(data []byte) (Registry, error) {
	var r Registry
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Registry{}, fmt.Errorf("failed to parse features: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Registry{}, fmt.Errorf("invalid features: %w", err)
	}
	return r, nil
}

// LoadRegistry reads a features file. An empty path yields DefaultRegistry.
func LoadRegistry(fs afero.Fs, path string) (Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Registry{}, fmt.Errorf("failed to read features file: %w", err)
	}
	r, err := ParseRegistry(data)
	if err != nil {
		return Registry{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
