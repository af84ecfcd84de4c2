package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	dnderr "github.com/KirkDiggler/chargen/internal/errors"
)

//go:embed rules.yaml
var defaultRules []byte

type rulesFile struct {
	Features []*Definition `yaml:"features"`
	Skills   []*Definition `yaml:"skills"`
}

// Static is an immutable catalog loaded from a YAML rules file
type Static struct {
	features map[string]*Definition
	skills   map[string]*Definition
}

// Default returns the catalog built from the embedded rules file
func Default() (*Static, error) {
	return Load(bytes.NewReader(defaultRules))
}

// LoadFile reads a YAML rules file from disk
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to open rules file %s", path)
	}
	defer f.Close()

	return Load(f)
}

// Load parses YAML rules
func Load(r io.Reader) (*Static, error) {
	var rules rulesFile
	if err := yaml.NewDecoder(r).Decode(&rules); err != nil {
		return nil, dnderr.Wrap(err, "failed to decode rules")
	}

	s := &Static{
		features: make(map[string]*Definition, len(rules.Features)),
		skills:   make(map[string]*Definition, len(rules.Skills)),
	}

	for _, def := range rules.Features {
		if err := validate(def); err != nil {
			return nil, err
		}
		if def.Category == "" || def.Category == SkillsCategory {
			return nil, dnderr.InvalidArgumentf("feature '%s' needs a feature category", def.Name)
		}
		if _, dup := s.features[def.Name]; dup {
			return nil, dnderr.InvalidArgumentf("feature '%s' defined twice", def.Name)
		}
		s.features[def.Name] = def
	}

	for _, def := range rules.Skills {
		if err := validate(def); err != nil {
			return nil, err
		}
		def.Category = SkillsCategory
		if _, dup := s.skills[def.Name]; dup {
			return nil, dnderr.InvalidArgumentf("skill '%s' defined twice", def.Name)
		}
		s.skills[def.Name] = def
	}

	// grants must point at known skills, otherwise applying them corrupts the sheet
	for _, def := range s.features {
		for _, g := range def.Grants {
			if _, ok := s.skills[g.Skill]; !ok {
				return nil, dnderr.InvalidArgumentf("feature '%s' grants unknown skill '%s'", def.Name, g.Skill)
			}
		}
	}

	return s, nil
}

func validate(def *Definition) error {
	if def == nil || def.Name == "" {
		return dnderr.InvalidArgument("definition without a name")
	}
	if def.Cost < 0 {
		return dnderr.InvalidArgumentf("'%s' has negative cost %d", def.Name, def.Cost)
	}
	return nil
}

// Lookup resolves a feature
func (s *Static) Lookup(name string) (*Definition, error) {
	if def, ok := s.features[name]; ok {
		return def, nil
	}
	return nil, notFound("feature", name, s.features)
}

// LookupSkill resolves a skill
func (s *Static) LookupSkill(name string) (*Definition, error) {
	if def, ok := s.skills[name]; ok {
		return def, nil
	}
	return nil, notFound("skill", name, s.skills)
}

// Candidates lists the features of a category in name order
func (s *Static) Candidates(category string) []*Definition {
	var out []*Definition
	for _, def := range s.features {
		if def.Category == category {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

func notFound(kind, name string, known map[string]*Definition) error {
	err := dnderr.NotFound(fmt.Sprintf("%s '%s' not found", kind, name)).
		WithMeta("name", name)
	if suggestion := closest(name, known); suggestion != "" {
		err.WithMeta("suggestion", suggestion)
	}
	return err
}

// closest returns the known name with the smallest edit distance, provided the
// distance is small enough to be a plausible typo
func closest(name string, known map[string]*Definition) string {
	best := ""
	bestDist := -1
	for candidate := range known {
		d := levenshtein.ComputeDistance(name, candidate)
		if bestDist < 0 || d < bestDist || (d == bestDist && candidate < best) {
			best, bestDist = candidate, d
		}
	}

	limit := len(name) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}
