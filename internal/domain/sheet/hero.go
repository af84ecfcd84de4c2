// Package sheet holds the character being built: feature categories, skills and
// the bookkeeping the point accounting depends on.
package sheet

import (
	"encoding/json"
	"sort"
)

// Hero is the character sheet under construction
type Hero struct {
	categories     map[string]*Category
	skills         map[string]*Skill
	primaryThrough string
}

// NewHero creates an empty hero
func NewHero() *Hero {
	return &Hero{
		categories: make(map[string]*Category),
		skills:     make(map[string]*Skill),
	}
}

// Category returns the named category, creating it if it does not exist yet
func (h *Hero) Category(name string) *Category {
	c, ok := h.categories[name]
	if !ok {
		c = newCategory(name)
		h.categories[name] = c
	}
	return c
}

// FindCategory returns the named category without creating it
func (h *Hero) FindCategory(name string) (*Category, bool) {
	c, ok := h.categories[name]
	return c, ok
}

// CategoryNames returns the names of all categories present
func (h *Hero) CategoryNames() []string {
	names := make([]string, 0, len(h.categories))
	for name := range h.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Skill returns the named skill, creating an unrated one if needed
func (h *Hero) Skill(name string) *Skill {
	s, ok := h.skills[name]
	if !ok {
		s = &Skill{}
		h.skills[name] = s
	}
	return s
}

// HasSkill reports whether the hero has a record for the skill
func (h *Hero) HasSkill(name string) bool {
	_, ok := h.skills[name]
	return ok
}

// PruneSkill drops the skill if it carries nothing: unrated, not primary and
// without bookkeeping. It reports whether the skill was dropped.
func (h *Hero) PruneSkill(name string) bool {
	s, ok := h.skills[name]
	if !ok || *s != (Skill{}) {
		return false
	}
	delete(h.skills, name)
	return true
}

// SkillNames returns the names of all skills present
func (h *Hero) SkillNames() []string {
	names := make([]string, 0, len(h.skills))
	for name := range h.skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrimaryThrough returns the skill currently holding primary status, or ""
func (h *Hero) PrimaryThrough() string {
	return h.primaryThrough
}

// ClaimPrimary makes skill the primary holder if nobody holds it yet.
// It reports whether the claim succeeded.
func (h *Hero) ClaimPrimary(skill string) bool {
	if h.primaryThrough != "" {
		return false
	}
	h.primaryThrough = skill
	return true
}

// ReleasePrimary clears the primary holder if it is skill.
// It reports whether the reference was cleared.
func (h *Hero) ReleasePrimary(skill string) bool {
	if h.primaryThrough != skill {
		return false
	}
	h.primaryThrough = ""
	return true
}

// StripEphemeral removes session-only state: pool maxima, per-record
// bookkeeping, the primary back-reference and skills that were never rated.
func (h *Hero) StripEphemeral() {
	for _, c := range h.categories {
		c.strip()
	}
	for name, s := range h.skills {
		if !s.Rating.IsSet() {
			delete(h.skills, name)
			continue
		}
		s.Temporary = Ephemeral{}
	}
	h.primaryThrough = ""
}

type heroData struct {
	Categories     map[string]categoryData `json:"categories"`
	Skills         map[string]*Skill       `json:"skills"`
	PrimaryThrough string                  `json:"primary_through,omitempty"`
}

// MarshalJSON encodes the hero
func (h *Hero) MarshalJSON() ([]byte, error) {
	data := heroData{
		Categories:     make(map[string]categoryData, len(h.categories)),
		Skills:         h.skills,
		PrimaryThrough: h.primaryThrough,
	}
	for name, c := range h.categories {
		data.Categories[name] = categoryData{Pool: c.pool, Entries: c.entries}
	}
	return json.Marshal(data)
}

// UnmarshalJSON decodes a hero written by MarshalJSON
func (h *Hero) UnmarshalJSON(raw []byte) error {
	var data heroData
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}

	*h = *NewHero()
	h.primaryThrough = data.PrimaryThrough
	for name, s := range data.Skills {
		if s == nil {
			s = &Skill{}
		}
		h.skills[name] = s
	}
	for name, cd := range data.Categories {
		c := newCategory(name)
		c.pool = cd.Pool
		for feature, e := range cd.Entries {
			c.entries[feature] = e
		}
		h.categories[name] = c
	}
	return nil
}
