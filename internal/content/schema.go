// Package content defines the learnable region packs: thematic vocabulary
// units with their cards, loaded from YAML files.
package content

import (
	"fmt"
	"strings"
)

// Card is one two-faced flashcard. Front is the Spanish (target-language)
// text, Back the English gloss. Context, Grammar and Breakdown are optional
// enrichment used by the detail pane and the word annotator.
type Card struct {
	Front     string            `yaml:"front"`
	Back      string            `yaml:"back"`
	Context   string            `yaml:"context,omitempty"`
	Grammar   string            `yaml:"grammar,omitempty"`
	Breakdown map[string]string `yaml:"breakdown,omitempty"`
}

// Region is one topic unit on the map.
type Region struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Emoji    string `yaml:"emoji"`
	Color    string `yaml:"color"`
	Category string `yaml:"category"`
	Cards    []Card `yaml:"cards"`
}

// Category display order and header emojis, mirrored from the map screen.
var CategoryOrder = []string{"Fundamentos", "Situaciones", "Conversación", "Gramática"}

var CategoryEmojis = map[string]string{
	"Fundamentos": "🌟",
	"Situaciones": "🎯",
	"Conversación": "💬",
	"Gramática":   "📚",
}

// CategoryFallback groups regions with an unknown or empty category.
const CategoryFallback = "Otros"

func (r *Region) Validate() error {
	if strings.TrimSpace(r.Key) == "" {
		return fmt.Errorf("region key is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("region %s: name is required", r.Key)
	}
	if len(r.Cards) == 0 {
		return fmt.Errorf("region %s: at least one card is required", r.Key)
	}
	for i, c := range r.Cards {
		if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
			return fmt.Errorf("region %s: card %d needs front and back", r.Key, i)
		}
	}
	if r.Category == "" {
		r.Category = CategoryFallback
	}
	return nil
}

// Registry holds the loaded regions in stable order with key lookup.
type Registry struct {
	regions []Region
	byKey   map[string]int
}

func NewRegistry(regions []Region) (*Registry, error) {
	reg := &Registry{byKey: make(map[string]int, len(regions))}
	for _, r := range regions {
		if _, dup := reg.byKey[r.Key]; dup {
			return nil, fmt.Errorf("duplicate region key %q", r.Key)
		}
		reg.byKey[r.Key] = len(reg.regions)
		reg.regions = append(reg.regions, r)
	}
	return reg, nil
}

// Regions returns all regions in load order.
func (reg *Registry) Regions() []Region {
	return append([]Region(nil), reg.regions...)
}

// Region looks a region up by key.
func (reg *Registry) Region(key string) (Region, bool) {
	idx, ok := reg.byKey[key]
	if !ok {
		return Region{}, false
	}
	return reg.regions[idx], true
}

// FirstKey returns the key of the first loaded region, or "".
func (reg *Registry) FirstKey() string {
	if len(reg.regions) == 0 {
		return ""
	}
	return reg.regions[0].Key
}

func (reg *Registry) Len() int { return len(reg.regions) }
