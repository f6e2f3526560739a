// Package catalog holds the static achievement and habit template tables.
// They are parsed once at startup and are read-only afterwards, so a single
// *Catalog can be shared by every request.
package catalog

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/habithub/habithub-api/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed achievements.yaml templates.yaml
var files embed.FS

type Catalog struct {
	achievements []models.Achievement
	byKey        map[string]int
	templates    []models.HabitTemplate
	templateByID map[string]int
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	achievements, err := files.ReadFile("achievements.yaml")
	if err != nil {
		return nil, err
	}
	templates, err := files.ReadFile("templates.yaml")
	if err != nil {
		return nil, err
	}
	return Parse(achievements, templates)
}

func Parse(achievementsYAML, templatesYAML []byte) (*Catalog, error) {
	var achievements []models.Achievement
	if err := yaml.Unmarshal(achievementsYAML, &achievements); err != nil {
		return nil, fmt.Errorf("parse achievements: %w", err)
	}
	var templates []models.HabitTemplate
	if err := yaml.Unmarshal(templatesYAML, &templates); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return New(achievements, templates)
}

// New validates and indexes the given entries. The slices are copied.
func New(achievements []models.Achievement, templates []models.HabitTemplate) (*Catalog, error) {
	c := &Catalog{
		achievements: append([]models.Achievement(nil), achievements...),
		byKey:        make(map[string]int, len(achievements)),
		templates:    make([]models.HabitTemplate, 0, len(templates)),
		templateByID: make(map[string]int, len(templates)),
	}

	sort.SliceStable(c.achievements, func(i, j int) bool {
		return c.achievements[i].Order < c.achievements[j].Order
	})
	for i, a := range c.achievements {
		if a.Key == "" {
			return nil, fmt.Errorf("achievement %q has no key", a.Name)
		}
		if _, dup := c.byKey[a.Key]; dup {
			return nil, fmt.Errorf("duplicate achievement key %q", a.Key)
		}
		if a.XPReward < 0 {
			return nil, fmt.Errorf("achievement %q has negative xp reward", a.Key)
		}
		if a.Rarity == "" {
			c.achievements[i].Rarity = models.RarityCommon
		} else if !a.Rarity.Valid() {
			return nil, fmt.Errorf("achievement %q has unknown rarity %q", a.Key, a.Rarity)
		}
		c.byKey[a.Key] = i
	}

	for _, t := range templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %q has no id", t.Name)
		}
		if _, dup := c.templateByID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		if t.Frequency == "" {
			t.Frequency = models.FrequencyDaily
		}
		if !t.Frequency.Valid() {
			return nil, fmt.Errorf("template %q has invalid frequency %q", t.ID, t.Frequency)
		}
		if t.TargetCount < 1 {
			t.TargetCount = 1
		}
		t.Tags = append([]string(nil), t.Tags...)
		c.templateByID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t)
	}

	return c, nil
}

// Achievements returns a copy of the catalog in display order.
func (c *Catalog) Achievements() []models.Achievement {
	return append([]models.Achievement(nil), c.achievements...)
}

func (c *Catalog) Achievement(key string) (models.Achievement, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return models.Achievement{}, false
	}
	return c.achievements[i], true
}

// Templates returns templates, optionally filtered by category
// (case-insensitive). Featured templates come first.
func (c *Catalog) Templates(category string) []models.HabitTemplate {
	out := make([]models.HabitTemplate, 0, len(c.templates))
	for _, t := range c.templates {
		if category != "" && !strings.EqualFold(t.Category, category) {
			continue
		}
		out = append(out, copyTemplate(t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Featured && !out[j].Featured
	})
	return out
}

func (c *Catalog) Template(id string) (models.HabitTemplate, bool) {
	i, ok := c.templateByID[id]
	if !ok {
		return models.HabitTemplate{}, false
	}
	return copyTemplate(c.templates[i]), true
}

func copyTemplate(t models.HabitTemplate) models.HabitTemplate {
	t.Tags = append([]string(nil), t.Tags...)
	return t
}
