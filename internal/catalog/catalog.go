// Package catalog is the immutable goal-metadata lookup table: categories,
// difficulty multipliers, clinical-evidence tags and the conflict patterns
// defined over goal combinations. The engine reads it, never writes it.
package catalog

import (
	"fmt"

	"github.com/lucbaten/attune/internal/domain"
)

// Goal is one catalog entry.
type Goal struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Category   string   `yaml:"category"`
	Difficulty float64  `yaml:"difficulty"` // outcome multiplier, 1.0 = neutral
	Evidence   []string `yaml:"evidence"`
}

// Pattern is one known mutually-risky goal combination. A pattern fires when
// at least MinSelected of its member goals appear in a selection.
type Pattern struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Goals          []string `yaml:"goals"`
	MinSelected    int      `yaml:"min_selected"`
	BaseSeverity   float64  `yaml:"base_severity"`
	AutoResolvable bool     `yaml:"auto_resolvable"`

	Strategies []domain.ResolutionStrategy `yaml:"strategies"`
}

// Catalog bundles the goal table with the conflict patterns defined over it.
type Catalog struct {
	Goals    []Goal    `yaml:"goals"`
	Patterns []Pattern `yaml:"patterns"`

	byID map[string]int
}

// Validate checks internal consistency: unique goal ids and patterns whose
// members exist in the table.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Goals))
	for _, g := range c.Goals {
		if g.ID == "" {
			return fmt.Errorf("catalog goal with empty id")
		}
		if seen[g.ID] {
			return fmt.Errorf("duplicate catalog goal %q", g.ID)
		}
		seen[g.ID] = true
	}
	for _, p := range c.Patterns {
		if p.MinSelected < 2 {
			return fmt.Errorf("pattern %q: min_selected must be at least 2", p.Name)
		}
		if len(p.Goals) < p.MinSelected {
			return fmt.Errorf("pattern %q: fewer member goals than min_selected", p.Name)
		}
		for _, id := range p.Goals {
			if !seen[id] {
				return fmt.Errorf("pattern %q references unknown goal %q", p.Name, id)
			}
		}
	}
	return nil
}

func (c *Catalog) index() {
	c.byID = make(map[string]int, len(c.Goals))
	for i, g := range c.Goals {
		c.byID[g.ID] = i
	}
}

// Lookup returns the goal entry for an id.
func (c *Catalog) Lookup(id string) (Goal, bool) {
	if c.byID == nil {
		c.index()
	}
	i, ok := c.byID[id]
	if !ok {
		return Goal{}, false
	}
	return c.Goals[i], true
}

// Difficulty returns the goal's outcome multiplier, neutral for unknown ids.
func (c *Catalog) Difficulty(id string) float64 {
	g, ok := c.Lookup(id)
	if !ok || g.Difficulty <= 0 {
		return 1.0
	}
	return g.Difficulty
}

// Known reports whether the id exists in the table.
func (c *Catalog) Known(id string) bool {
	_, ok := c.Lookup(id)
	return ok
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c := &Catalog{
		Goals: []Goal{
			{ID: "anxiety-management", Title: "Anxiety management", Category: "emotional-regulation", Difficulty: 1.0, Evidence: []string{"CBT"}},
			{ID: "panic-reduction", Title: "Panic reduction", Category: "emotional-regulation", Difficulty: 0.85, Evidence: []string{"interoceptive-exposure", "CBT"}},
			{ID: "worry-reduction", Title: "Worry reduction", Category: "cognitive-patterns", Difficulty: 1.0, Evidence: []string{"CBT"}},
			{ID: "stress-reduction", Title: "Stress reduction", Category: "emotional-regulation", Difficulty: 1.05, Evidence: []string{"MBSR"}},
			{ID: "social-confidence", Title: "Social confidence", Category: "interpersonal", Difficulty: 0.9, Evidence: []string{"exposure", "CBT"}},
			{ID: "depression-recovery", Title: "Depression recovery", Category: "mood", Difficulty: 0.9, Evidence: []string{"behavioral-activation", "CBT"}},
			{ID: "grief-processing", Title: "Grief processing", Category: "mood", Difficulty: 0.8, Evidence: []string{"grief-counseling"}},
			{ID: "anger-management", Title: "Anger management", Category: "emotional-regulation", Difficulty: 0.95, Evidence: []string{"CBT"}},
			{ID: "perfectionism", Title: "Loosening perfectionism", Category: "cognitive-patterns", Difficulty: 0.85, Evidence: []string{"CBT"}},
			{ID: "high-achievement", Title: "High achievement", Category: "performance", Difficulty: 0.9, Evidence: []string{"goal-setting"}},
			{ID: "performance-optimization", Title: "Performance optimization", Category: "performance", Difficulty: 0.95, Evidence: []string{"goal-setting"}},
			{ID: "self-compassion", Title: "Self-compassion", Category: "self-relation", Difficulty: 1.1, Evidence: []string{"CFT"}},
			{ID: "emotional-awareness", Title: "Emotional awareness", Category: "self-relation", Difficulty: 1.15, Evidence: []string{"DBT"}},
			{ID: "mindfulness-practice", Title: "Mindfulness practice", Category: "self-relation", Difficulty: 1.15, Evidence: []string{"MBSR"}},
			{ID: "sleep-improvement", Title: "Sleep improvement", Category: "behavioral-health", Difficulty: 1.1, Evidence: []string{"CBT-I"}},
			{ID: "habit-building", Title: "Habit building", Category: "behavioral-health", Difficulty: 1.2, Evidence: []string{"behavioral-activation"}},
			{ID: "self-care-routine", Title: "Self-care routine", Category: "behavioral-health", Difficulty: 1.2, Evidence: []string{"behavioral-activation"}},
			{ID: "relationship-skills", Title: "Relationship skills", Category: "interpersonal", Difficulty: 0.95, Evidence: []string{"DBT"}},
			{ID: "boundary-setting", Title: "Boundary setting", Category: "interpersonal", Difficulty: 1.0, Evidence: []string{"assertiveness-training"}},
			{ID: "work-life-balance", Title: "Work-life balance", Category: "lifestyle", Difficulty: 1.0, Evidence: []string{"behavioral-activation"}},
		},
		Patterns: []Pattern{
			{
				Name:         "achievement-pressure",
				Description:  "Stacked achievement goals reinforce self-critical standards and crowd out recovery",
				Goals:        []string{"perfectionism", "high-achievement", "performance-optimization"},
				MinSelected:  2,
				BaseSeverity: 0.55,
				Strategies: []domain.ResolutionStrategy{
					{Priority: 1, Description: "Keep one achievement goal and pause the rest", Adjustment: "pause-secondary-goals"},
					{Priority: 2, Description: "Pair the remaining goal with a self-compassion goal", Adjustment: "add-balancing-goal"},
				},
			},
			{
				Name:           "anxiety-overload",
				Description:    "Several concurrent anxiety-focused goals compound exposure load instead of spreading it",
				Goals:          []string{"anxiety-management", "panic-reduction", "worry-reduction", "social-confidence", "stress-reduction"},
				MinSelected:    3,
				BaseSeverity:   0.6,
				AutoResolvable: true,
				Strategies: []domain.ResolutionStrategy{
					{Priority: 1, Description: "Sequence the anxiety work: continue the primary goal, pause the others", Adjustment: "sequence-cluster"},
					{Priority: 2, Description: "Add a stabilizing routine goal alongside the primary", Adjustment: "add-balancing-goal"},
				},
			},
			{
				Name:         "emotional-intensity",
				Description:  "Multiple heavy emotional-processing goals at once risk overwhelm between sessions",
				Goals:        []string{"grief-processing", "depression-recovery", "anger-management", "emotional-awareness"},
				MinSelected:  3,
				BaseSeverity: 0.65,
				Strategies: []domain.ResolutionStrategy{
					{Priority: 1, Description: "Work the most pressing emotional goal first, defer the others", Adjustment: "sequence-cluster"},
					{Priority: 2, Description: "Add grounding self-care before deepening emotional work", Adjustment: "add-balancing-goal"},
				},
			},
			{
				Name:         "routine-overreach",
				Description:  "Too many simultaneous behavior changes exhaust willpower and stall all of them",
				Goals:        []string{"habit-building", "sleep-improvement", "self-care-routine", "work-life-balance", "mindfulness-practice"},
				MinSelected:  4,
				BaseSeverity: 0.45,
				Strategies: []domain.ResolutionStrategy{
					{Priority: 1, Description: "Anchor one routine for two weeks before layering the next", Adjustment: "stagger-start"},
				},
			},
		},
	}
	c.index()
	return c
}
