package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())

	// The conflict patterns the engine's detectors rely on must exist.
	names := make(map[string]bool)
	for _, p := range c.Patterns {
		names[p.Name] = true
	}
	assert.True(t, names["achievement-pressure"])
	assert.True(t, names["anxiety-overload"])
}

func TestLookupAndDifficulty(t *testing.T) {
	c := Default()

	goal, ok := c.Lookup("sleep-improvement")
	require.True(t, ok)
	assert.Equal(t, "behavioral-health", goal.Category)
	assert.Equal(t, 1.1, goal.Difficulty)
	assert.Contains(t, goal.Evidence, "CBT-I")

	assert.Equal(t, 1.1, c.Difficulty("sleep-improvement"))
	assert.Equal(t, 1.0, c.Difficulty("not-in-catalog"))
	assert.False(t, c.Known("not-in-catalog"))
}

func TestValidate_PatternReferencesUnknownGoal(t *testing.T) {
	c := Default()
	c.Patterns = append(c.Patterns, Pattern{
		Name:        "broken",
		Goals:       []string{"ghost-goal", "perfectionism"},
		MinSelected: 2,
	})

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost-goal")
}

func TestValidate_DuplicateGoal(t *testing.T) {
	c := Default()
	c.Goals = append(c.Goals, Goal{ID: "perfectionism", Title: "dup"})

	assert.Error(t, c.Validate())
}

func TestParse_Override(t *testing.T) {
	doc := []byte(`
goals:
  - id: focus-training
    title: Focus training
    category: performance
    difficulty: 1.05
patterns:
  - name: solo-pattern
    description: test pattern
    goals: [focus-training, focus-training-b]
    min_selected: 2
`)
	_, err := Parse(doc)
	// focus-training-b is not defined, so validation must reject this.
	assert.Error(t, err)

	valid := []byte(`
goals:
  - id: focus-training
    title: Focus training
    category: performance
    difficulty: 1.05
`)
	c, err := Parse(valid)
	require.NoError(t, err)
	assert.True(t, c.Known("focus-training"))
	assert.Empty(t, c.Patterns)
}

func TestParse_EmptyCatalogRejected(t *testing.T) {
	_, err := Parse([]byte("goals: []\n"))
	assert.Error(t, err)
}
