// Package lexicon holds the curated term sets the signal extractor scores
// against. Lexicons are versioned values: the extraction algorithm stays
// fixed while the word lists evolve per language or clinical review cycle.
package lexicon

import "fmt"

// Lexicon is one versioned set of scoring vocabularies.
type Lexicon struct {
	Name    string `yaml:"name"`
	Locale  string `yaml:"locale"`
	Version string `yaml:"version"`

	// Valence vocabularies. Matches count toward the indicator list.
	Negative []string `yaml:"negative"`
	Positive []string `yaml:"positive"`

	// Arousal and dominance vocabularies.
	HighArousal  []string `yaml:"high_arousal"`
	LowDominance []string `yaml:"low_dominance"`

	// Crisis detection: explicit phrases plus the combinatorial check
	// (any crisis term co-occurring with any target term).
	CrisisPhrases []string `yaml:"crisis_phrases"`
	CrisisTerms   []string `yaml:"crisis_terms"`
	CrisisTargets []string `yaml:"crisis_targets"`

	// Protective-factor markers discount the risk score.
	Protective []string `yaml:"protective"`
}

// Validate checks that the sets required by the scoring algorithm are
// non-empty.
func (l *Lexicon) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("lexicon name is required")
	}
	required := map[string][]string{
		"negative":       l.Negative,
		"positive":       l.Positive,
		"high_arousal":   l.HighArousal,
		"low_dominance":  l.LowDominance,
		"crisis_phrases": l.CrisisPhrases,
		"crisis_terms":   l.CrisisTerms,
		"crisis_targets": l.CrisisTargets,
	}
	for name, set := range required {
		if len(set) == 0 {
			return fmt.Errorf("lexicon %q: term set %s is empty", l.Name, name)
		}
	}
	return nil
}

// Default returns the built-in English lexicon.
func Default() *Lexicon {
	return &Lexicon{
		Name:    "english-default",
		Locale:  "en",
		Version: "2025.08",
		Negative: []string{
			"sad", "hopeless", "anxious", "worried", "scared", "afraid",
			"angry", "frustrated", "depressed", "lonely", "worthless",
			"empty", "miserable", "overwhelmed", "exhausted", "guilty",
			"ashamed", "hurt", "terrible", "awful", "hate", "crying",
			"numb", "broken", "failure",
		},
		Positive: []string{
			"happy", "excited", "grateful", "calm", "proud", "hopeful",
			"confident", "peaceful", "joyful", "better", "good", "great",
			"wonderful", "relieved", "motivated", "optimistic", "loved",
			"content", "accomplished", "progress",
		},
		HighArousal: []string{
			"panic", "panicking", "racing", "can't breathe", "shaking",
			"trembling", "terrified", "frantic", "restless", "on edge",
			"heart pounding", "agitated", "overwhelmed", "urgent",
		},
		LowDominance: []string{
			"helpless", "powerless", "trapped", "stuck", "can't",
			"unable", "no control", "out of control", "forced",
			"no choice", "weak", "dependent",
		},
		CrisisPhrases: []string{
			"kill myself", "hurt myself", "end my life", "end it all",
			"want to die", "better off dead", "no reason to live",
			"suicide", "suicidal", "self harm", "self-harm",
			"no way out", "can't go on",
		},
		CrisisTerms:   []string{"suicide", "kill", "die", "death", "hurt"},
		CrisisTargets: []string{"myself", "me", "i"},
		Protective: []string{
			"support", "friend", "friends", "family", "therapist",
			"counselor", "help", "coping", "cope", "plan", "hope",
			"exercise", "sleep", "routine", "community",
		},
	}
}
