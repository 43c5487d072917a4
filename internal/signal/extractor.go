// Package signal turns free-text utterances into emotional-state vectors and
// crisis/protective signal hits. Extraction is pure string scanning and
// arithmetic against a lexicon; no calls leave the process.
package signal

import (
	"strings"
	"sync"
	"time"

	"github.com/lucbaten/attune/internal/domain"
	"github.com/lucbaten/attune/internal/lexicon"
)

// Linear scoring coefficients. One matched term moves its dimension by
// termWeight; results are clamped to the dimension's range.
const (
	termWeight       = 0.3
	contextDecrement = 0.1

	shortInputChars = 10
	slowResponseMs  = 30_000

	baseConfidence   = 0.5
	confidencePerHit = 0.1
)

// Extraction is the full signal readout for one utterance.
type Extraction struct {
	State domain.EmotionalState

	NegativeHits  []string
	PositiveHits  []string
	ArousalHits   []string
	DominanceHits []string

	// CrisisSignals is the deduplicated union of phrase and combinatorial
	// crisis matches. Non-empty means the crisis override applies downstream.
	CrisisSignals []string

	// Protective lists matched protective markers plus context-supplied
	// social support.
	Protective []string
}

// Extractor scores utterances against a swappable lexicon. Safe for
// concurrent use; SetLexicon swaps atomically between extractions.
type Extractor struct {
	mu  sync.RWMutex
	lex *lexicon.Lexicon
}

// NewExtractor returns an Extractor over the given lexicon, or the built-in
// default when lex is nil.
func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Extractor{lex: lex}
}

// SetLexicon swaps the active lexicon. In-flight extractions finish against
// the revision they started with.
func (e *Extractor) SetLexicon(lex *lexicon.Lexicon) {
	if lex == nil {
		return
	}
	e.mu.Lock()
	e.lex = lex
	e.mu.Unlock()
}

// Lexicon returns the active lexicon.
func (e *Extractor) Lexicon() *lexicon.Lexicon {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lex
}

// Extract scores one utterance. The timestamp is stamped onto the state so
// callers control the clock.
func (e *Extractor) Extract(text string, actx domain.AnalysisContext, now time.Time) Extraction {
	lex := e.Lexicon()
	doc := newScanDoc(text)

	ex := Extraction{
		NegativeHits:  doc.matchAll(lex.Negative),
		PositiveHits:  doc.matchAll(lex.Positive),
		ArousalHits:   doc.matchAll(lex.HighArousal),
		DominanceHits: doc.matchAll(lex.LowDominance),
		CrisisSignals: detectCrisis(doc, lex),
		Protective:    doc.matchAll(lex.Protective),
	}
	if actx.SocialSupport {
		ex.Protective = appendUnique(ex.Protective, "social_support")
	}

	// Valence: negatives pull first, positives add back.
	valence := -termWeight * float64(len(ex.NegativeHits))
	valence += termWeight * float64(len(ex.PositiveHits))
	valence = clamp(valence, -1, 1)

	arousal := clamp(termWeight*float64(len(ex.ArousalHits)), 0, 1)
	dominance := clamp(0.5-termWeight*float64(len(ex.DominanceHits)), 0, 1)

	// Context damping: terse or slow replies read as disengagement, not
	// activation.
	length := len(text)
	if actx.MessageLength > 0 {
		length = actx.MessageLength
	}
	if length < shortInputChars {
		arousal -= contextDecrement
	}
	if actx.ResponseTimeMs > slowResponseMs {
		arousal -= contextDecrement
	}
	if arousal < 0 {
		arousal = 0
	}

	indicators := make([]string, 0,
		len(ex.NegativeHits)+len(ex.PositiveHits)+len(ex.ArousalHits)+len(ex.DominanceHits))
	for _, hits := range [][]string{ex.NegativeHits, ex.PositiveHits, ex.ArousalHits, ex.DominanceHits} {
		for _, h := range hits {
			indicators = appendUnique(indicators, h)
		}
	}

	confidence := baseConfidence + confidencePerHit*float64(len(indicators))
	if confidence > 1 {
		confidence = 1
	}

	ex.State = domain.EmotionalState{
		Valence:    valence,
		Arousal:    arousal,
		Dominance:  dominance,
		Confidence: confidence,
		Indicators: indicators,
		Timestamp:  now,
	}
	return ex
}

// scanDoc is a normalized view of one utterance: the lowercased text for
// phrase matching and a token set for word matching.
type scanDoc struct {
	text   string
	tokens map[string]bool
}

func newScanDoc(text string) *scanDoc {
	lower := strings.ToLower(text)
	tokens := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(lower, isWordBreak) {
		tokens[tok] = true
	}
	return &scanDoc{text: lower, tokens: tokens}
}

// isWordBreak splits on everything outside letters, digits, apostrophes and
// hyphens, keeping contractions ("can't") and compounds ("self-harm") whole.
func isWordBreak(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
		return false
	}
	return r != '\'' && r != '-'
}

// has reports whether the term occurs: word-boundary match for single
// tokens, substring match for phrases.
func (d *scanDoc) has(term string) bool {
	if strings.ContainsRune(term, ' ') {
		return strings.Contains(d.text, term)
	}
	return d.tokens[term]
}

func (d *scanDoc) matchAll(terms []string) []string {
	var hits []string
	for _, term := range terms {
		if d.has(term) {
			hits = appendUnique(hits, term)
		}
	}
	return hits
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
