package signal

import "github.com/lucbaten/attune/internal/lexicon"

// detectCrisis returns the deduplicated union of two passes over the
// utterance: direct crisis-phrase matches, and combinatorial hits where a
// crisis term and a self-referential target co-occur anywhere in the text.
// The combinatorial pass catches phrasings the fixed list misses, such as
// "thinking about death, me specifically".
func detectCrisis(doc *scanDoc, lex *lexicon.Lexicon) []string {
	var signals []string
	for _, phrase := range lex.CrisisPhrases {
		if doc.has(phrase) {
			signals = appendUnique(signals, phrase)
		}
	}
	for _, term := range lex.CrisisTerms {
		if !doc.has(term) {
			continue
		}
		for _, target := range lex.CrisisTargets {
			if doc.has(target) {
				signals = appendUnique(signals, term+" "+target)
			}
		}
	}
	return signals
}
