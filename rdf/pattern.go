package rdf

// Pattern is the 3-bit classification of a match triple: which of
// subject/predicate/object are concrete (bit set) vs. Any (bit clear).
// Every triple store query entry point dispatches on this code, so
// every backend must implement all eight cases explicitly (spec.md
// §4.B).
type Pattern uint8

const (
	PatternNone Pattern = 0 // ___
	PatternO    Pattern = 1 << 0
	PatternP    Pattern = 1 << 1
	PatternS    Pattern = 1 << 2

	PatternSPO Pattern = PatternS | PatternP | PatternO
	PatternSP_ Pattern = PatternS | PatternP
	PatternS_O Pattern = PatternS | PatternO
	PatternS__ Pattern = PatternS
	Pattern_PO Pattern = PatternP | PatternO
	Pattern_P_ Pattern = PatternP
	Pattern__O Pattern = PatternO
	Pattern___ Pattern = PatternNone
)

// Classify reduces a match triple to its Pattern, following spec.md
// §4.B: Any in any position clears that position's bit.
func Classify(s, p, o Node) Pattern {
	var pat Pattern
	if !s.IsAny() {
		pat |= PatternS
	}
	if !p.IsAny() {
		pat |= PatternP
	}
	if !o.IsAny() {
		pat |= PatternO
	}
	return pat
}

// ClassifyTriple classifies a pattern triple directly.
func ClassifyTriple(t Triple) Pattern {
	return Classify(t.Subject, t.Predicate, t.Object)
}

func (p Pattern) String() string {
	names := [8]string{"___", "__O", "_P_", "_PO", "S__", "S_O", "SP_", "SPO"}
	return names[p]
}
