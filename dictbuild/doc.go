// Package dictbuild compiles paradigm and lexeme descriptions into the
// backend independent dict.Source that bindict and protodict serialize.
//
// Every form of every lexeme becomes a final pattern keyed by the reversed
// form followed by the word start symbol. Heuristic ("bastard") patterns are
// keyed by the reversed flexion plus a short stem tail and let the analyzer
// guess lemmas of unknown words. A paradigm marked as fallback additionally
// gets a use-always pattern on the empty key.
package dictbuild
