// Package lemma defines the analysis result record shared by the analyzer,
// the wordform generator and the multilingual front end.
package lemma
