// Package alpha provides per-language alphabets and diacritics maps used by
// the analyzer to validate heuristic candidates and to restore diacritics.
//
// A Table classifies characters: letters are alphabetic and "required" (a
// heuristic stem must contain at least one), signs such as the apostrophe
// or hyphen are alphabetic but not required. Normalize lowercases and applies
// NFC so that dictionary lookups see a canonical form.
package alpha
