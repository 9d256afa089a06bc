// Package grammar defines grammeme codes and the compact grammar strings stored
// in lemmer dictionaries.
//
// A grammar string is a sequence of single-byte grammeme codes terminated by
// NUL. The zero byte is never a valid grammeme, so a String can be scanned
// without a separate length. Human-readable names follow the conventional
// short tags ("S", "m", "inan", "nom", "sg", ...).
//
//	g, _ := grammar.Parse("S,m,inan")
//	g.Has(grammar.Masculine) // true
//	g.Format()               // "S,m,inan"
package grammar
