// Package hash checksums and fingerprints lemmago dictionaries.
//
// Binary dictionaries store a CRC32C of their body in the header, and the
// compressed envelope stores one of its uncompressed payload:
//
//	hdr.Checksum = hash.Sum(body)
//	ok := hash.Verify(body, hdr.Checksum)
//
// The dictionary compiler derives a default fingerprint from the paradigm
// table and the patterns trie:
//
//	fp := hash.NewFingerprint()
//	fp.Record(p.Name, p.LemmaFlex, p.StemGrammar, len(p.Forms))
//	fp.Table(patternsTrie)
//	name := fp.String()
package hash
