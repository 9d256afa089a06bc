package bindict

import (
	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/internal/trie"
)

func (d *Dict) fail(f Field, format string, args ...any) error {
	return dict.Formatf(backend, f.String(), format, args...)
}

// sameCount checks that every column of a table has the same number of rows.
func (d *Dict) sameCount(first Field, others ...Field) (int, error) {
	n := d.count(first)
	for _, f := range others {
		if c := d.count(f); c != n {
			return 0, d.fail(f, "%d rows, %s has %d", c, first, n)
		}
	}
	return n, nil
}

func (d *Dict) validate() error {
	var err error

	// Grammar strings and refs.
	g := d.sec[FieldGrammar]
	if len(g) == 0 || g[len(g)-1] != 0 {
		return d.fail(FieldGrammar, "missing or not NUL terminated")
	}
	d.refs = d.count(FieldGrammarAddrs)
	if d.refs == 0 {
		return d.fail(FieldGrammarAddrs, "empty")
	}
	for i := 0; i < d.refs; i++ {
		if off := d.u32(FieldGrammarAddrs, i) & idMask; int(off) >= len(g) {
			return d.fail(FieldGrammarAddrs, "entry %d offset %d outside %d bytes", i, off, len(g))
		}
	}
	if d.u32(FieldGrammarAddrs, d.refs-1)&hasNextBit != 0 {
		return d.fail(FieldGrammarAddrs, "last chain is not terminated")
	}

	// Flexion texts.
	d.flexies = d.count(FieldFlexiesAddrs)
	if d.flexies > 0 && !dict.ValidText(d.sec[FieldFlexies]) {
		return d.fail(FieldFlexies, "odd length or missing NUL/NUL terminator")
	}
	for i := 0; i < d.flexies; i++ {
		off := d.u32(FieldFlexiesAddrs, i)
		if off%2 != 0 || int(off) >= len(d.sec[FieldFlexies]) {
			return d.fail(FieldFlexiesAddrs, "entry %d offset %d invalid", i, off)
		}
	}

	// Frequencies.
	d.freqs = d.count(FieldFreqs)
	checkFreq := func(f Field, rows int) error {
		for i := 0; i < rows; i++ {
			if id := d.u16(f, i); int(id) >= d.freqs {
				return d.fail(f, "row %d frequency id %d out of %d", i, id, d.freqs)
			}
		}
		return nil
	}

	// Blocks.
	if d.blocks, err = d.sameCount(FieldBlocksFormFlex, FieldBlocksFreqID); err != nil {
		return err
	}
	if d.has(FieldBlocksFlexGram) {
		if _, err = d.sameCount(FieldBlocksFormFlex, FieldBlocksFlexGram); err != nil {
			return err
		}
	} else if d.blocks > 0 && d.count(FieldDefaultFlexGram) != 1 {
		return d.fail(FieldDefaultFlexGram, "required when blocks have no grammar column")
	}
	if d.has(FieldDefaultFlexGram) {
		if d.count(FieldDefaultFlexGram) != 1 || int(d.u16(FieldDefaultFlexGram, 0)) >= d.refs {
			return d.fail(FieldDefaultFlexGram, "invalid default grammar ref")
		}
	}
	for i := 0; i < d.blocks; i++ {
		if id := d.u32(FieldBlocksFormFlex, i) & idMask; int(id) >= d.flexies {
			return d.fail(FieldBlocksFormFlex, "block %d flexion %d out of %d", i, id, d.flexies)
		}
		if ref := d.blockGrammarRef(i); ref >= d.refs {
			return d.fail(FieldBlocksFlexGram, "block %d grammar ref %d out of %d", i, ref, d.refs)
		}
	}
	if d.blocks > 0 && d.u32(FieldBlocksFormFlex, d.blocks-1)&hasNextBit != 0 {
		return d.fail(FieldBlocksFormFlex, "last block chain is not terminated")
	}
	if err = checkFreq(FieldBlocksFreqID, d.blocks); err != nil {
		return err
	}

	// Schemes.
	if d.schemes, err = d.sameCount(FieldSchemesLemmaFlex, FieldSchemesStemGram, FieldSchemesBlockID, FieldSchemesFreqID); err != nil {
		return err
	}
	if d.schemes > dict.MaxSchemeID+1 {
		return d.fail(FieldSchemesLemmaFlex, "%d schemes exceed the id range", d.schemes)
	}
	for i := 0; i < d.schemes; i++ {
		if id := d.u32(FieldSchemesLemmaFlex, i); int(id) >= d.flexies {
			return d.fail(FieldSchemesLemmaFlex, "scheme %d flexion %d out of %d", i, id, d.flexies)
		}
		if ref := d.u16(FieldSchemesStemGram, i); int(ref) >= d.refs {
			return d.fail(FieldSchemesStemGram, "scheme %d grammar ref %d out of %d", i, ref, d.refs)
		}
		if b := d.u32(FieldSchemesBlockID, i); int64(b) >= int64(d.blocks) {
			return d.fail(FieldSchemesBlockID, "scheme %d first block %d out of %d", i, b, d.blocks)
		}
	}
	if err = checkFreq(FieldSchemesFreqID, d.schemes); err != nil {
		return err
	}

	// Patterns.
	if d.patterns, err = d.sameCount(FieldEndInfo, FieldEndDiaMask, FieldEndFreqID); err != nil {
		return err
	}
	for i := 0; i < d.patterns; i++ {
		v := d.u32(FieldEndInfo, i)
		if !dict.ValidPacked(v) {
			return d.fail(FieldEndInfo, "pattern %d has invalid bits %#08x", i, v)
		}
		if id := dict.UnpackEndInfo(v).SchemeID; int(id) >= d.schemes {
			return d.fail(FieldEndInfo, "pattern %d scheme %d out of %d", i, id, d.schemes)
		}
	}
	if err = checkFreq(FieldEndFreqID, d.patterns); err != nil {
		return err
	}

	// Pattern chains.
	d.anas = d.count(FieldAnasLists)
	for i := 0; i < d.anas; i++ {
		if id := d.u32(FieldAnasLists, i) & idMask; int(id) >= d.patterns {
			return d.fail(FieldAnasLists, "entry %d pattern %d out of %d", i, id, d.patterns)
		}
	}
	if d.anas > 0 && d.u32(FieldAnasLists, d.anas-1)&hasNextBit != 0 {
		return d.fail(FieldAnasLists, "last chain is not terminated")
	}

	// Tries.
	if d.endsTrie, err = trie.Open(d.sec[FieldEndsTrie]); err != nil {
		return dict.NewFormatError(backend, FieldEndsTrie.String(), "invalid trie", err)
	}
	bad := -1
	d.endsTrie.Walk(func(_ []uint16, v uint32) bool {
		if int(v) >= d.anas {
			bad = int(v)
			return false
		}
		return true
	})
	if bad >= 0 {
		return d.fail(FieldEndsTrie, "chain head %d out of %d", bad, d.anas)
	}
	if d.has(FieldFlexTries) {
		if err = d.openFlexTries(); err != nil {
			return err
		}
	}

	d.fingerprint = string(d.sec[FieldFingerprint])
	return nil
}

func (d *Dict) openFlexTries() error {
	if n := d.count(FieldFlexTriesAddrs); n != d.schemes {
		return d.fail(FieldFlexTriesAddrs, "%d tries for %d schemes", n, d.schemes)
	}
	all := d.sec[FieldFlexTries]
	d.flexTries = make([]*trie.Trie, d.schemes)
	for i := 0; i < d.schemes; i++ {
		start := d.u32(FieldFlexTriesAddrs, i)
		end := uint32(len(all))
		if i+1 < d.schemes {
			end = d.u32(FieldFlexTriesAddrs, i+1)
		}
		if start > end || end > uint32(len(all)) {
			return d.fail(FieldFlexTriesAddrs, "scheme %d trie range [%d, %d) invalid", i, start, end)
		}
		t, err := trie.Open(all[start:end:end])
		if err != nil {
			return dict.NewFormatError(backend, FieldFlexTries.String(), "invalid trie", err)
		}
		size := d.chainLen(int(d.u32(FieldSchemesBlockID, i)))
		bad := -1
		t.Walk(func(_ []uint16, v uint32) bool {
			if int(v) >= size {
				bad = int(v)
				return false
			}
			return true
		})
		if bad >= 0 {
			return d.fail(FieldFlexTries, "scheme %d block index %d out of %d", i, bad, size)
		}
		d.flexTries[i] = t
	}
	return nil
}

// chainLen counts the blocks of the chain starting at first.
func (d *Dict) chainLen(first int) int {
	n := 1
	for i := first; d.u32(FieldBlocksFormFlex, i)&hasNextBit != 0; i++ {
		n++
	}
	return n
}
