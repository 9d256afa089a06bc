package trie

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

const (
	magic      = 0x4C545231 // "LTR1"
	headerSize = 8
	childSize  = 6

	flagValue = 1 << 0
)

var (
	// ErrCorrupt is returned by Open for malformed trie data.
	ErrCorrupt = errors.New("trie: corrupt data")
	// ErrDuplicateKey is returned by Build when a key appears twice.
	ErrDuplicateKey = errors.New("trie: duplicate key")
)

// Trie is a validated, read-only view over serialized trie bytes.
// It is safe for concurrent use.
type Trie struct {
	data []byte
	root uint32
	size int
}

// Open validates data and returns a trie reading from it. The slice is
// borrowed, not copied.
func Open(data []byte) (*Trie, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}
	if binary.LittleEndian.Uint32(data) != magic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	t := &Trie{data: data, root: binary.LittleEndian.Uint32(data[4:])}
	if t.root < headerSize {
		return nil, fmt.Errorf("%w: root offset %d inside header", ErrCorrupt, t.root)
	}
	n, err := t.validate()
	if err != nil {
		return nil, err
	}
	t.size = n
	return t, nil
}

// Len returns the number of stored keys.
func (t *Trie) Len() int { return t.size }

// Bytes returns the serialized form.
func (t *Trie) Bytes() []byte { return t.data }

// Find returns the value stored for exactly key.
func (t *Trie) Find(key []uint16) (uint32, bool) {
	off := t.root
	for _, c := range key {
		next, ok := t.child(off, c)
		if !ok {
			return 0, false
		}
		off = next
	}
	n := t.node(off)
	return n.value, n.hasValue
}

// FindLongestPrefix returns the longest stored key that is a prefix of key,
// as its length and value. ok is false if no stored key (including the empty
// one) is a prefix of key.
func (t *Trie) FindLongestPrefix(key []uint16) (length int, value uint32, ok bool) {
	off := t.root
	if n := t.node(off); n.hasValue {
		value, ok = n.value, true
	}
	for i, c := range key {
		next, found := t.child(off, c)
		if !found {
			break
		}
		off = next
		if n := t.node(off); n.hasValue {
			length, value, ok = i+1, n.value, true
		}
	}
	return length, value, ok
}

// Walk calls fn for every key in lexicographic order until fn returns false.
// The key slice is reused between calls.
func (t *Trie) Walk(fn func(key []uint16, value uint32) bool) {
	var key []uint16
	t.walk(t.root, &key, fn)
}

func (t *Trie) walk(off uint32, key *[]uint16, fn func([]uint16, uint32) bool) bool {
	n := t.node(off)
	if n.hasValue && !fn(*key, n.value) {
		return false
	}
	for i := 0; i < n.count; i++ {
		label, child := t.childAt(n, i)
		*key = append(*key, label)
		if !t.walk(child, key, fn) {
			return false
		}
		*key = (*key)[:len(*key)-1]
	}
	return true
}

type node struct {
	value    uint32
	hasValue bool
	count    int
	children uint32
}

// node decodes the node header at off. Offsets were checked by Open.
func (t *Trie) node(off uint32) node {
	var n node
	p := off
	flags := t.data[p]
	p++
	if flags&flagValue != 0 {
		n.hasValue = true
		n.value = binary.LittleEndian.Uint32(t.data[p:])
		p += 4
	}
	count, w := binary.Uvarint(t.data[p:])
	n.count = int(count)
	n.children = p + uint32(w)
	return n
}

func (t *Trie) childAt(n node, i int) (uint16, uint32) {
	p := n.children + uint32(i*childSize)
	return binary.LittleEndian.Uint16(t.data[p:]), binary.LittleEndian.Uint32(t.data[p+2:])
}

func (t *Trie) child(off uint32, c uint16) (uint32, bool) {
	n := t.node(off)
	i := sort.Search(n.count, func(i int) bool {
		label, _ := t.childAt(n, i)
		return label >= c
	})
	if i < n.count {
		if label, next := t.childAt(n, i); label == c {
			return next, true
		}
	}
	return 0, false
}

// validate checks every reachable node once and returns the key count.
func (t *Trie) validate() (int, error) {
	visited := make(map[uint32]struct{})
	stack := []uint32{t.root}
	keys := 0
	for len(stack) > 0 {
		off := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[off]; ok {
			return 0, fmt.Errorf("%w: node %d is shared", ErrCorrupt, off)
		}
		visited[off] = struct{}{}

		end := uint64(len(t.data))
		p := uint64(off)
		if p >= end {
			return 0, fmt.Errorf("%w: node offset %d out of range", ErrCorrupt, off)
		}
		flags := t.data[p]
		if flags&^flagValue != 0 {
			return 0, fmt.Errorf("%w: node %d has unknown flags %#x", ErrCorrupt, off, flags)
		}
		p++
		if flags&flagValue != 0 {
			if p+4 > end {
				return 0, fmt.Errorf("%w: node %d value truncated", ErrCorrupt, off)
			}
			p += 4
			keys++
		}
		count, w := binary.Uvarint(t.data[p:])
		if w <= 0 {
			return 0, fmt.Errorf("%w: node %d child count malformed", ErrCorrupt, off)
		}
		p += uint64(w)
		if count > (end-p)/childSize {
			return 0, fmt.Errorf("%w: node %d children truncated", ErrCorrupt, off)
		}
		var prev int32 = -1
		for i := uint64(0); i < count; i++ {
			q := p + i*childSize
			label := binary.LittleEndian.Uint16(t.data[q:])
			child := binary.LittleEndian.Uint32(t.data[q+2:])
			if int32(label) <= prev {
				return 0, fmt.Errorf("%w: node %d children not sorted", ErrCorrupt, off)
			}
			prev = int32(label)
			if child <= off {
				return 0, fmt.Errorf("%w: node %d points backwards", ErrCorrupt, off)
			}
			stack = append(stack, child)
		}
	}
	return keys, nil
}
