package trie

import (
	"encoding/binary"
	"fmt"
	"slices"
)

// Entry is a key/value pair to store.
type Entry struct {
	Key   []uint16
	Value uint32
}

type buildNode struct {
	hasValue bool
	value    uint32
	labels   []uint16
	children []*buildNode
	offset   uint32
}

func (n *buildNode) size() int {
	s := 1 + binary.PutUvarint(make([]byte, binary.MaxVarintLen64), uint64(len(n.children))) + childSize*len(n.children)
	if n.hasValue {
		s += 4
	}
	return s
}

func (n *buildNode) get(c uint16) *buildNode {
	i, found := slices.BinarySearch(n.labels, c)
	if found {
		return n.children[i]
	}
	child := &buildNode{}
	n.labels = slices.Insert(n.labels, i, c)
	n.children = slices.Insert(n.children, i, child)
	return child
}

// Build serializes entries into the trie format. Entry order does not matter;
// a repeated key is an error.
func Build(entries []Entry) ([]byte, error) {
	root := &buildNode{}
	for _, e := range entries {
		n := root
		for _, c := range e.Key {
			n = n.get(c)
		}
		if n.hasValue {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateKey, e.Key)
		}
		n.hasValue = true
		n.value = e.Value
	}

	// Pre-order layout: a parent always precedes its children.
	var order []*buildNode
	var visit func(n *buildNode)
	visit = func(n *buildNode) {
		order = append(order, n)
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(root)

	off := uint32(headerSize)
	for _, n := range order {
		n.offset = off
		off += uint32(n.size())
	}

	buf := make([]byte, off)
	binary.LittleEndian.PutUint32(buf, magic)
	binary.LittleEndian.PutUint32(buf[4:], root.offset)
	for _, n := range order {
		p := n.offset
		if n.hasValue {
			buf[p] = flagValue
			binary.LittleEndian.PutUint32(buf[p+1:], n.value)
			p += 5
		} else {
			p++
		}
		p += uint32(binary.PutUvarint(buf[p:], uint64(len(n.children))))
		for i, c := range n.children {
			binary.LittleEndian.PutUint16(buf[p:], n.labels[i])
			binary.LittleEndian.PutUint32(buf[p+2:], c.offset)
			p += childSize
		}
	}
	return buf, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(entries []Entry) []byte {
	b, err := Build(entries)
	if err != nil {
		panic(err)
	}
	return b
}
