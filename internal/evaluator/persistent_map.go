package evaluator

import "hash/fnv"

// Persistent Hash Array Mapped Trie (HAMT), re-keyed by plain string
// identifiers for use as the environment's binding store (§3.2, §9
// "Environment representation"). Adapted from
// github.com/funvibe/funxy/internal/evaluator/persistent_map.go, which
// keys by a hashed Object; environments here are always indexed by
// source identifiers, so the Object-hashing indirection (and its
// accompanying Hash()/Inspect()-based equality) is dropped in favor of
// an FNV-1a hash (hash/fnv) of the string key and plain string equality.

const (
	hamtBits = 5
	hamtSize = 1 << hamtBits
	hamtMask = hamtSize - 1
)

// stringMap is an immutable hash map from string to interface{}.
type stringMap struct {
	root  *stringMapNode
	count int
}

type stringMapNode struct {
	bitmap uint32
	nodes  []interface{} // stringMapEntry or *stringMapNode
}

type stringMapEntry struct {
	hash  uint32
	key   string
	value interface{}
}

func emptyStringMap() *stringMap {
	return &stringMap{}
}

func (m *stringMap) Len() int { return m.count }

func (m *stringMap) Get(key string) (interface{}, bool) {
	key = normalizeStr(key)
	if m.root == nil {
		return nil, false
	}
	return m.root.get(hashString(key), key, 0)
}

func (m *stringMap) Put(key string, value interface{}) *stringMap {
	key = normalizeStr(key)
	hash := hashString(key)

	var newRoot *stringMapNode
	var added bool

	if m.root == nil {
		newRoot, added = (&stringMapNode{}).put(hash, key, value, 0)
	} else {
		newRoot, added = m.root.put(hash, key, value, 0)
	}

	newCount := m.count
	if added {
		newCount++
	}
	return &stringMap{root: newRoot, count: newCount}
}

func (m *stringMap) Remove(key string) *stringMap {
	key = normalizeStr(key)
	if m.root == nil {
		return m
	}
	newRoot, removed := m.root.remove(hashString(key), key, 0)
	if !removed {
		return m
	}
	return &stringMap{root: newRoot, count: m.count - 1}
}

func (m *stringMap) Keys() []string {
	keys := make([]string, 0, m.count)
	if m.root != nil {
		m.root.collectKeys(&keys)
	}
	return keys
}

// --- stringMapNode methods ---

func (n *stringMapNode) get(hash uint32, key string, shift uint) (interface{}, bool) {
	if shift >= 32 {
		for _, node := range n.nodes {
			if entry, ok := node.(stringMapEntry); ok && entry.key == key {
				return entry.value, true
			}
		}
		return nil, false
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx
	if n.bitmap&bit == 0 {
		return nil, false
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := n.nodes[pos].(type) {
	case stringMapEntry:
		if v.hash == hash && v.key == key {
			return v.value, true
		}
		return nil, false
	case *stringMapNode:
		return v.get(hash, key, shift+hamtBits)
	}
	return nil, false
}

func (n *stringMapNode) put(hash uint32, key string, value interface{}, shift uint) (*stringMapNode, bool) {
	if shift >= 32 {
		newNode := &stringMapNode{bitmap: n.bitmap, nodes: append([]interface{}(nil), n.nodes...)}
		for i, node := range newNode.nodes {
			if entry, ok := node.(stringMapEntry); ok && entry.key == key {
				newNode.nodes[i] = stringMapEntry{hash: hash, key: key, value: value}
				return newNode, false
			}
		}
		newNode.nodes = append(newNode.nodes, stringMapEntry{hash: hash, key: key, value: value})
		return newNode, true
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx

	newNode := &stringMapNode{bitmap: n.bitmap, nodes: append([]interface{}(nil), n.nodes...)}

	if n.bitmap&bit == 0 {
		newNode.bitmap |= bit
		pos := popcount(newNode.bitmap & (bit - 1))
		newNode.nodes = append(newNode.nodes, nil)
		copy(newNode.nodes[pos+1:], newNode.nodes[pos:])
		newNode.nodes[pos] = stringMapEntry{hash: hash, key: key, value: value}
		return newNode, true
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := newNode.nodes[pos].(type) {
	case stringMapEntry:
		if v.hash == hash && v.key == key {
			newNode.nodes[pos] = stringMapEntry{hash: hash, key: key, value: value}
			return newNode, false
		}
		child := &stringMapNode{}
		var a1, a2 bool
		child, a1 = child.put(v.hash, v.key, v.value, shift+hamtBits)
		child, a2 = child.put(hash, key, value, shift+hamtBits)
		newNode.nodes[pos] = child
		return newNode, a1 || a2
	case *stringMapNode:
		newChild, added := v.put(hash, key, value, shift+hamtBits)
		newNode.nodes[pos] = newChild
		return newNode, added
	}
	return newNode, false
}

func (n *stringMapNode) remove(hash uint32, key string, shift uint) (*stringMapNode, bool) {
	if shift >= 32 {
		for i, node := range n.nodes {
			if entry, ok := node.(stringMapEntry); ok && entry.key == key {
				newNode := &stringMapNode{bitmap: n.bitmap, nodes: make([]interface{}, len(n.nodes)-1)}
				copy(newNode.nodes[:i], n.nodes[:i])
				copy(newNode.nodes[i:], n.nodes[i+1:])
				return newNode, true
			}
		}
		return n, false
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx
	if n.bitmap&bit == 0 {
		return n, false
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := n.nodes[pos].(type) {
	case stringMapEntry:
		if v.hash == hash && v.key == key {
			newNode := &stringMapNode{bitmap: n.bitmap &^ bit, nodes: make([]interface{}, len(n.nodes)-1)}
			copy(newNode.nodes[:pos], n.nodes[:pos])
			copy(newNode.nodes[pos:], n.nodes[pos+1:])
			return newNode, true
		}
		return n, false
	case *stringMapNode:
		newChild, removed := v.remove(hash, key, shift+hamtBits)
		if !removed {
			return n, false
		}
		if len(newChild.nodes) == 0 {
			newNode := &stringMapNode{bitmap: n.bitmap &^ bit, nodes: make([]interface{}, len(n.nodes)-1)}
			copy(newNode.nodes[:pos], n.nodes[:pos])
			copy(newNode.nodes[pos:], n.nodes[pos+1:])
			return newNode, true
		}
		if len(newChild.nodes) == 1 {
			if entry, ok := newChild.nodes[0].(stringMapEntry); ok {
				newNode := &stringMapNode{bitmap: n.bitmap, nodes: append([]interface{}(nil), n.nodes...)}
				newNode.nodes[pos] = entry
				return newNode, true
			}
		}
		newNode := &stringMapNode{bitmap: n.bitmap, nodes: append([]interface{}(nil), n.nodes...)}
		newNode.nodes[pos] = newChild
		return newNode, true
	}
	return n, false
}

func (n *stringMapNode) collectKeys(keys *[]string) {
	for _, node := range n.nodes {
		switch v := node.(type) {
		case stringMapEntry:
			*keys = append(*keys, v.key)
		case *stringMapNode:
			v.collectKeys(keys)
		}
	}
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(normalizeStr(s)))
	return h.Sum32()
}

func popcount(x uint32) int {
	x = x - ((x >> 1) & 0x55555555)
	x = (x & 0x33333333) + ((x >> 2) & 0x33333333)
	x = (x + (x >> 4)) & 0x0f0f0f0f
	x = x + (x >> 8)
	x = x + (x >> 16)
	return int(x & 0x3f)
}
