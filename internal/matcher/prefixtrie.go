package matcher

// PrefixTrie answers "which stored keys are prefixes of the input?"
// (spec §4.6). Same node layout as Automaton minus fail/dict-suffix
// links; two-phase build/freeze, concurrent Find safe after Finalize.
type PrefixTrie struct {
	nodes  []trieNode
	values [][]any
	frozen bool
}

type trieNode struct {
	children [alphabetSize]int32
	output   int32
}

func newTrieNode() trieNode {
	n := trieNode{output: -1}
	for i := range n.children {
		n.children[i] = -1
	}
	return n
}

// NewPrefixTrie creates an empty trie with just the root node.
func NewPrefixTrie() *PrefixTrie {
	t := &PrefixTrie{}
	t.nodes = append(t.nodes, newTrieNode())
	return t
}

// AddKey inserts key with an associated value, appending to any existing
// value list at that exact key. Panics if called after Finalize.
func (t *PrefixTrie) AddKey(key []byte, value any) {
	if t.frozen {
		panic("matcher: AddKey after Finalize (BUILD_LOCKED)")
	}
	state := int32(0)
	for _, c := range key {
		next := t.nodes[state].children[c]
		if next == -1 {
			t.nodes = append(t.nodes, newTrieNode())
			next = int32(len(t.nodes) - 1)
			t.nodes[state].children[c] = next
		}
		state = next
	}
	if t.nodes[state].output == -1 {
		t.values = append(t.values, nil)
		t.nodes[state].output = int32(len(t.values) - 1)
	}
	t.values[t.nodes[state].output] = append(t.values[t.nodes[state].output], value)
}

// Finalize locks the trie against further AddKey calls.
func (t *PrefixTrie) Finalize() {
	t.frozen = true
}

// Find walks the trie consuming bytes of text from the root, emitting
// every stored key's values the moment it is seen as a prefix of text,
// and stops at the first missing edge. Worst-case O(min(len(text),
// longest key)). Panics if called before Finalize.
func (t *PrefixTrie) Find(text []byte) []any {
	if !t.frozen {
		panic("matcher: Find before Finalize (QUERY_BEFORE_FREEZE)")
	}
	var out []any
	state := int32(0)
	for _, c := range text {
		if t.nodes[state].output != -1 {
			out = append(out, t.values[t.nodes[state].output]...)
		}
		next := t.nodes[state].children[c]
		if next == -1 {
			return out
		}
		state = next
	}
	if t.nodes[state].output != -1 {
		out = append(out, t.values[t.nodes[state].output]...)
	}
	return out
}
