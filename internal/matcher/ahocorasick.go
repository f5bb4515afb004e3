// Package matcher implements the two multi-pattern matchers the rule
// compiler (internal/ruleset) dispatches into: an Aho-Corasick automaton
// (spec §4.5) covering every substring/suffix pattern in one linear
// pass, and a prefix trie (spec §4.6) for basename-prefix patterns.
//
// Neither has a pack dependency to ground on (no repository in the
// retrieval set ships an Aho-Corasick or generic trie implementation);
// both are built directly from spec §4.5/§4.6's node layout and
// amortized-complexity requirements. See DESIGN.md.
package matcher

import "fmt"

const alphabetSize = 256

type acNode struct {
	children   [alphabetSize]int32 // child node index, -1 if absent
	fail       int32
	output     int32 // index into values, -1 if none
	dictSuffix int32 // nearest fail-chain ancestor with output, -1 if none
}

// Automaton is an Aho-Corasick automaton over raw bytes. It has two
// phases: build (AddKey) and, after Finalize, a read-only query phase
// (Find) safe for concurrent callers.
type Automaton struct {
	nodes  []acNode
	values [][]any
	frozen bool
}

// NewAutomaton creates an empty automaton with just the root node.
func NewAutomaton() *Automaton {
	a := &Automaton{}
	a.nodes = append(a.nodes, newACNode())
	return a
}

func newACNode() acNode {
	n := acNode{fail: 0, output: -1, dictSuffix: -1}
	for i := range n.children {
		n.children[i] = -1
	}
	return n
}

// AddKey inserts key with an associated value. Inserting the same byte
// sequence twice appends to that node's value list rather than
// overwriting it, so a caller can store multiple rules under one key.
// AddKey panics if called after Finalize (BUILD_LOCKED, spec §7).
func (a *Automaton) AddKey(key []byte, value any) {
	if a.frozen {
		panic("matcher: AddKey after Finalize (BUILD_LOCKED)")
	}
	state := int32(0)
	for _, c := range key {
		next := a.nodes[state].children[c]
		if next == -1 {
			a.nodes = append(a.nodes, newACNode())
			next = int32(len(a.nodes) - 1)
			a.nodes[state].children[c] = next
		}
		state = next
	}
	if a.nodes[state].output == -1 {
		a.values = append(a.values, nil)
		a.nodes[state].output = int32(len(a.values) - 1)
	}
	a.values[a.nodes[state].output] = append(a.values[a.nodes[state].output], value)
}

// Finalize computes fail and dict-suffix links via BFS from the root
// (spec §4.5) and locks the automaton against further AddKey calls.
func (a *Automaton) Finalize() {
	if a.frozen {
		return
	}
	a.frozen = true

	queue := make([]int32, 0, len(a.nodes))
	root := a.nodes[0]
	for c := 0; c < alphabetSize; c++ {
		child := root.children[c]
		if child == -1 {
			continue
		}
		a.nodes[child].fail = 0
		queue = append(queue, child)
	}

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for c := 0; c < alphabetSize; c++ {
			v := a.nodes[u].children[c]
			if v == -1 {
				continue
			}
			f := a.nodes[u].fail
			for f != 0 && a.nodes[f].children[c] == -1 {
				f = a.nodes[f].fail
			}
			if child := a.nodes[f].children[c]; child != -1 && child != v {
				f = child
			}
			a.nodes[v].fail = f
			if a.nodes[f].output != -1 {
				a.nodes[v].dictSuffix = f
			} else {
				a.nodes[v].dictSuffix = a.nodes[f].dictSuffix
			}
			queue = append(queue, v)
		}
	}
}

// Match is one reported occurrence: EndIndex is the index (inclusive)
// of the last byte of the match within the queried text, Value is
// whatever was stored via AddKey.
type Match struct {
	EndIndex int
	Value    any
}

// Find reports every stored key occurring as a substring of text, in one
// linear pass, amortized O(len(text) + matches) independent of the
// number of stored keys (spec §4.5). Find panics if called before
// Finalize (QUERY_BEFORE_FREEZE, spec §7).
func (a *Automaton) Find(text []byte) []Match {
	if !a.frozen {
		panic("matcher: Find before Finalize (QUERY_BEFORE_FREEZE)")
	}
	var matches []Match
	state := int32(0)
	for i, c := range text {
		for state != 0 && a.nodes[state].children[c] == -1 {
			state = a.nodes[state].fail
		}
		if child := a.nodes[state].children[c]; child != -1 {
			state = child
		}
		tmp := state
		for tmp > 0 { // stops at the root (0) or an absent dict-suffix link (-1)
			if a.nodes[tmp].output != -1 {
				for _, v := range a.values[a.nodes[tmp].output] {
					matches = append(matches, Match{EndIndex: i, Value: v})
				}
			}
			tmp = a.nodes[tmp].dictSuffix
		}
	}
	return matches
}

func (a *Automaton) String() string {
	return fmt.Sprintf("Automaton{nodes=%d, frozen=%t}", len(a.nodes), a.frozen)
}
