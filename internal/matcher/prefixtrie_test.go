package matcher

import (
	"strings"
	"testing"
)

func TestPrefixTrieFindsPrefixesOfInput(t *testing.T) {
	trie := NewPrefixTrie()
	trie.AddKey([]byte("/home/user/.cache"), "cache-prefix")
	trie.AddKey([]byte("/home"), "home-prefix")
	trie.Finalize()

	out := trie.Find([]byte("/home/user/.cache/npm"))
	if len(out) != 2 {
		t.Fatalf("expected 2 stored keys to be prefixes, got %v", out)
	}
}

func TestPrefixTrieNoPrefixMatch(t *testing.T) {
	trie := NewPrefixTrie()
	trie.AddKey([]byte("/var/cache"), "rule")
	trie.Finalize()

	out := trie.Find([]byte("/home/user"))
	if len(out) != 0 {
		t.Fatalf("expected no matches, got %v", out)
	}
}

func TestPrefixTrieExactLengthMatch(t *testing.T) {
	trie := NewPrefixTrie()
	trie.AddKey([]byte("/tmp"), "rule")
	trie.Finalize()

	out := trie.Find([]byte("/tmp"))
	if len(out) != 1 {
		t.Fatalf("expected exact-length key to match, got %v", out)
	}
}

// naivePrefixesOf is a reference implementation used to cross-check Find
// against a brute-force scan of stored keys.
func naivePrefixesOf(keys []string, text string) map[string]bool {
	out := make(map[string]bool)
	for _, k := range keys {
		if strings.HasPrefix(text, k) {
			out[k] = true
		}
	}
	return out
}

func TestPrefixTrieAgainstNaiveReference(t *testing.T) {
	keys := []string{"/a", "/a/b", "/a/b/c", "/x/y", "/a/bcd"}
	trie := NewPrefixTrie()
	for _, k := range keys {
		trie.AddKey([]byte(k), k)
	}
	trie.Finalize()

	texts := []string{"/a/b/c/d/e", "/a/bx", "/x/y/z", "/q/r"}
	for _, text := range texts {
		want := naivePrefixesOf(keys, text)
		got := trie.Find([]byte(text))
		if len(got) != len(want) {
			t.Fatalf("text %q: want %d matches %v, got %d: %v", text, len(want), want, len(got), got)
		}
		for _, v := range got {
			if !want[v.(string)] {
				t.Fatalf("text %q: unexpected match %q", text, v)
			}
		}
	}
}

func TestPrefixTrieAddKeyAfterFinalizePanics(t *testing.T) {
	trie := NewPrefixTrie()
	trie.Finalize()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on AddKey after Finalize")
		}
	}()
	trie.AddKey([]byte("x"), 1)
}

func TestPrefixTrieFindBeforeFinalizePanics(t *testing.T) {
	trie := NewPrefixTrie()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on Find before Finalize")
		}
	}()
	trie.Find([]byte("x"))
}
