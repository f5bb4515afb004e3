package ruleset

import (
	"reflect"
	"sort"
	"testing"
)

func expandSorted(pattern string) []string {
	out := expandBraces(pattern)
	sort.Strings(out)
	return out
}

func TestExpandBracesNoBraces(t *testing.T) {
	got := expandBraces("**/node_modules")
	if !reflect.DeepEqual(got, []string{"**/node_modules"}) {
		t.Fatalf("got %v", got)
	}
}

func TestExpandBracesSimple(t *testing.T) {
	got := expandSorted("**/{venv,.venv}")
	want := []string{"**/.venv", "**/venv"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpandBracesCrossProduct(t *testing.T) {
	got := expandSorted("**/{a,b}.{x,y}")
	want := []string{"**/a.x", "**/a.y", "**/b.x", "**/b.y"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpandBracesNested(t *testing.T) {
	got := expandSorted("**/{tmp,cache{1,2}}")
	want := []string{"**/cache1", "**/cache2", "**/tmp"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpandBracesUnmatched(t *testing.T) {
	got := expandBraces("**/{oops")
	if !reflect.DeepEqual(got, []string{"**/{oops"}) {
		t.Fatalf("got %v", got)
	}
}
