package cache

import (
	"testing"

	"github.com/ayush-verma1708/backend-crm/storage"
)

func f(v float64) *float64 { return &v }

func TestListKeyDeterministic(t *testing.T) {
	q := storage.ListQuery{Page: 2, Limit: 50, Search: "anna", Magazine: "vogue", MinPrice: f(10.5)}
	if ListKey(q) != ListKey(q) {
		t.Error("same query produced different keys")
	}
	want := "records::2::50::anna::vogue::10.5::nil"
	if got := ListKey(q); got != want {
		t.Errorf("ListKey() = %q, want %q", got, want)
	}
}

func TestListKeyDistinguishesQueries(t *testing.T) {
	base := storage.ListQuery{Page: 1, Limit: 200}
	variants := []storage.ListQuery{
		{Page: 2, Limit: 200},
		{Page: 1, Limit: 100},
		{Page: 1, Limit: 200, Search: "x"},
		{Page: 1, Limit: 200, Magazine: "x"},
		{Page: 1, Limit: 200, MinPrice: f(1)},
		{Page: 1, Limit: 200, MaxPrice: f(1)},
	}
	seen := map[string]bool{ListKey(base): true}
	for _, q := range variants {
		key := ListKey(q)
		if seen[key] {
			t.Errorf("query %+v collided with another key %q", q, key)
		}
		seen[key] = true
	}
}

func TestListKeyZeroBoundDiffersFromAbsent(t *testing.T) {
	absent := storage.ListQuery{Page: 1, Limit: 200}
	zero := storage.ListQuery{Page: 1, Limit: 200, MinPrice: f(0)}
	if ListKey(absent) == ListKey(zero) {
		t.Error("absent bound and zero bound share a key")
	}
}
