package soccermarkets

import (
	"encoding/json"
	"testing"
)

func TestHashLookupPushAndLookup(t *testing.T) {
	hl := NewHashLookup[string](2)
	idx := hl.Push("a")
	if idx != 0 {
		t.Errorf("first Push index = %d, want 0", idx)
	}
	hl.Push("b")
	if got, ok := hl.IndexOf("b"); !ok || got != 1 {
		t.Errorf("IndexOf(b) = (%d, %v), want (1, true)", got, ok)
	}
	if _, ok := hl.IndexOf("c"); ok {
		t.Error("IndexOf(c) reported found, want not found")
	}
	if hl.ItemAt(0) != "a" {
		t.Errorf("ItemAt(0) = %s, want a", hl.ItemAt(0))
	}
	if hl.Len() != 2 || hl.IsEmpty() {
		t.Errorf("Len()/IsEmpty() = %d/%v, want 2/false", hl.Len(), hl.IsEmpty())
	}
}

func TestHashLookupPushDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Push of a duplicate item did not panic")
		}
	}()
	hl := NewHashLookup[int](1)
	hl.Push(1)
	hl.Push(1)
}

func TestHashLookupFromPreservesOrder(t *testing.T) {
	hl := HashLookupFrom([]string{"x", "y", "z"})
	for i, want := range []string{"x", "y", "z"} {
		if hl.ItemAt(i) != want {
			t.Errorf("ItemAt(%d) = %s, want %s", i, hl.ItemAt(i), want)
		}
	}
}

func TestHashLookupJSONRoundTrip(t *testing.T) {
	hl := HashLookupFrom([]Outcome{WinOutcome(Home), DrawOutcome(), WinOutcome(Away)})
	data, err := json.Marshal(hl)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded HashLookup[Outcome]
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Len() != hl.Len() {
		t.Fatalf("decoded Len() = %d, want %d", decoded.Len(), hl.Len())
	}
	for i, o := range hl.Items() {
		if decoded.ItemAt(i) != o {
			t.Errorf("decoded item %d = %v, want %v", i, decoded.ItemAt(i), o)
		}
	}
}
