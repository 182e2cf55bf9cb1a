package rsync

import "testing"

func TestObjectGraph_InsertLookup(t *testing.T) {
	g := NewObjectGraph()
	uid := UID{ID: 1, Size: 4}
	obj := &Object{UIDChain: UIDChain{uid}, Type: TypeDescriptor{BaseKind: KindInt32, Size: 4}}
	g.Insert(obj)

	got := g.Lookup(uid)
	if got != obj {
		t.Fatalf("Lookup returned a different Object")
	}
	if !g.Has(uid) {
		t.Fatalf("Has(uid) = false after Insert")
	}
}

func TestObjectGraph_LookupMissingReturnsSentinel(t *testing.T) {
	g := NewObjectGraph()
	got := g.Lookup(UID{ID: 99, Size: 4})
	if got.IsValid() {
		t.Fatalf("Lookup of a missing UID returned a valid Object")
	}
	if got != g.Lookup(NoUID) {
		t.Fatalf("missing-UID and NoUID lookups should return the same sentinel pointer")
	}
}

func TestObjectGraph_InsertIsNoOpOverValidObject(t *testing.T) {
	g := NewObjectGraph()
	uid := UID{ID: 1, Size: 4}
	first := &Object{UIDChain: UIDChain{uid}, Type: TypeDescriptor{BaseKind: KindInt32, Size: 4}, Version: 1}
	second := &Object{UIDChain: UIDChain{uid}, Type: TypeDescriptor{BaseKind: KindInt32, Size: 4}, Version: 2}
	g.Insert(first)
	g.Insert(second)
	if g.Lookup(uid).Version != 1 {
		t.Fatalf("Insert replaced an already-valid Object")
	}
}

func TestObjectGraph_EraseThenInsertSucceeds(t *testing.T) {
	g := NewObjectGraph()
	uid := UID{ID: 1, Size: 4}
	g.Insert(&Object{UIDChain: UIDChain{uid}, Type: TypeDescriptor{BaseKind: KindInt32, Size: 4}, Version: 1})
	g.Erase(uid)
	g.Insert(&Object{UIDChain: UIDChain{uid}, Type: TypeDescriptor{BaseKind: KindInt32, Size: 4}, Version: 2})
	if g.Lookup(uid).Version != 2 {
		t.Fatalf("Insert after Erase should take effect")
	}
}

func TestObjectGraph_UIDsAscending(t *testing.T) {
	g := NewObjectGraph()
	ids := []UID{{ID: 3, Size: 4}, {ID: 1, Size: 8}, {ID: 1, Size: 4}}
	for _, uid := range ids {
		g.Insert(&Object{UIDChain: UIDChain{uid}, Type: TypeDescriptor{BaseKind: KindInt32, Size: 4}})
	}
	got := g.UIDs()
	want := []UID{{ID: 1, Size: 4}, {ID: 1, Size: 8}, {ID: 3, Size: 4}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("UIDs() = %v, want %v", got, want)
		}
	}
}
