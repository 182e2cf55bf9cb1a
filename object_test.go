package rsync

import "testing"

func TestObject_IsValid(t *testing.T) {
	if invalidObject.IsValid() {
		t.Fatalf("invalidObject reported valid")
	}
	valid := &Object{UIDChain: UIDChain{{ID: 1, Size: 4}}, Type: TypeDescriptor{BaseKind: KindInt32, Size: 4}}
	if !valid.IsValid() {
		t.Fatalf("well-formed Object reported invalid")
	}
	var nilObj *Object
	if nilObj.IsValid() {
		t.Fatalf("nil *Object reported valid")
	}
}

func TestObject_PointeeUID(t *testing.T) {
	primitive := &Object{UIDChain: UIDChain{{ID: 1, Size: 4}}, Type: TypeDescriptor{BaseKind: KindInt32, Size: 4}}
	if primitive.PointeeUID().IsValid() {
		t.Fatalf("non-pointer Object should have no pointee")
	}

	ptr := &Object{
		UIDChain: UIDChain{{ID: 1, Size: 8}, {ID: 2, Size: 4}},
		Type:     TypeDescriptor{BaseKind: KindInt32, Size: 4, IsPointer: true},
	}
	if ptr.PointeeUID() != (UID{ID: 2, Size: 4}) {
		t.Fatalf("PointeeUID() = %v", ptr.PointeeUID())
	}
}

func TestObject_MemberByNameAndSequenceIndex(t *testing.T) {
	obj := &Object{Members: []Member{
		{UID: UID{ID: 1, Size: 4}, Name: "X"},
		{UID: UID{ID: 2, Size: 4}, Name: "Y"},
	}}
	m := obj.MemberByName("Y")
	if m == nil || m.Name != "Y" {
		t.Fatalf("MemberByName(Y) = %v", m)
	}
	if obj.MemberByName("Z") != nil {
		t.Fatalf("MemberByName(Z) should be nil")
	}
	if idx := obj.SequenceIndexOf(*m); idx != 1 {
		t.Fatalf("SequenceIndexOf(Y) = %d, want 1", idx)
	}
	missing := Member{UID: UID{ID: 99, Size: 4}, Name: "Q"}
	if idx := obj.SequenceIndexOf(missing); idx != -1 {
		t.Fatalf("SequenceIndexOf(missing) = %d, want -1", idx)
	}
}

func TestObject_Clone(t *testing.T) {
	orig := &Object{
		UIDChain: UIDChain{{ID: 1, Size: 4}},
		Type:     TypeDescriptor{BaseKind: KindInt32, Size: 4},
		Members:  []Member{{Name: "X"}},
		Raw:      []byte{1, 2, 3},
	}
	clone := orig.clone()
	clone.Raw[0] = 99
	clone.Members[0].Name = "changed"
	if orig.Raw[0] == 99 {
		t.Fatalf("clone shared Raw backing array with original")
	}
	if orig.Members[0].Name == "changed" {
		t.Fatalf("clone shared Members backing array with original")
	}
}
