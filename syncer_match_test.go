package rsync

import "testing"

func makeMember(id uint64, size uint32, offset uint32, name string, typ TypeDescriptor) Member {
	return Member{UID: UID{ID: id, Size: size}, Offset: offset, Name: name, Type: typ}
}

func TestMatchMember_NameAndTypeMatch(t *testing.T) {
	i32 := TypeDescriptor{BaseKind: KindInt32, Size: 4}
	d := &Object{Members: []Member{
		makeMember(1, 4, 0, "X", i32),
		makeMember(2, 4, 4, "Y", i32),
	}}
	sObj := &Object{Members: []Member{makeMember(10, 4, 0, "X", i32)}}
	syncer := &Syncer{}

	got := syncer.matchMember(d, sObj, sObj.Members[0])
	if got == nil || got.Name != "X" {
		t.Fatalf("expected match on X by name, got %v", got)
	}
}

func TestMatchMember_TypeOnlyUniqueMatch(t *testing.T) {
	i32 := TypeDescriptor{BaseKind: KindInt32, Size: 4}
	i64 := TypeDescriptor{BaseKind: KindInt64, Size: 8}
	d := &Object{Members: []Member{
		makeMember(1, 4, 0, "Renamed", i32),
		makeMember(2, 8, 4, "Other", i64),
	}}
	sObj := &Object{Members: []Member{makeMember(10, 4, 0, "Old", i32)}}
	syncer := &Syncer{}

	got := syncer.matchMember(d, sObj, sObj.Members[0])
	if got == nil || got.Name != "Renamed" {
		t.Fatalf("expected unique type-only match, got %v", got)
	}
}

func TestMatchMember_OffsetTieBreak(t *testing.T) {
	i32 := TypeDescriptor{BaseKind: KindInt32, Size: 4}
	d := &Object{Members: []Member{
		makeMember(1, 4, 0, "A", i32),
		makeMember(2, 4, 4, "B", i32),
	}}
	sObj := &Object{Members: []Member{makeMember(10, 4, 4, "Z", i32)}}
	syncer := &Syncer{}

	got := syncer.matchMember(d, sObj, sObj.Members[0])
	if got == nil || got.Name != "B" {
		t.Fatalf("expected offset tie-break to pick B (offset 4), got %v", got)
	}
}

func TestMatchMember_SequenceIndexTieBreak(t *testing.T) {
	i32 := TypeDescriptor{BaseKind: KindInt32, Size: 4}
	// Same type, same UID-irrelevant identity, ambiguous offsets (both
	// differ from the source's), so only declaration order can decide.
	d := &Object{Members: []Member{
		makeMember(1, 4, 100, "A", i32),
		makeMember(2, 4, 200, "B", i32),
	}}
	sObj := &Object{Members: []Member{
		makeMember(10, 4, 1, "P", i32),
		makeMember(11, 4, 2, "Q", i32),
	}}
	syncer := &Syncer{}

	got := syncer.matchMember(d, sObj, sObj.Members[1])
	if got == nil || got.Name != "B" {
		t.Fatalf("expected sequence-index tie-break to pick B (index 1), got %v", got)
	}
}

func TestMatchMember_GiveUp(t *testing.T) {
	i32 := TypeDescriptor{BaseKind: KindInt32, Size: 4}
	real64 := TypeDescriptor{BaseKind: KindReal64, Size: 8}
	d := &Object{Members: []Member{makeMember(1, 8, 0, "X", real64)}}
	sObj := &Object{Members: []Member{makeMember(10, 4, 0, "X", i32)}}
	syncer := &Syncer{}

	got := syncer.matchMember(d, sObj, sObj.Members[0])
	if got != nil {
		t.Fatalf("expected no match across incompatible types, got %v", got)
	}
}
