package rsync

import "testing"

func TestArchive_SetIntValueAndValueAsInt(t *testing.T) {
	a := buildSamplePointArchive()
	xUID := a.RootObject().Members[0].UID

	if err := a.SetIntValue(xUID, -7); err != nil {
		t.Fatalf("SetIntValue error: %v", err)
	}
	got, err := a.ValueAsInt(xUID)
	if err != nil {
		t.Fatalf("ValueAsInt error: %v", err)
	}
	if got != -7 {
		t.Fatalf("ValueAsInt = %d, want -7", got)
	}
	if !a.Modified() {
		t.Fatalf("SetIntValue should mark the archive modified")
	}
}

func TestArchive_SetRealValue(t *testing.T) {
	a := NewArchive()
	uid := UID{ID: 1, Size: 8}
	a.objects.Insert(&Object{UIDChain: UIDChain{uid}, Type: TypeDescriptor{BaseKind: KindReal64, Size: 8}})

	if err := a.SetRealValue(uid, 2.5); err != nil {
		t.Fatalf("SetRealValue error: %v", err)
	}
	got, err := a.ValueAsReal(uid)
	if err != nil {
		t.Fatalf("ValueAsReal error: %v", err)
	}
	if got != 2.5 {
		t.Fatalf("ValueAsReal = %v, want 2.5", got)
	}
}

func TestArchive_SetBoolValue(t *testing.T) {
	a := NewArchive()
	uid := UID{ID: 1, Size: 1}
	a.objects.Insert(&Object{UIDChain: UIDChain{uid}, Type: TypeDescriptor{BaseKind: KindBool, Size: 1}})

	if err := a.SetBoolValue(uid, true); err != nil {
		t.Fatalf("SetBoolValue error: %v", err)
	}
	got, err := a.ValueAsBool(uid)
	if err != nil || !got {
		t.Fatalf("ValueAsBool = %v, %v, want true, nil", got, err)
	}
}

func TestArchive_ValueAsBool_NullPointee(t *testing.T) {
	a := NewArchive()
	ptrUID := UID{ID: 1, Size: 8}
	a.objects.Insert(&Object{
		UIDChain: UIDChain{ptrUID},
		Type:     TypeDescriptor{BaseKind: KindBool, Size: 1, IsPointer: true},
	})
	got, err := a.ValueAsBool(ptrUID)
	if err != nil || got {
		t.Fatalf("ValueAsBool on a null pointee should be false, nil; got %v, %v", got, err)
	}
}

func TestArchive_SetEnumValue_WidthOverride(t *testing.T) {
	a := NewArchive()
	uid := UID{ID: 1, Size: 4}
	a.objects.Insert(&Object{UIDChain: UIDChain{uid}, Type: TypeDescriptor{BaseKind: KindEnum, UserTypeName: "Color", Size: 4}})

	if err := a.SetEnumValue(uid, 2, 1); err != nil {
		t.Fatalf("SetEnumValue error: %v", err)
	}
	obj := a.Lookup(uid)
	if obj.Type.Size != 1 {
		t.Fatalf("SetEnumValue should overwrite the stored type size, got %d", obj.Type.Size)
	}
	got, err := a.ValueAsInt(uid)
	if err != nil || got != 2 {
		t.Fatalf("ValueAsInt after SetEnumValue = %d, %v", got, err)
	}
}

func TestArchive_SetAutoValue_Dispatch(t *testing.T) {
	a := buildSamplePointArchive()
	xUID := a.RootObject().Members[0].UID
	if err := a.SetAutoValue(xUID, "123"); err != nil {
		t.Fatalf("SetAutoValue error: %v", err)
	}
	text, err := a.ValueAsString(xUID)
	if err != nil || text != "123" {
		t.Fatalf("ValueAsString = %q, %v, want 123", text, err)
	}
}

func TestArchive_SetIntValue_OnClassIsError(t *testing.T) {
	a := buildSamplePointArchive()
	if err := a.SetIntValue(a.Root(), 1); err == nil {
		t.Fatalf("SetIntValue on a class Object should fail")
	}
}
