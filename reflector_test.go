package rsync

import "testing"

type testPoint struct {
	X, Y int32
}

func (p *testPoint) Describe(r *Reflector) {
	r.SerializeMember(p, &p.X, "X")
	r.SerializeMember(p, &p.Y, "Y")
}

type testLabeled struct {
	testPoint
	Label string
}

func (n *testLabeled) Describe(r *Reflector) {
	r.SerializeMember(n, &n.X, "X")
	r.SerializeMember(n, &n.Y, "Y")
	r.SerializeMember(n, &n.Label, "Label")
}

type testTagged struct {
	Name  string
	Count *int32
}

func (t *testTagged) Describe(r *Reflector) {
	r.SerializeMember(t, &t.Name, "Name")
	r.SerializeMember(t, &t.Count, "Count")
}

type testLink struct {
	Value int64
	Next  *testLink
}

func (l *testLink) Describe(r *Reflector) {
	r.SerializeMember(l, &l.Value, "Value")
	r.SerializeMember(l, &l.Next, "Next")
}

func TestReflect_PrimitivesAndRoundTrip(t *testing.T) {
	p := &testPoint{X: 3, Y: -4}
	a := NewArchive()
	Reflect(a, p)

	if !a.HasRoot() {
		t.Fatalf("Reflect did not set a root")
	}
	root := a.RootObject()
	if len(root.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(root.Members))
	}

	raw := a.Encode()
	decoded, err := NewArchiveFromBytes(raw)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	dx, err := decoded.ValueAsInt(decoded.RootObject().Members[0].UID)
	if err != nil || dx != 3 {
		t.Fatalf("decoded X = %d, %v, want 3", dx, err)
	}
}

func TestReflect_EmbeddedStructAndString(t *testing.T) {
	n := &testLabeled{testPoint: testPoint{X: 1, Y: 2}, Label: "hi"}
	a := NewArchive()
	Reflect(a, n)

	root := a.RootObject()
	if len(root.Members) != 3 {
		t.Fatalf("expected 3 members (X, Y, Label), got %d", len(root.Members))
	}
	labelMember := root.MemberByName("Label")
	if labelMember == nil {
		t.Fatalf("Label member not found")
	}
	labelObj := a.Lookup(labelMember.UID)
	if string(labelObj.Raw) != "hi" {
		t.Fatalf("Label Raw = %q, want %q", labelObj.Raw, "hi")
	}
}

func TestReflect_PointerToPrimitive(t *testing.T) {
	count := int32(7)
	tg := &testTagged{Name: "hits", Count: &count}
	a := NewArchive()
	Reflect(a, tg)

	root := a.RootObject()
	countMember := root.MemberByName("Count")
	if countMember == nil {
		t.Fatalf("Count member not found")
	}
	countObj := a.Lookup(countMember.UID)
	if len(countObj.Raw) != 0 {
		t.Fatalf("pointer cell Raw should be empty, got %d bytes", len(countObj.Raw))
	}
	if !countObj.PointeeUID().IsValid() {
		t.Fatalf("populated pointer should have a valid pointee UID")
	}

	raw := a.Encode() // must not panic: this is the regression this test guards
	decoded, err := NewArchiveFromBytes(raw)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	dCountMember := decoded.RootObject().MemberByName("Count")
	dv, err := decoded.ValueAsInt(dCountMember.UID) // ValueAsInt follows the pointer to its pointee
	if err != nil || dv != 7 {
		t.Fatalf("decoded *Count = %d, %v, want 7", dv, err)
	}
}

func TestReflect_NilPointerMember(t *testing.T) {
	l := &testLink{Value: 5, Next: nil}
	a := NewArchive()
	Reflect(a, l)

	root := a.RootObject()
	nextMember := root.MemberByName("Next")
	if nextMember == nil {
		t.Fatalf("Next member not found")
	}
	nextObj := a.Lookup(nextMember.UID)
	if nextObj.PointeeUID().IsValid() {
		t.Fatalf("nil pointer should produce an invalid pointee UID")
	}
}

func TestReflect_PopulatedPointerChain(t *testing.T) {
	tail := &testLink{Value: 2}
	head := &testLink{Value: 1, Next: tail}
	a := NewArchive()
	Reflect(a, head)

	root := a.RootObject()
	nextMember := root.MemberByName("Next")
	nextObj := a.Lookup(nextMember.UID)
	if !nextObj.PointeeUID().IsValid() {
		t.Fatalf("populated pointer should have a valid pointee UID")
	}
	pointee := a.Lookup(nextObj.PointeeUID())
	if !pointee.IsValid() {
		t.Fatalf("pointee object should be registered in the graph")
	}
}
