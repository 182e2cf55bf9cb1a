// Package rsynctest provides small Describable host structs for exercising
// github.com/andreyvit/rsync's Reflector/Syncer from outside the rsync
// package itself, avoiding an import cycle between rsync's own tests and
// a hypothetical test-fixtures subpackage of rsync.
package rsynctest

import "github.com/andreyvit/rsync"

// Point is the simplest possible class: two primitive members, no
// pointers, no nesting.
type Point struct {
	X, Y int32
}

func (p *Point) Describe(r *rsync.Reflector) {
	r.SerializeMember(p, &p.X, "X")
	r.SerializeMember(p, &p.Y, "Y")
}

// Named adds a string member, exercising the UTF-8-passthrough Raw
// exception documented in primitive.go.
type Named struct {
	Point
	Label string
}

func (n *Named) Describe(r *rsync.Reflector) {
	r.SerializeMember(n, &n.X, "X")
	r.SerializeMember(n, &n.Y, "Y")
	r.SerializeMember(n, &n.Label, "Label")
}

// Tagged carries a pointer to a primitive member, exercising the
// degree-1 pointer-to-primitive path through SerializeMember/
// reflectPointer: Count's Object has an empty Raw and a one- or
// two-element UIDChain depending on whether the pointer is nil.
type Tagged struct {
	Name  string
	Count *int32
}

func (t *Tagged) Describe(r *rsync.Reflector) {
	r.SerializeMember(t, &t.Name, "Name")
	r.SerializeMember(t, &t.Count, "Count")
}

// Link exercises a single-level pointer member (a two-element UIDChain).
type Link struct {
	Value int64
	Next  *Link
}

func (l *Link) Describe(r *rsync.Reflector) {
	r.SerializeMember(l, &l.Value, "Value")
	r.SerializeMember(l, &l.Next, "Next")
}

// Cycle is a self-referential class, exercising the Syncer's erase-on-
// visit cycle breaking and the Reflector's visited-set guard.
type Cycle struct {
	Name string
	Self *Cycle
}

func (c *Cycle) Describe(r *rsync.Reflector) {
	r.SerializeMember(c, &c.Name, "Name")
	r.SerializeMember(c, &c.Self, "Self")
}

// WidePointV2 declares Point's two int32 members in reverse order and
// adds a third, Z. Its class type (name and size) differs from Point's,
// so the Syncer rejects a Point-shaped source for it with
// TypeIncompatible.
type WidePointV2 struct {
	Y, X int32
	Z    int32
}

func (p *WidePointV2) Describe(r *rsync.Reflector) {
	r.SerializeMember(p, &p.Y, "Y")
	r.SerializeMember(p, &p.X, "X")
	r.SerializeMember(p, &p.Z, "Z")
}
