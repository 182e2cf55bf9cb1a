package rsync

// Member is a named, typed field of a class Object, together with the
// byte offset of that field within its parent and the UID of the Object
// reflecting the field's own value.
type Member struct {
	UID    UID
	Offset uint32
	Name   string
	Type   TypeDescriptor
}

func (m Member) IsValid() bool { return m.UID.IsValid() }

// Object is the reflective image of a live datum: a primitive value, a
// class instance, or a pointer. Primitive Objects carry Raw and no
// Members; class Objects carry Members and no Raw.
type Object struct {
	UIDChain   UIDChain
	Type       TypeDescriptor
	Version    uint32
	MinVersion uint32
	Members    []Member
	Raw        []byte
}

// invalidObject is the shared sentinel returned for lookups of NoUID or of
// any UID absent from an ObjectGraph. It must never be mutated.
var invalidObject = Object{}

func (o *Object) IsValid() bool { return o != nil && o.Type.IsValid() }

func (o *Object) UID() UID {
	if o == nil {
		return NoUID
	}
	return o.UIDChain.Head()
}

// PointeeUID returns the UID of the pointee for a pointer Object, or
// NoUID if absent (the live pointer was null at registration time) or if
// o is not a pointer.
func (o *Object) PointeeUID() UID {
	if o == nil || !o.Type.IsPointer {
		return NoUID
	}
	return o.UIDChain.Pointee()
}

// MemberByName returns the first member with the given name, or nil.
func (o *Object) MemberByName(name string) *Member {
	if o == nil {
		return nil
	}
	for i := range o.Members {
		if o.Members[i].Name == name {
			return &o.Members[i]
		}
	}
	return nil
}

// SequenceIndexOf returns the declaration-order index of m within the
// Object's Members, or -1 if m is not one of them. A negative result for a
// member known to belong to this Object indicates a programming error --
// callers that expect m to be present should treat -1 as an assertion
// failure, not a recoverable condition.
func (o *Object) SequenceIndexOf(m Member) int {
	if o == nil {
		return -1
	}
	for i := range o.Members {
		if o.Members[i].UID == m.UID && o.Members[i].Name == m.Name {
			return i
		}
	}
	return -1
}

func (o *Object) clone() *Object {
	if o == nil {
		return nil
	}
	c := *o
	c.UIDChain = o.UIDChain.Clone()
	if o.Members != nil {
		c.Members = append([]Member(nil), o.Members...)
	}
	if o.Raw != nil {
		c.Raw = append([]byte(nil), o.Raw...)
	}
	return &c
}
