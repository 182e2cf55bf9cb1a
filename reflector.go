package rsync

import (
	"reflect"
	"unsafe"
)

// Describable is implemented by host types that know how to register
// their own fields with a Reflector. A reimplementation without compile-
// time reflection (spec.md §9) requires the host to hand-write Describe,
// which calls SerializeMember/SetVersion/SetMinVersion explicitly.
type Describable interface {
	Describe(r *Reflector)
}

// Reflector is the serialize-time component consumed from host code
// (spec.md §6). Each call to SerializeMember registers one field; the
// registration order becomes the canonical member order later used for
// structural tie-breaking by the Syncer's match_member cascade.
type Reflector struct {
	archive *Archive
	visited map[UID]bool
}

// NewReflector returns a Reflector that populates archive.
func NewReflector(archive *Archive) *Reflector {
	return &Reflector{archive: archive, visited: make(map[UID]bool)}
}

// Reflect walks root (a pointer to a Describable struct) and its
// transitive members, populating the Reflector's archive and setting it
// as the root object. It is the Serialize/Deserialize entry point of
// spec.md §6 -- deserialize uses the same call, reflecting the
// destination from live memory before a Syncer reconciles it.
func Reflect(archive *Archive, root Describable) {
	r := NewReflector(archive)
	uid := r.reflectRoot(root)
	archive.SetRoot(uid)
}

func (r *Reflector) reflectRoot(root Describable) UID {
	val := reflect.ValueOf(root)
	uid := liveUIDOf(val, reflect.TypeOf(root))
	r.ensureObject(uid, classTypeDescriptor(reflect.TypeOf(root).Elem()))
	r.visitDescribable(uid, root)
	return uid
}

func (r *Reflector) visitDescribable(uid UID, v Describable) {
	if r.visited[uid] {
		return
	}
	r.visited[uid] = true
	v.Describe(r)
}

func (r *Reflector) ensureObject(uid UID, typ TypeDescriptor) *Object {
	obj := r.archive.objects.Lookup(uid)
	if obj.IsValid() {
		return obj
	}
	created := &Object{UIDChain: UIDChain{uid}, Type: typ}
	r.archive.objects.Insert(created)
	return r.archive.objects.Lookup(uid)
}

// SerializeMember registers one field of parent: member is a pointer to
// the field's live value, name is its source-level identifier. It
// implements the registration algorithm of spec.md §4.3.
func (r *Reflector) SerializeMember(parent any, member any, name string) {
	parentVal := reflect.ValueOf(parent)
	memberVal := reflect.ValueOf(member)

	parentUID := liveUIDOf(parentVal, reflect.TypeOf(parent))
	parentObj := r.ensureObject(parentUID, classTypeDescriptor(reflect.TypeOf(parent).Elem()))

	offset := uint32(uintptr(memberVal.Pointer()) - uintptr(parentVal.Pointer()))
	memberType := reflect.TypeOf(member).Elem()
	typ := describeGoType(memberType)

	memberUID := liveUIDOf(memberVal, reflect.TypeOf(member))
	parentObj.Members = append(parentObj.Members, Member{
		UID:    memberUID,
		Offset: offset,
		Name:   name,
		Type:   typ,
	})

	childObj := r.ensureObject(memberUID, typ)

	if typ.IsPointer {
		r.reflectPointer(childObj, memberVal, memberType)
		return
	}
	if typ.IsClass() {
		if d, ok := member.(Describable); ok {
			r.visitDescribable(memberUID, d)
		}
		return
	}
	childObj.Raw = encodeGoPrimitive(typ, memberVal.Elem())
}

// reflectPointer populates a pointer Object's two-element UID chain (one
// element for a nil pointer). It adds the pointee Object itself, then
// recurses into a Describable pointee or stores a primitive pointee's Raw.
func (r *Reflector) reflectPointer(ptrObj *Object, ptrVal reflect.Value, ptrGoType reflect.Type) {
	pointee := ptrVal.Elem() // the pointer value itself (T*)
	if pointee.IsNil() {
		ptrObj.UIDChain = UIDChain{ptrObj.UID()}
		return
	}
	pointeeUID := liveUIDOf(pointee, ptrGoType)
	ptrObj.UIDChain = UIDChain{ptrObj.UID(), pointeeUID}

	pointeeElemType := ptrGoType.Elem()
	pointeeTyp := describeGoType(pointeeElemType)
	childObj := r.ensureObject(pointeeUID, pointeeTyp)

	if d, ok := pointee.Interface().(Describable); ok {
		r.visitDescribable(pointeeUID, d)
	} else if !pointeeTyp.IsClass() {
		childObj.Raw = encodeGoPrimitive(pointeeTyp, pointee.Elem())
	}
}

func (r *Reflector) SetVersion(parent any, v uint32) {
	uid := liveUIDOf(reflect.ValueOf(parent), reflect.TypeOf(parent))
	obj := r.ensureObject(uid, classTypeDescriptor(reflect.TypeOf(parent).Elem()))
	obj.Version = v
}

func (r *Reflector) SetMinVersion(parent any, v uint32) {
	uid := liveUIDOf(reflect.ValueOf(parent), reflect.TypeOf(parent))
	obj := r.ensureObject(uid, classTypeDescriptor(reflect.TypeOf(parent).Elem()))
	obj.MinVersion = v
}

// liveUIDOf mints a LiveUID from the address of a pointer value, pairing
// it with the byte size of the pointee -- the (id, size) pair of spec.md
// §3. It reads the address with reflect.Value.Pointer and is the single
// site that turns an address into a UID during registration, matching
// the "UIDs as addresses" Design Note (§9): only locally-reflected UIDs
// carry a real address.
func liveUIDOf(ptrVal reflect.Value, ptrType reflect.Type) UID {
	if ptrVal.Kind() != reflect.Ptr || ptrVal.IsNil() {
		return NoUID
	}
	size := ptrType.Elem().Size()
	return UID{ID: uint64(ptrVal.Pointer()), Size: uint32(size)}
}

func classTypeDescriptor(elem reflect.Type) TypeDescriptor {
	return TypeDescriptor{
		BaseKind:     KindClass,
		UserTypeName: elem.Name(),
		Size:         uint32(elem.Size()),
	}
}

// describeGoType classifies a Go field type into the TypeDescriptor
// tagged variant of spec.md §9's Design Notes.
func describeGoType(t reflect.Type) TypeDescriptor {
	if t.Kind() == reflect.Ptr {
		inner := describeGoType(t.Elem())
		inner.IsPointer = true
		return inner
	}
	switch t.Kind() {
	case reflect.Int8:
		return TypeDescriptor{BaseKind: KindInt8, Size: 1}
	case reflect.Int16:
		return TypeDescriptor{BaseKind: KindInt16, Size: 2}
	case reflect.Int32:
		return TypeDescriptor{BaseKind: KindInt32, Size: 4}
	case reflect.Int, reflect.Int64:
		return TypeDescriptor{BaseKind: KindInt64, Size: 8}
	case reflect.Uint8:
		return TypeDescriptor{BaseKind: KindUint8, Size: 1}
	case reflect.Uint16:
		return TypeDescriptor{BaseKind: KindUint16, Size: 2}
	case reflect.Uint32:
		return TypeDescriptor{BaseKind: KindUint32, Size: 4}
	case reflect.Uint, reflect.Uint64:
		return TypeDescriptor{BaseKind: KindUint64, Size: 8}
	case reflect.Float32:
		return TypeDescriptor{BaseKind: KindReal32, Size: 4}
	case reflect.Float64:
		return TypeDescriptor{BaseKind: KindReal64, Size: 8}
	case reflect.Bool:
		return TypeDescriptor{BaseKind: KindBool, Size: 1}
	case reflect.String:
		return TypeDescriptor{BaseKind: KindString, Size: uint32(unsafe.Sizeof(""))}
	case reflect.Struct:
		return classTypeDescriptor(t)
	default:
		return InvalidType
	}
}

// encodeGoPrimitive renders a live scalar as obj.Raw's binary
// representation (see primitive.go): packed native bytes for numeric/
// bool/enum kinds, UTF-8 bytes directly for strings.
func encodeGoPrimitive(typ TypeDescriptor, v reflect.Value) []byte {
	switch {
	case typ.BaseKind == KindBool:
		if v.Bool() {
			return []byte{1}
		}
		return []byte{0}
	case typ.IsReal():
		return packFloat(v.Float(), typ.Size)
	case typ.BaseKind == KindEnum || typ.IsUnsigned():
		return packUint(v.Uint(), typ.Size)
	case typ.IsInteger():
		return packInt(v.Int(), typ.Size)
	case typ.BaseKind == KindString:
		return []byte(v.String())
	default:
		return nil
	}
}
